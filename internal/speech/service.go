package speech

import (
	"fmt"
	"log"
)

// Service manages the available speech-to-text engines.
type Service struct {
	engines map[string]Recognizer
}

// NewService creates a speech service with the engines that are configured.
func NewService(whisperURL, openAIKey string) *Service {
	s := &Service{engines: make(map[string]Recognizer)}

	if whisperURL != "" {
		s.engines["whisper.cpp"] = NewWhisperCppClient(whisperURL)
		log.Printf("[whisper] registered whisper.cpp engine at %s", whisperURL)
	}

	if openAIKey != "" {
		s.engines["openai"] = NewOpenAIWhisperClient(openAIKey)
		log.Printf("[whisper] registered OpenAI Whisper engine")
	}

	return s
}

// RegisterEngine adds an engine under the given name.
func (s *Service) RegisterEngine(name string, engine Recognizer) {
	s.engines[name] = engine
	log.Printf("[whisper] registered %s engine", name)
}

// Engine returns the named recognizer.
func (s *Service) Engine(name string) (Recognizer, error) {
	engine, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown speech engine: %s (available: %v)", name, s.engineNames())
	}
	return engine, nil
}

func (s *Service) engineNames() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}
