package translate

import (
	"fmt"
	"log"
)

// Service manages the available translation engines.
type Service struct {
	engines map[string]Translator
}

// NewService creates a translation service with the engines that are
// configured.
func NewService(deeplKey, openAIKey string) *Service {
	s := &Service{engines: make(map[string]Translator)}

	if deeplKey != "" {
		s.engines["deepl"] = NewDeepLTranslator(deeplKey)
		log.Printf("[translate] registered DeepL engine")
	}

	if openAIKey != "" {
		s.engines["openai"] = NewOpenAITranslator(openAIKey)
		log.Printf("[translate] registered OpenAI translation engine")
	}

	return s
}

// RegisterEngine adds an engine under the given name.
func (s *Service) RegisterEngine(name string, engine Translator) {
	s.engines[name] = engine
	log.Printf("[translate] registered %s engine", name)
}

// Engine returns the named translator.
func (s *Service) Engine(name string) (Translator, error) {
	engine, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown translation engine: %s", name)
	}
	return engine, nil
}
