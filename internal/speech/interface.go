package speech

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the engine processed the audio but found no
// recognizable speech. It is not a service failure; callers skip the
// segment and continue.
var ErrNoSpeech = errors.New("no speech recognized")

// RecognizeRequest is the input for one segment transcription.
type RecognizeRequest struct {
	AudioPath string // path to a PCM WAV segment artifact
	Language  string // recognition language code, e.g. "ta-IN" or "en-US"
}

// Recognizer is the common interface for all speech-to-text engines.
type Recognizer interface {
	// Recognize transcribes one audio segment. Returns ErrNoSpeech when
	// the engine detects no speech in the segment.
	Recognize(ctx context.Context, req RecognizeRequest) (string, error)
	// Name returns the engine name.
	Name() string
}

// primarySubtag returns the portion of a language code before the first
// separator: "ta-IN" -> "ta", "en_US" -> "en".
func primarySubtag(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == '-' || code[i] == '_' {
			return code[:i]
		}
	}
	return code
}
