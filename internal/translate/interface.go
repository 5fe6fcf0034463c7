package translate

import "context"

// Request is one transcript to translate.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"` // "" or "auto" lets the engine detect
	TargetLang string `json:"target_lang"` // primary subtag, e.g. "ta"
}

// Translator is the common interface for all translation engines.
type Translator interface {
	// Translate returns the text rendered in the target language.
	Translate(ctx context.Context, req Request) (string, error)
	// Name returns the engine name.
	Name() string
}
