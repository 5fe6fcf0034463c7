package handlers

import "net/http"

// Language pairs a display name with its recognition language code. The
// code's primary subtag doubles as the translation destination.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// supportedLanguages is the catalog offered to front ends. Any valid
// locale-qualified code is accepted by the pipeline; this list is just
// the curated picker.
var supportedLanguages = []Language{
	{"English (US)", "en-US"},
	{"English (UK)", "en-GB"},
	{"English (India)", "en-IN"},
	{"Spanish", "es-ES"},
	{"Spanish (Mexico)", "es-MX"},
	{"French", "fr-FR"},
	{"German", "de-DE"},
	{"Italian", "it-IT"},
	{"Portuguese", "pt-PT"},
	{"Russian", "ru-RU"},
	{"Japanese", "ja-JP"},
	{"Korean", "ko-KR"},
	{"Chinese (Mandarin)", "zh-CN"},
	{"Hindi", "hi-IN"},
	{"Arabic", "ar-AE"},
	{"Tamil", "ta-IN"},
	{"Vietnamese", "vi-VN"},
}

type LanguageHandler struct{}

func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

// ListLanguages returns the language catalog.
func (h *LanguageHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, supportedLanguages, http.StatusOK)
}
