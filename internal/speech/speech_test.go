package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segment.wav")
	if err := os.WriteFile(path, []byte("RIFFfakeWAVEdata"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPrimarySubtag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ta-IN", "ta"},
		{"en-US", "en"},
		{"en_GB", "en"},
		{"fr", "fr"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := primarySubtag(tt.in); got != tt.want {
			t.Errorf("primarySubtag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhisperCppRecognize(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			t.Errorf("path = %s, want /inference", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotLang = r.FormValue("language")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Write([]byte(`{"text": " வணக்கம் "}`))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL)
	text, err := c.Recognize(context.Background(), RecognizeRequest{
		AudioPath: writeTempAudio(t),
		Language:  "ta-IN",
	})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if text != "வணக்கம்" {
		t.Errorf("text = %q, want trimmed transcript", text)
	}
	if gotLang != "ta" {
		t.Errorf("language sent = %q, want primary subtag ta", gotLang)
	}
}

func TestWhisperCppNoSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "  "}`))
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL)
	_, err := c.Recognize(context.Background(), RecognizeRequest{
		AudioPath: writeTempAudio(t),
		Language:  "en-US",
	})
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("err = %v, want ErrNoSpeech", err)
	}
}

func TestWhisperCppServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWhisperCppClient(srv.URL)
	_, err := c.Recognize(context.Background(), RecognizeRequest{
		AudioPath: writeTempAudio(t),
		Language:  "en-US",
	})
	if err == nil || errors.Is(err, ErrNoSpeech) {
		t.Fatalf("err = %v, want service error", err)
	}
}

func TestOpenAIRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q, want whisper-1", got)
		}
		w.Write([]byte(`{"text": "hello world"}`))
	}))
	defer srv.Close()

	c := NewOpenAIWhisperClient("test-key")
	c.apiURL = srv.URL

	text, err := c.Recognize(context.Background(), RecognizeRequest{
		AudioPath: writeTempAudio(t),
		Language:  "en-US",
	})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
}

func TestServiceEngineLookup(t *testing.T) {
	s := NewService("http://localhost:9999", "")
	if _, err := s.Engine("whisper.cpp"); err != nil {
		t.Errorf("whisper.cpp engine missing: %v", err)
	}
	if _, err := s.Engine("openai"); err == nil {
		t.Error("openai engine should not be registered without a key")
	}
}
