package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const openAITranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// OpenAIWhisperClient uses the OpenAI Whisper API.
type OpenAIWhisperClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewOpenAIWhisperClient(apiKey string) *OpenAIWhisperClient {
	return &OpenAIWhisperClient{
		apiKey: apiKey,
		apiURL: openAITranscriptionURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *OpenAIWhisperClient) Name() string {
	return "openai"
}

func (c *OpenAIWhisperClient) Recognize(ctx context.Context, req RecognizeRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return "", err
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", err
	}

	writer.WriteField("model", "whisper-1")
	writer.WriteField("response_format", "json")
	if lang := primarySubtag(req.Language); lang != "" && lang != "auto" {
		writer.WriteField("language", lang)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
