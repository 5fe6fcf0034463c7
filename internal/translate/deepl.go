package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const deeplAPIURL = "https://api-free.deepl.com/v2/translate"

// DeepLTranslator translates transcripts using the DeepL API.
type DeepLTranslator struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewDeepLTranslator(apiKey string) *DeepLTranslator {
	return &DeepLTranslator{
		apiKey: apiKey,
		apiURL: deeplAPIURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (d *DeepLTranslator) Name() string {
	return "deepl"
}

func (d *DeepLTranslator) Translate(ctx context.Context, req Request) (string, error) {
	if d.apiKey == "" {
		return "", fmt.Errorf("DeepL API key not configured")
	}

	form := url.Values{}
	form.Add("text", req.Text)
	form.Set("target_lang", deeplLangCode(req.TargetLang))
	if req.SourceLang != "" && req.SourceLang != "auto" {
		form.Set("source_lang", deeplLangCode(req.SourceLang))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", d.apiURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("DeepL API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("DeepL API error (status %d): %s", resp.StatusCode, string(body))
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &deeplResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(deeplResp.Translations) == 0 {
		return "", fmt.Errorf("DeepL returned no translations")
	}
	return deeplResp.Translations[0].Text, nil
}

// deeplLangCode converts ISO 639-1 codes to DeepL format.
func deeplLangCode(code string) string {
	mapping := map[string]string{
		"ko": "KO",
		"en": "EN",
		"ja": "JA",
		"zh": "ZH",
		"de": "DE",
		"fr": "FR",
		"es": "ES",
		"it": "IT",
		"pt": "PT-BR",
		"ru": "RU",
		"nl": "NL",
		"pl": "PL",
	}
	if mapped, ok := mapping[code]; ok {
		return mapped
	}
	return strings.ToUpper(code)
}
