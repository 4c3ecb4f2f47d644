package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	geminiEndpointFmt   = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiJSONMIMEType  = "application/json"
	geminiTemperature   = 0.2
	maxErrorBodyPreview = 512
)

// Gemini calls the generateContent REST endpoint in JSON mode.
type Gemini struct {
	apiKey   string
	endpoint string
	client   *http.Client
	model    string
}

func NewGemini(apiKey string, opts ...Option) *Gemini {
	return NewGeminiWithModel(apiKey, DefaultGeminiModel, opts...)
}

func NewGeminiWithModel(apiKey, model string, opts ...Option) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	rc := newRESTConfig(fmt.Sprintf(geminiEndpointFmt, model), opts)
	return &Gemini{
		apiKey:   apiKey,
		client:   rc.client,
		model:    model,
		endpoint: rc.endpoint,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string  `json:"responseMimeType"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func (g *Gemini) Chat(ctx context.Context, prompt string) (string, error) {
	var body geminiRequest
	body.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	body.GenerationConfig.ResponseMIMEType = geminiJSONMIMEType
	body.GenerationConfig.Temperature = geminiTemperature

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return "", &StatusError{Provider: ProviderGemini, StatusCode: resp.StatusCode, Body: truncate(string(respBytes), maxErrorBodyPreview)}
	}

	var geminiResp struct {
		Candidates []struct {
			Content      geminiContent `json:"content"`
			FinishReason string        `json:"finishReason"`
		} `json:"candidates"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBytes, &geminiResp); err != nil {
		return "", fmt.Errorf("gemini: %w: %v", ErrMalformedResponse, err)
	}
	if geminiResp.Error != nil && geminiResp.Error.Message != "" {
		return "", fmt.Errorf("gemini API error: %s", geminiResp.Error.Message)
	}
	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w: no candidates", ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("gemini: %w: empty content", ErrMalformedResponse)
	}
	return text.String(), nil
}

// GetModel returns the model being used by this Gemini client
func (g *Gemini) GetModel() string {
	return g.model
}
