package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultOpenAIModel = "gpt-4o"
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
)

type OpenAI struct {
	apiKey   string
	endpoint string
	client   *http.Client
	model    string
}

func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	return NewOpenAIWithModel(apiKey, DefaultOpenAIModel, opts...)
}

func NewOpenAIWithModel(apiKey, model string, opts ...Option) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	rc := newRESTConfig(openAIEndpoint, opts)
	return &OpenAI{
		apiKey:   apiKey,
		endpoint: rc.endpoint,
		client:   rc.client,
		model:    model,
	}
}

func (o *OpenAI) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"response_format": map[string]string{"type": "json_object"},
		"max_tokens":      2000,
		"temperature":     0,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return "", &StatusError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Body: truncate(string(respBytes), maxErrorBodyPreview)}
	}

	// OpenAI response structure
	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", fmt.Errorf("openai: %w: %v", ErrMalformedResponse, err)
	}
	if openaiResp.Error.Message != "" {
		return "", fmt.Errorf("OpenAI API error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: empty response", ErrMalformedResponse)
	}
	return openaiResp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}
