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
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	claudeEndpoint     = "https://api.anthropic.com/v1/messages"
	// claudeJSONPrefill starts the assistant turn so the reply continues a
	// JSON object. Claude has no response-format switch.
	claudeJSONPrefill = "{"
)

type Claude struct {
	apiKey   string
	endpoint string
	client   *http.Client
	model    string
}

func NewClaude(apiKey string, opts ...Option) *Claude {
	return NewClaudeWithModel(apiKey, DefaultClaudeModel, opts...)
}

func NewClaudeWithModel(apiKey, model string, opts ...Option) *Claude {
	if model == "" {
		model = DefaultClaudeModel
	}
	rc := newRESTConfig(claudeEndpoint, opts)
	return &Claude{
		apiKey:   apiKey,
		endpoint: rc.endpoint,
		client:   rc.client,
		model:    model,
	}
}

func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
			{"role": "assistant", "content": claudeJSONPrefill},
		},
		"max_tokens":  2000,
		"temperature": 0,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("claude: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("claude: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("claude: read response: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return "", &StatusError{Provider: ProviderClaude, StatusCode: resp.StatusCode, Body: truncate(string(respBytes), maxErrorBodyPreview)}
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", fmt.Errorf("claude: %w: %v", ErrMalformedResponse, err)
	}
	if claudeResp.Error.Message != "" {
		return "", fmt.Errorf("Claude API error: %s", claudeResp.Error.Message)
	}
	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("claude: %w: empty response", ErrMalformedResponse)
	}
	return claudeJSONPrefill + claudeResp.Content[0].Text, nil
}

// GetModel returns the model being used by this Claude client
func (c *Claude) GetModel() string {
	return c.model
}
