package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSDK talks to Gemini through Google's Go SDK instead of raw REST.
type GeminiSDK struct {
	client  *genai.Client
	modelID string
}

// NewGeminiSDK creates an SDK-backed client. Extra client options (for
// example option.WithEndpoint) are passed through to genai.NewClient.
func NewGeminiSDK(ctx context.Context, apiKey, modelID string, opts ...option.ClientOption) (*GeminiSDK, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	return &GeminiSDK{client: client, modelID: modelID}, nil
}

func (g *GeminiSDK) Chat(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.SetTemperature(geminiTemperature)
	model.ResponseMIMEType = geminiJSONMIMEType

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("llm: gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("llm: gemini: %w: no candidates", ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("llm: gemini: %w: empty content", ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func (g *GeminiSDK) GetModel() string {
	return g.modelID
}

// Close releases resources held by the Gemini client.
func (g *GeminiSDK) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
