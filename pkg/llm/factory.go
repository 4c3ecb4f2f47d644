package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderGeminiSDK Provider = "gemini-sdk"
	ProviderClaude    Provider = "claude"
	ProviderOpenAI    Provider = "openai"
	// ProviderNone disables the remote tier entirely.
	ProviderNone Provider = "none"
)

// ErrNoProvider is returned by CreateLLM for ProviderNone.
var ErrNoProvider = errors.New("llm: no provider configured")

// Config carries what a provider needs to connect.
type Config struct {
	APIKey string
	Model  string
	// Endpoint overrides the provider's default URL when set.
	Endpoint string
}

// ParseProvider maps a user-supplied name onto a Provider. Empty means Gemini.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderGeminiSDK, ProviderClaude, ProviderOpenAI, ProviderNone:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s (supported: %s)", name, strings.Join(providerNames(), ", "))
	}
}

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance based on provider and configuration
func (f *Factory) CreateLLM(ctx context.Context, provider Provider, cfg Config) (LLM, error) {
	if provider == ProviderNone {
		return nil, ErrNoProvider
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}

	var opts []Option
	if cfg.Endpoint != "" {
		opts = append(opts, WithEndpoint(cfg.Endpoint))
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiWithModel(cfg.APIKey, cfg.Model, opts...), nil
	case ProviderGeminiSDK:
		c, err := NewGeminiSDK(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderClaude:
		return NewClaudeWithModel(cfg.APIKey, cfg.Model, opts...), nil
	case ProviderOpenAI:
		return NewOpenAIWithModel(cfg.APIKey, cfg.Model, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderGemini, ProviderGeminiSDK, ProviderClaude, ProviderOpenAI, ProviderNone}
}

func providerNames() []string {
	var names []string
	for _, p := range (&Factory{}).GetAvailableProviders() {
		names = append(names, string(p))
	}
	return names
}
