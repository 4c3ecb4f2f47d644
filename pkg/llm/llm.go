package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// LLM is a text-generation backend. Chat sends a single prompt and returns
// the generated text.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
	GetModel() string
}

// ErrMalformedResponse marks a response that arrived but could not be read
// as the provider's envelope, or carried no generated text.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

const defaultHTTPTimeout = 60 * time.Second

type restConfig struct {
	endpoint string
	client   *http.Client
}

// Option customises the REST-based clients.
type Option func(*restConfig)

// WithEndpoint overrides the URL requests are posted to.
func WithEndpoint(url string) Option {
	return func(c *restConfig) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *restConfig) {
		if hc != nil {
			c.client = hc
		}
	}
}

func newRESTConfig(endpoint string, opts []Option) restConfig {
	c := restConfig{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// truncate keeps error bodies readable in logs.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
