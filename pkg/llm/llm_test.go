package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiChat(t *testing.T) {
	var gotBody map[string]interface{}
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"predictions\":"},{"text":"[]}"}]},"finishReason":"STOP"}]}`))
	})

	g := NewGemini("secret", WithEndpoint(srv.URL))
	out, err := g.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"predictions":[]}`, out)
	assert.Equal(t, DefaultGeminiModel, g.GetModel())

	cfg := gotBody["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	contents := gotBody["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, "hello", parts[0].(map[string]interface{})["text"])
}

func TestGeminiDefaultEndpointUsesModel(t *testing.T) {
	g := NewGeminiWithModel("k", "gemini-1.5-pro")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-pro:generateContent", g.endpoint)
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, false},
		{"unauthorized", http.StatusUnauthorized, `denied`, false},
		{"not json", http.StatusOK, `<html>`, true},
		{"no candidates", http.StatusOK, `{}`, true},
	}

	clients := map[string]func(url string) LLM{
		"gemini": func(url string) LLM { return NewGemini("k", WithEndpoint(url)) },
		"claude": func(url string) LLM { return NewClaude("k", WithEndpoint(url)) },
		"openai": func(url string) LLM { return NewOpenAI("k", WithEndpoint(url)) },
	}

	for clientName, mk := range clients {
		for _, tt := range tests {
			t.Run(clientName+"/"+tt.name, func(t *testing.T) {
				srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
				})

				_, err := mk(srv.URL).Chat(context.Background(), "p")
				require.Error(t, err)
				assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedResponse), err.Error())

				var statusErr *StatusError
				if tt.status >= 300 {
					require.ErrorAs(t, err, &statusErr)
					assert.Equal(t, tt.status, statusErr.StatusCode)
				} else {
					assert.False(t, errors.As(err, &statusErr))
				}
			})
		}
	}
}

func TestChatHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewGemini("k", WithEndpoint(srv.URL)).Chat(ctx, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClaudeChat(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, map[string]string{"role": "user", "content": "p"}, body.Messages[0])
		assert.Equal(t, map[string]string{"role": "assistant", "content": "{"}, body.Messages[1])

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"\"medications\":[]}"}]}`))
	})

	out, err := NewClaudeWithModel("k", "", WithEndpoint(srv.URL)).Chat(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, `{"medications":[]}`, out)
}

func TestOpenAIChat(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, map[string]interface{}{"type": "json_object"}, body["response_format"])
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	})

	client := NewOpenAIWithModel("k", "gpt-4o-mini", WithEndpoint(srv.URL))
	out, err := client.Chat(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
	assert.Equal(t, "gpt-4o-mini", client.GetModel())
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"", ProviderGemini, false},
		{"Gemini", ProviderGemini, false},
		{"gemini-sdk", ProviderGeminiSDK, false},
		{" claude ", ProviderClaude, false},
		{"openai", ProviderOpenAI, false},
		{"none", ProviderNone, false},
		{"llama", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactoryCreateLLM(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	_, err := f.CreateLLM(ctx, ProviderNone, Config{})
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = f.CreateLLM(ctx, ProviderGemini, Config{})
	assert.Error(t, err, "missing key")

	_, err = f.CreateLLM(ctx, Provider("llama"), Config{APIKey: "k"})
	assert.Error(t, err)

	l, err := f.CreateLLM(ctx, ProviderGemini, Config{APIKey: "k", Model: "gemini-2.0-flash", Endpoint: "http://localhost:1"})
	require.NoError(t, err)
	require.IsType(t, &Gemini{}, l)
	assert.Equal(t, "http://localhost:1", l.(*Gemini).endpoint)
	assert.Equal(t, "gemini-2.0-flash", l.GetModel())

	l, err = f.CreateLLM(ctx, ProviderClaude, Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultClaudeModel, l.GetModel())

	l, err = f.CreateLLM(ctx, ProviderOpenAI, Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, l.GetModel())
}

func TestFactoryFailureReturnsNilLLM(t *testing.T) {
	f := NewFactory()
	for _, p := range f.GetAvailableProviders() {
		t.Run(string(p), func(t *testing.T) {
			l, err := f.CreateLLM(context.Background(), p, Config{APIKey: " "})
			require.Error(t, err)
			assert.True(t, l == nil, "expected untyped nil LLM, got %#v", l)
		})
	}
}

func TestNewGeminiSDKRequiresKey(t *testing.T) {
	_, err := NewGeminiSDK(context.Background(), "  ", "")
	require.Error(t, err)
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Provider: ProviderGemini, StatusCode: 503, Body: "unavailable"}
	assert.Equal(t, "gemini API error (status 503): unavailable", err.Error())
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
