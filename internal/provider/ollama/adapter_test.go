package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/provider/ollama"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Messages []struct {
		Role    string   `json:"role"`
		Content string   `json:"content"`
		Images  []string `json:"images"`
	} `json:"messages"`
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *ollama.Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := ollama.NewProvider(ollama.Config{BaseURL: server.URL + "/"}, server.Client())
	require.NoError(t, err)
	return provider
}

func TestNewProvider_MissingBaseURL(t *testing.T) {
	provider, err := ollama.NewProvider(ollama.Config{}, nil)

	require.Error(t, err)
	require.Nil(t, provider)
	require.Contains(t, err.Error(), "base URL is required")
}

func TestProvider_Name(t *testing.T) {
	provider, err := ollama.NewProvider(ollama.Config{BaseURL: "http://localhost:11434"}, nil)
	require.NoError(t, err)

	require.Equal(t, "ollama", provider.Name())
}

func TestProvider_Complete(t *testing.T) {
	t.Run("should send a non-streaming chat request and return message content", func(t *testing.T) {
		var captured capturedRequest
		var calls atomic.Int32
		var method, path string

		provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			method, path = r.Method, r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&captured)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"model": "gemma:2b",
				"created_at": "2024-05-01T10:00:00Z",
				"message": {"role": "assistant", "content": "4"},
				"done": true,
				"prompt_eval_count": 12,
				"eval_count": 3
			}`))
		})

		resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{
			Model: "gemma:2b",
			Messages: []domain.Message{
				{Role: domain.RoleUser, Content: "Solve this math problem step by step: 2+2"},
			},
		})

		require.NoError(t, err)
		require.Equal(t, int32(1), calls.Load())
		require.Equal(t, http.MethodPost, method)
		require.Equal(t, "/api/chat", path)
		require.Equal(t, "4", resp.Content)
		require.Equal(t, "gemma:2b", resp.Model)
		require.Equal(t, "ollama", resp.Provider)
		require.Equal(t, 15, resp.Usage.TotalTokens)

		require.Equal(t, "gemma:2b", captured.Model)
		require.False(t, captured.Stream)
		require.Len(t, captured.Messages, 1)
		require.Equal(t, "user", captured.Messages[0].Role)
		require.Equal(t, "Solve this math problem step by step: 2+2", captured.Messages[0].Content)
	})

	t.Run("should send images as raw base64", func(t *testing.T) {
		var captured capturedRequest

		provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&captured)
			_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "a cat"}}`))
		})

		resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{
			Model: "llava",
			Messages: []domain.Message{{
				Role:    domain.RoleUser,
				Content: "describe",
				Images:  []domain.Image{{MediaType: "image/png", Data: []byte("png")}},
			}},
		})

		require.NoError(t, err)
		require.Equal(t, "a cat", resp.Content)
		require.Equal(t, "llava", resp.Model)
		require.Equal(t, []string{"cG5n"}, captured.Messages[0].Images)
	})

	t.Run("should fail on non-2xx status", func(t *testing.T) {
		provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"model 'gemma:2b' not found"}`, http.StatusNotFound)
		})

		resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{Model: "gemma:2b"})

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "status 404")
	})

	t.Run("should fail on malformed envelope", func(t *testing.T) {
		provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"done": true}`))
		})

		resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{Model: "gemma:2b"})

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "response has no message")
	})

	t.Run("should fail on invalid JSON", func(t *testing.T) {
		provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{Model: "gemma:2b"})

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("should return error when request is nil", func(t *testing.T) {
		provider, err := ollama.NewProvider(ollama.Config{BaseURL: "http://localhost:11434"}, nil)
		require.NoError(t, err)

		resp, err := provider.Complete(context.Background(), nil)

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "request cannot be nil")
	})
}
