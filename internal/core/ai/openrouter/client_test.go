package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/core/ai/provider"
)

func TestGenerate(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"message":{"role":"assistant","content":"{\"max_time\": 30}"}}]}`))
	}))
	defer server.Close()

	c, err := NewClient(provider.Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		MaxTokens: 128,
	})
	require.NoError(t, err)
	defer c.Close()

	out, err := c.Generate(context.Background(), "quick dinner")
	require.NoError(t, err)
	assert.Equal(t, `{"max_time": 30}`, out)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 128, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "quick dinner", got.Messages[0].Content)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusUnauthorized, `{"error":{"message":"bad key","code":401}}`},
		{"api error", http.StatusOK, `{"error":{"message":"overloaded","code":503}}`},
		{"no choices", http.StatusOK, `{"id":"x","choices":[]}`},
		{"malformed", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(provider.Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "anything")
			assert.Error(t, err)
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(provider.Config{})
	assert.Error(t, err)
}
