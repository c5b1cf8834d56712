package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOllamaClient(server *httptest.Server) *OllamaClient {
	return &OllamaClient{
		httpClient: server.Client(),
		baseURL:    server.URL,
		model:      "test-model",
	}
}

func TestOllamaClient_Chat(t *testing.T) {
	t.Run("sends the full conversation", func(t *testing.T) {
		var captured ollamaChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/chat", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			resp := ollamaChatResponse{
				Message: Message{Role: "assistant", Content: "a reply"},
				Done:    true,
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestOllamaClient(server)
		maxTokens := 128
		text, err := client.Chat(context.Background(), []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hello"},
		}, GenerationParams{MaxTokens: &maxTokens})

		require.NoError(t, err)
		assert.Equal(t, "a reply", text)
		assert.Equal(t, "test-model", captured.Model)
		assert.False(t, captured.Stream)
		require.Len(t, captured.Messages, 2)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.EqualValues(t, 128, captured.Options["num_predict"])
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestOllamaClient(server)
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestOllamaClient_Generate(t *testing.T) {
	t.Run("uses the generate endpoint", func(t *testing.T) {
		var captured ollamaGenerateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			resp := ollamaGenerateResponse{Response: "generated", Done: true}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestOllamaClient(server)
		text, err := client.Generate(context.Background(), "a prompt", GenerationParams{})
		require.NoError(t, err)
		assert.Equal(t, "generated", text)
		assert.Equal(t, "a prompt", captured.Prompt)
	})

	t.Run("missing model hint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model 'test-model' not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestOllamaClient(server)
		_, err := client.Generate(context.Background(), "a prompt", GenerationParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ollama pull test-model")
	})
}

func TestOllamaOptions_Defaults(t *testing.T) {
	options := ollamaOptions(GenerationParams{})
	assert.Equal(t, float32(0.2), options["temperature"])
	assert.Equal(t, 20, options["top_k"])
	assert.Equal(t, float32(0.9), options["top_p"])
	assert.Equal(t, 8192, options["num_predict"])
	assert.NotContains(t, options, "stop")
}
