package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAnthropicClient returns a client pointed at a local test server.
func newTestAnthropicClient(server *httptest.Server) *AnthropicClient {
	return &AnthropicClient{
		httpClient: server.Client(),
		baseURL:    server.URL,
		apiKey:     "test-key",
		model:      "claude-test",
	}
}

func TestAnthropicClient_Chat(t *testing.T) {
	t.Run("lifts system message and applies params", func(t *testing.T) {
		var captured anthropicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			resp := anthropicResponse{
				Content:    []anthropicContent{{Type: "text", Text: "one step"}},
				StopReason: "end_turn",
				Usage:      &anthropicUsage{InputTokens: 10, OutputTokens: 5},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		maxTokens := 256
		text, err := client.Chat(context.Background(), []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hello"},
		}, GenerationParams{MaxTokens: &maxTokens, Stop: []string{"END"}})

		require.NoError(t, err)
		assert.Equal(t, "one step", text)
		assert.Equal(t, "claude-test", captured.Model)
		assert.Equal(t, 256, captured.MaxTokens)
		assert.Equal(t, []string{"END"}, captured.StopSeqs)
		require.Len(t, captured.System, 1)
		assert.Equal(t, "be brief", captured.System[0].Text)
		require.Len(t, captured.Messages, 1)
		assert.Equal(t, "user", captured.Messages[0].Role)
	})

	t.Run("defaults the token ceiling", func(t *testing.T) {
		var captured anthropicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			resp := anthropicResponse{Content: []anthropicContent{{Type: "text", Text: "ok"}}}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
		require.NoError(t, err)
		assert.Equal(t, defaultMaxTokens, captured.MaxTokens)
	})

	t.Run("caches large system prompts", func(t *testing.T) {
		var captured anthropicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			resp := anthropicResponse{Content: []anthropicContent{{Type: "text", Text: "ok"}}}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		_, err := client.Chat(context.Background(), []Message{
			{Role: "system", Content: strings.Repeat("s", 2048)},
			{Role: "user", Content: "hi"},
		}, GenerationParams{})
		require.NoError(t, err)
		require.Len(t, captured.System, 1)
		require.NotNil(t, captured.System[0].CacheControl)
		assert.Equal(t, "ephemeral", captured.System[0].CacheControl.Type)
	})

	t.Run("concatenates text blocks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := anthropicResponse{Content: []anthropicContent{
				{Type: "text", Text: "part one"},
				{Type: "text", Text: " part two"},
			}}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		text, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
		require.NoError(t, err)
		assert.Equal(t, "part one part two", text)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"type":"overloaded_error","message":"busy"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(anthropicResponse{})
		}))
		defer server.Close()

		client := newTestAnthropicClient(server)
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty content")
	})
}

func TestAnthropicClient_Generate(t *testing.T) {
	var captured anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		resp := anthropicResponse{Content: []anthropicContent{{Type: "text", Text: "ok"}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestAnthropicClient(server)
	_, err := client.Generate(context.Background(), "a prompt", GenerationParams{})
	require.NoError(t, err)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "a prompt", captured.Messages[0].Content)
	assert.Empty(t, captured.System)
}
