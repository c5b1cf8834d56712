package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatClient(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewChatClient("cloudbrain")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cloudbrain")
	})

	t.Run("ollama requires a base URL", func(t *testing.T) {
		t.Setenv("OLLAMA_BASE_URL", "")
		_, err := NewChatClient("ollama")
		assert.Error(t, err)
	})

	t.Run("resolves ollama from the environment", func(t *testing.T) {
		t.Setenv("OLLAMA_BASE_URL", "http://localhost:11434")
		t.Setenv("OLLAMA_MODEL", "llama3")
		client, err := NewChatClient("ollama")
		require.NoError(t, err)
		ollama, ok := client.(*OllamaClient)
		require.True(t, ok)
		assert.Equal(t, "llama3", ollama.Model())
	})

	t.Run("empty backend falls back to TUTOR_BACKEND", func(t *testing.T) {
		t.Setenv("TUTOR_BACKEND", "ollama")
		t.Setenv("OLLAMA_BASE_URL", "http://localhost:11434")
		client, err := NewChatClient("")
		require.NoError(t, err)
		_, ok := client.(*OllamaClient)
		assert.True(t, ok)
	})

	t.Run("anthropic requires an API key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		_, err := NewChatClient("anthropic")
		assert.Error(t, err)
	})

	t.Run("claude aliases anthropic", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "test-key")
		t.Setenv("CLAUDE_MODEL", "claude-test")
		client, err := NewChatClient("claude")
		require.NoError(t, err)
		anthropic, ok := client.(*AnthropicClient)
		require.True(t, ok)
		assert.Equal(t, "claude-test", anthropic.Model())
	})
}
