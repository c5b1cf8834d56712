package llm

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// NewChatClient resolves a named backend to a configured ChatClient.
//
// Recognized values are "anthropic" (alias "claude"), "openai", and
// "ollama". When backend is empty, the TUTOR_BACKEND environment
// variable is consulted, falling back to "anthropic". Each client reads
// its own credentials and model identifier from the environment.
func NewChatClient(backend string) (ChatClient, error) {
	if backend == "" {
		backend = os.Getenv("TUTOR_BACKEND")
	}
	if backend == "" {
		backend = "anthropic"
	}

	slog.Info("Resolving LLM backend", "backend", backend)

	switch strings.ToLower(backend) {
	case "anthropic", "claude":
		return NewAnthropicClient()
	case "openai":
		return NewOpenAIClient()
	case "ollama":
		return NewOllamaClient()
	default:
		return nil, fmt.Errorf("unknown LLM backend %q (expected anthropic, openai, or ollama)", backend)
	}
}
