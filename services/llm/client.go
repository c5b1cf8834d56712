package llm

import "context"

// Message is a single role-tagged entry in a conversation.
// Role is one of "system", "user", or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// LLMClient defines the standard interface for any LLM backend
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// ChatClient is implemented by backends that accept a full role-tagged
// conversation. A "system" message, when present, is lifted into whatever
// native system-prompt mechanism the backend provides. The tutor
// controller depends on this interface and nothing else.
type ChatClient interface {
	LLMClient
	Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}
