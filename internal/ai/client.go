package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatOptions struct {
	MaxTokens int
}

type Client interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, []byte, error)
}

func resolveMaxTokens(value, fallback int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}

	return defaultMaxTokens
}
