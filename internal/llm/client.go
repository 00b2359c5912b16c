package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Client abstracts a text-generation backend. Implementations block until
// the remote service answers or fails; they never retry or cache. Identical
// inputs may produce different outputs at temperature > 0.
type Client interface {
	Generate(ctx context.Context, messages []Message, temperature float32) (string, error)
}
