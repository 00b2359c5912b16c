// Package assistant answers follow-up questions about an already generated
// itinerary.
package assistant

import (
	"context"
	"fmt"

	"tripguide/internal/llm"
)

// Temperature is lower than planning on purpose: Q&A favors stable answers
// over creative ones.
const Temperature = 0.5

const systemPrompt = "You are a helpful travel assistant."

type Session struct {
	client llm.Client
}

func New(client llm.Client) *Session {
	return &Session{client: client}
}

// Ask embeds the prior itinerary and the question verbatim and returns the
// model's answer. The caller is responsible for only asking once an
// itinerary exists; an empty itineraryText is structurally valid but the
// service will likely answer poorly. Failures carry llm's classification.
func (s *Session) Ask(ctx context.Context, question, itineraryText string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Itinerary:\n%s\n\nQuestion: %s", itineraryText, question)},
	}
	return s.client.Generate(ctx, messages, Temperature)
}
