package trip

import (
	"context"
	"log"
	"time"

	"tripguide/internal/llm"
	"tripguide/internal/storage"
)

// Planner runs one generation end to end: prompt, model call, persistence.
// The itinerary is appended only after generation succeeds, so a failed call
// leaves no partial state behind. Retries are the caller's decision; on a
// transient failure the same request can simply be re-submitted.
type Planner struct {
	client llm.Client
	repo   *Repository
	rec    storage.Recorder
}

// NewPlanner wires a planner. rec may be nil to disable event recording.
func NewPlanner(client llm.Client, repo *Repository, rec storage.Recorder) *Planner {
	return &Planner{client: client, repo: repo, rec: rec}
}

func (p *Planner) Generate(ctx context.Context, username string, req Request) (Itinerary, error) {
	messages := PlanMessages(req)
	text, err := p.client.Generate(ctx, messages, PlanTemperature)
	if err != nil {
		return Itinerary{}, err
	}
	it, err := p.repo.SaveItinerary(username, req, text)
	if err != nil {
		return Itinerary{}, err
	}
	p.record(username, storage.EventPlan, messages, text)
	return it, nil
}

// Share publishes text under a fresh share id.
func (p *Planner) Share(text string) (string, error) {
	return p.repo.PublishShare(text)
}

// record is best-effort: a broken event log never fails the operation.
func (p *Planner) record(username, kind string, messages []llm.Message, response string) {
	if p.rec == nil {
		return
	}
	prompt := 0
	for _, m := range messages {
		prompt += len(m.Content)
	}
	ev := storage.Event{
		Timestamp:     time.Now(),
		Username:      username,
		Kind:          kind,
		PromptChars:   prompt,
		ResponseChars: len(response),
	}
	if err := p.rec.Append(ev); err != nil {
		log.Printf("failed to record %s event: %v", kind, err)
	}
}
