package trip

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripguide/internal/llm"
	"tripguide/internal/storage"
)

type fakeClient struct {
	response    string
	err         error
	gotMessages []llm.Message
	gotTemp     float32
	calls       int
}

func (f *fakeClient) Generate(_ context.Context, messages []llm.Message, temperature float32) (string, error) {
	f.calls++
	f.gotMessages = messages
	f.gotTemp = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type memRecorder struct {
	events []storage.Event
}

func (m *memRecorder) Append(ev storage.Event) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memRecorder) LoadAll() ([]storage.Event, error) { return m.events, nil }

func TestPlannerGenerateSavesItinerary(t *testing.T) {
	repo := newTestRepo(t, t.TempDir())
	client := &fakeClient{response: "generated itinerary"}
	rec := &memRecorder{}
	p := NewPlanner(client, repo, rec)

	req := Request{Cities: []string{"Paris", "Rome"}, TotalDays: 5, Language: "English"}
	it, err := p.Generate(context.Background(), "alice", req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if it.Text != "generated itinerary" {
		t.Fatalf("unexpected text %q", it.Text)
	}
	if client.gotTemp != PlanTemperature {
		t.Fatalf("want plan temperature %v, got %v", PlanTemperature, client.gotTemp)
	}
	if len(client.gotMessages) != 1 || !strings.Contains(client.gotMessages[0].Content, "Paris, Rome") {
		t.Fatalf("planner must send the rendered prompt: %+v", client.gotMessages)
	}

	last, ok, err := repo.LastItineraryFor("alice")
	if err != nil || !ok {
		t.Fatalf("last: ok=%v err=%v", ok, err)
	}
	if last.ID != it.ID {
		t.Fatalf("saved itinerary mismatch: %q vs %q", last.ID, it.ID)
	}

	if len(rec.events) != 1 || rec.events[0].Kind != storage.EventPlan {
		t.Fatalf("want one plan event, got %+v", rec.events)
	}
	if rec.events[0].Username != "alice" || rec.events[0].ResponseChars != len(it.Text) {
		t.Fatalf("unexpected event %+v", rec.events[0])
	}
}

func TestPlannerGenerateFailurePersistsNothing(t *testing.T) {
	repo := newTestRepo(t, t.TempDir())
	authErr := &llm.Error{Kind: llm.KindAuthentication, Err: errors.New("invalid api key")}
	client := &fakeClient{err: authErr}
	p := NewPlanner(client, repo, nil)

	req := Request{Cities: []string{"Paris"}, TotalDays: 2, Language: "English"}
	_, err := p.Generate(context.Background(), "alice", req)
	if !llm.IsAuthentication(err) {
		t.Fatalf("want authentication failure, got %v", err)
	}

	if _, ok, _ := repo.LastItineraryFor("alice"); ok {
		t.Fatalf("no itinerary may be persisted when generation fails")
	}
}

func TestPlannerResendAfterTransientFailure(t *testing.T) {
	repo := newTestRepo(t, t.TempDir())
	client := &fakeClient{err: &llm.Error{Kind: llm.KindTransient, Err: errors.New("timeout")}}
	p := NewPlanner(client, repo, nil)

	req := Request{Cities: []string{"Rome"}, TotalDays: 3, Language: "English"}
	if _, err := p.Generate(context.Background(), "bob", req); !llm.IsTransient(err) {
		t.Fatalf("want transient failure, got %v", err)
	}

	// Caller's retry policy: the same request is simply re-submitted.
	client.err = nil
	client.response = "second try"
	it, err := p.Generate(context.Background(), "bob", req)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if it.Text != "second try" {
		t.Fatalf("unexpected text %q", it.Text)
	}
	log, _ := repo.ItinerariesFor("bob")
	if len(log) != 1 {
		t.Fatalf("only the successful attempt may be persisted, got %d entries", len(log))
	}
	if client.calls != 2 {
		t.Fatalf("want 2 generation calls, got %d", client.calls)
	}
}
