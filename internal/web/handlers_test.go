package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tripguide/internal/assistant"
	"tripguide/internal/kvstore"
	"tripguide/internal/llm"
	"tripguide/internal/trip"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) Generate(_ context.Context, _ []llm.Message, _ float32) (string, error) {
	return f.response, f.err
}

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	dir := t.TempDir()
	trips, err := kvstore.New(filepath.Join(dir, "saved_trips.json"))
	if err != nil {
		t.Fatalf("trips store: %v", err)
	}
	shares, err := kvstore.New(filepath.Join(dir, "shared_trips.json"))
	if err != nil {
		t.Fatalf("shares store: %v", err)
	}
	repo := trip.NewRepository(trips, shares)
	planner := trip.NewPlanner(client, repo, nil)
	return NewServer(planner, repo, assistant.New(client), nil, 0)
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestGenerateHappyPath(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "## Day 1\nVisit the Colosseum."})
	mux := s.routes()

	w := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]any{
		"username":   "alice",
		"cities":     []string{"Paris", " Rome "},
		"total_days": 5,
		"language":   "English",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp generateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Itinerary.ID == "" || resp.Itinerary.Text == "" {
		t.Fatalf("itinerary not returned: %+v", resp.Itinerary)
	}
	if len(resp.Itinerary.Cities) != 2 || resp.Itinerary.Cities[1] != "Rome" {
		t.Fatalf("cities must be trimmed, order preserved: %+v", resp.Itinerary.Cities)
	}
	if !strings.Contains(resp.ItineraryHTML, "<h2>") {
		t.Fatalf("markdown not rendered: %q", resp.ItineraryHTML)
	}
	if resp.ShareID == "" {
		t.Fatalf("share id missing")
	}
	if len(resp.Pricing) != 2 || len(resp.Pricing[0].Hotels) == 0 {
		t.Fatalf("sample pricing missing: %+v", resp.Pricing)
	}
	if resp.PricingNote == "" {
		t.Fatalf("pricing must be labeled as sample data")
	}

	// The issued share id resolves to the exact itinerary text.
	ws := doJSON(t, mux, http.MethodGet, "/api/shares/"+resp.ShareID, nil)
	if ws.Code != http.StatusOK {
		t.Fatalf("share lookup: want 200, got %d", ws.Code)
	}
	var share map[string]string
	if err := json.NewDecoder(ws.Body).Decode(&share); err != nil {
		t.Fatalf("decode share: %v", err)
	}
	if share["itinerary"] != resp.Itinerary.Text {
		t.Fatalf("share text mismatch: %q", share["itinerary"])
	}
}

func TestGenerateValidation(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "plan"})
	mux := s.routes()

	cases := []map[string]any{
		{"cities": []string{"Paris"}, "total_days": 5, "language": "English"},                        // no username
		{"username": "alice", "cities": []string{"  "}, "total_days": 5, "language": "English"},      // no city
		{"username": "alice", "cities": []string{"Paris"}, "total_days": 0, "language": "English"},   // bad days
		{"username": "alice", "cities": []string{"Paris"}, "total_days": 5, "language": "Klingon"},   // bad language
		{"username": "alice", "cities": []string{"Paris"}, "total_days": 120, "language": "English"}, // over limit
	}
	for i, body := range cases {
		w := doJSON(t, mux, http.MethodPost, "/api/trips", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d: want 400, got %d: %s", i, w.Code, w.Body.String())
		}
	}
}

func TestGenerateAuthenticationFailure(t *testing.T) {
	s := newTestServer(t, &fakeClient{err: &llm.Error{Kind: llm.KindAuthentication, Err: errors.New("invalid key")}})
	mux := s.routes()

	w := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]any{
		"username": "alice", "cities": []string{"Paris"}, "total_days": 3, "language": "English",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", w.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] != "authentication" {
		t.Fatalf("want authentication code, got %+v", resp)
	}

	// Nothing may have been persisted.
	wl := doJSON(t, mux, http.MethodGet, "/api/trips/alice/last", nil)
	if wl.Code != http.StatusNotFound {
		t.Fatalf("want 404 after failed generation, got %d", wl.Code)
	}
}

func TestTransientFailureMapsTo503(t *testing.T) {
	s := newTestServer(t, &fakeClient{err: &llm.Error{Kind: llm.KindTransient, Err: errors.New("timeout")}})
	w := doJSON(t, s.routes(), http.MethodPost, "/api/trips", map[string]any{
		"username": "alice", "cities": []string{"Paris"}, "total_days": 3, "language": "English",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", w.Code)
	}
}

func TestAssistantRequiresItinerary(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "answer"})
	w := doJSON(t, s.routes(), http.MethodPost, "/api/assistant", map[string]any{
		"username": "nobody", "question": "where to eat?",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] != "no_itinerary" {
		t.Fatalf("want no_itinerary code, got %+v", resp)
	}
}

func TestAssistantAnswersAgainstLastItinerary(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "plan text"})
	mux := s.routes()

	w := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]any{
		"username": "alice", "cities": []string{"Paris"}, "total_days": 2, "language": "English",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: %d", w.Code)
	}

	wa := doJSON(t, mux, http.MethodPost, "/api/assistant", map[string]any{
		"username": "alice", "question": "what about day 2?",
	})
	if wa.Code != http.StatusOK {
		t.Fatalf("ask: want 200, got %d: %s", wa.Code, wa.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(wa.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["answer"] == "" {
		t.Fatalf("empty answer")
	}
}

func TestExportPDFDownload(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "Day 1: Arrive\nDay 2: Explore"})
	mux := s.routes()

	w := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]any{
		"username": "alice", "cities": []string{"Paris"}, "total_days": 2, "language": "English",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: %d", w.Code)
	}

	wp := doJSON(t, mux, http.MethodGet, "/api/trips/alice/last/pdf", nil)
	if wp.Code != http.StatusOK {
		t.Fatalf("pdf: want 200, got %d", wp.Code)
	}
	if ct := wp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(wp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	w := doJSON(t, s.routes(), http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}
