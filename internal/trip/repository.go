package trip

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tripguide/internal/kvstore"
)

// Repository persists per-user itinerary logs and the share index. Logs are
// append-only: nothing here deletes or rewrites a saved itinerary, and share
// entries are write-once. Usernames are case-sensitive free-text keys with
// no normalization; avoiding collisions is the caller's problem.
//
// The mutex guards the whole load-mutate-save cycle, so writers within this
// process cannot lose each other's updates. See kvstore for the
// cross-process caveat.
type Repository struct {
	mu     sync.Mutex
	trips  *kvstore.Store
	shares *kvstore.Store
}

func NewRepository(trips, shares *kvstore.Store) *Repository {
	return &Repository{trips: trips, shares: shares}
}

// SaveItinerary appends a freshly identified itinerary to username's log,
// creating the log if absent, and persists it.
func (r *Repository) SaveItinerary(username string, req Request, text string) (Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := map[string][]Itinerary{}
	if err := r.trips.Load(&logs); err != nil {
		return Itinerary{}, fmt.Errorf("load trips: %w", err)
	}
	it := Itinerary{
		ID:     uuid.NewString(),
		Cities: append([]string(nil), req.Cities...),
		Text:   text,
	}
	logs[username] = append(logs[username], it)
	if err := r.trips.Save(logs); err != nil {
		return Itinerary{}, fmt.Errorf("save trips: %w", err)
	}
	return it, nil
}

// LastItineraryFor returns the most recently saved itinerary for username,
// or ok=false if the user has none.
func (r *Repository) LastItineraryFor(username string) (Itinerary, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := map[string][]Itinerary{}
	if err := r.trips.Load(&logs); err != nil {
		return Itinerary{}, false, fmt.Errorf("load trips: %w", err)
	}
	entries := logs[username]
	if len(entries) == 0 {
		return Itinerary{}, false, nil
	}
	return entries[len(entries)-1], true, nil
}

// ItinerariesFor returns username's full log in chronological order.
func (r *Repository) ItinerariesFor(username string) ([]Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := map[string][]Itinerary{}
	if err := r.trips.Load(&logs); err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	return append([]Itinerary(nil), logs[username]...), nil
}

// PublishShare stores text under a fresh opaque id and returns the id. The
// share index keeps only the text — no user or city linkage.
func (r *Repository) PublishShare(text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shared := map[string]string{}
	if err := r.shares.Load(&shared); err != nil {
		return "", fmt.Errorf("load shares: %w", err)
	}
	id := uuid.NewString()
	shared[id] = text
	if err := r.shares.Save(shared); err != nil {
		return "", fmt.Errorf("save shares: %w", err)
	}
	return id, nil
}

// SharedItinerary resolves a share id to its stored text.
func (r *Repository) SharedItinerary(id string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shared := map[string]string{}
	if err := r.shares.Load(&shared); err != nil {
		return "", false, fmt.Errorf("load shares: %w", err)
	}
	text, ok := shared[id]
	return text, ok, nil
}
