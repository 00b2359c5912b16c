package storage

import "time"

const (
	EventPlan     = "plan"
	EventQuestion = "question"
)

// Event records one successful generation round-trip. Sizes are tracked
// instead of content so the log stays small and free of itinerary text.
// Events are appended in chronological order.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	Username      string    `json:"username"`
	Kind          string    `json:"kind"`
	PromptChars   int       `json:"prompt_chars"`
	ResponseChars int       `json:"response_chars"`
}

// Recorder abstracts persistence of generation events.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(event Event) error
	LoadAll() ([]Event, error)
}
