package trip

import "fmt"

// Languages the planner form offers. Free-text languages are rejected so the
// prompt always carries a label the model recognizes.
var Languages = []string{"English", "Spanish", "French", "German", "Hindi"}

// Option lists shown by the form. They are suggestions, not an allowlist:
// interests and guardrails stay free text once submitted.
var (
	InterestOptions = []string{
		"Museums", "Food & Cuisine", "Historic Sites", "Nightlife", "Nature", "Shopping",
	}
	GuardrailOptions = []string{
		"No walking tours", "Kids friendly", "Wheelchair accessible", "No nightlife",
	}
)

const MaxDays = 90

// Request holds the trip parameters for one generation. Treat values as
// immutable once built.
type Request struct {
	Cities     []string `json:"cities"`
	TotalDays  int      `json:"total_days"`
	Interests  []string `json:"interests"`
	Guardrails []string `json:"guardrails"`
	Language   string   `json:"language"`
}

// Itinerary is one generated plan. Field names match the on-disk schema of
// saved_trips.json. Never mutated after creation.
type Itinerary struct {
	ID     string   `json:"id"`
	Cities []string `json:"cities"`
	Text   string   `json:"itinerary"`
}

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks the request before any core operation runs. Core
// operations themselves assume a valid request.
func (r Request) Validate() error {
	city := ""
	for _, c := range r.Cities {
		if c != "" {
			city = c
			break
		}
	}
	if city == "" {
		return validationErrorf("at least one city is required")
	}
	if r.TotalDays < 1 {
		return validationErrorf("total days must be at least 1")
	}
	if r.TotalDays > MaxDays {
		return validationErrorf("total days must be at most %d", MaxDays)
	}
	for _, l := range Languages {
		if r.Language == l {
			return nil
		}
	}
	return validationErrorf("unsupported language %q", r.Language)
}
