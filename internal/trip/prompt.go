package trip

import (
	"fmt"
	"strings"

	"tripguide/internal/llm"
)

// Sampling temperatures. Planning favors variety; the assistant (see
// internal/assistant) runs cooler on purpose.
const PlanTemperature = 0.7

const (
	fallbackInterests  = "General sightseeing"
	fallbackGuardrails = "None"
)

const planPromptTemplate = `You are an expert travel planner.

Language: %s
Cities: %s
Total days: %d

Interests: %s
Constraints: %s

Generate a detailed itinerary with:
- City-wise and day-wise breakdown
- Morning, Afternoon, Evening schedule
- Top-rated attractions with reviews
- Hotel & restaurant recommendations
- Estimated daily cost in USD

Format cleanly.`

// PlanMessages renders the generation request for req. Pure function: city
// order is preserved, empty interest/guardrail sets fall back to fixed
// literals, and equal requests always produce equal output.
func PlanMessages(req Request) []llm.Message {
	interests := fallbackInterests
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	guardrails := fallbackGuardrails
	if len(req.Guardrails) > 0 {
		guardrails = strings.Join(req.Guardrails, ", ")
	}
	prompt := fmt.Sprintf(planPromptTemplate,
		req.Language,
		strings.Join(req.Cities, ", "),
		req.TotalDays,
		interests,
		guardrails,
	)
	return []llm.Message{{Role: llm.RoleUser, Content: prompt}}
}
