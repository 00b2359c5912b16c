package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/yuin/goldmark"

	"tripguide/internal/export"
	"tripguide/internal/llm"
	"tripguide/internal/pricing"
	"tripguide/internal/storage"
	"tripguide/internal/trip"
)

// pricingNote labels the static price tables wherever they appear.
const pricingNote = "Sample data for illustration — not live prices."

type generateRequest struct {
	Username   string   `json:"username"`
	Cities     []string `json:"cities"`
	TotalDays  int      `json:"total_days"`
	Interests  []string `json:"interests"`
	Guardrails []string `json:"guardrails"`
	Language   string   `json:"language"`
}

type cityPricing struct {
	City    string                `json:"city"`
	Hotels  []pricing.HotelPrice  `json:"hotels"`
	Flights []pricing.FlightPrice `json:"flights"`
}

type generateResponse struct {
	Itinerary     trip.Itinerary `json:"itinerary"`
	ItineraryHTML string         `json:"itinerary_html"`
	ShareID       string         `json:"share_id"`
	Pricing       []cityPricing  `json:"pricing"`
	PricingNote   string         `json:"pricing_note"`
}

type assistantRequest struct {
	Username string `json:"username"`
	Question string `json:"question"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "validation", "username is required")
		return
	}

	tripReq := trip.Request{
		Cities:     cleanCities(req.Cities),
		TotalDays:  req.TotalDays,
		Interests:  req.Interests,
		Guardrails: req.Guardrails,
		Language:   req.Language,
	}
	if err := tripReq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	it, err := s.planner.Generate(r.Context(), req.Username, tripReq)
	if err != nil {
		writeFailure(w, err)
		return
	}

	shareID, err := s.planner.Share(it.Text)
	if err != nil {
		// The itinerary itself is already saved; only sharing failed.
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Itinerary:     it,
		ItineraryHTML: markdownHTML(it.Text),
		ShareID:       shareID,
		Pricing: lo.Map(tripReq.Cities, func(city string, _ int) cityPricing {
			return cityPricing{
				City:    city,
				Hotels:  pricing.HotelPrices(city),
				Flights: pricing.FlightPrices(city),
			}
		}),
		PricingNote: pricingNote,
	})
}

func (s *Server) handleLastItinerary(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	it, ok, err := s.repo.LastItineraryFor(username)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no itinerary saved for this user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"itinerary":      it,
		"itinerary_html": markdownHTML(it.Text),
	})
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	it, ok, err := s.repo.LastItineraryFor(username)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no itinerary saved for this user")
		return
	}
	doc, err := export.Document("Travel Guide Itinerary", it.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export", "failed to render document")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="Travel_Plan.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Printf("failed to write pdf response: %v", err)
	}
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "validation", "username and question are required")
		return
	}

	// The session precondition lives here: never ask without a saved itinerary.
	it, ok, err := s.repo.LastItineraryFor(req.Username)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no_itinerary", "generate an itinerary before asking questions")
		return
	}

	answer, err := s.session.Ask(r.Context(), req.Question, it.Text)
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.recordQuestion(req.Username, len(it.Text)+len(req.Question), len(answer))
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// recordQuestion is best-effort: a broken event log never fails the request.
func (s *Server) recordQuestion(username string, promptChars, responseChars int) {
	if s.rec == nil {
		return
	}
	ev := storage.Event{
		Timestamp:     time.Now(),
		Username:      username,
		Kind:          storage.EventQuestion,
		PromptChars:   promptChars,
		ResponseChars: responseChars,
	}
	if err := s.rec.Append(ev); err != nil {
		log.Printf("failed to record question event: %v", err)
	}
}

func (s *Server) handleShareJSON(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	text, ok, err := s.repo.SharedItinerary(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown share id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "itinerary": text})
}

func cleanCities(cities []string) []string {
	var out []string
	for _, c := range cities {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func markdownHTML(text string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		// Fall back to the raw text; generation output is never lost over a
		// rendering hiccup.
		return text
	}
	return buf.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// writeFailure maps classified core failures onto HTTP statuses: rejected
// credentials and remote-service errors become 502, retryable conditions
// 503, storage problems 500.
func writeFailure(w http.ResponseWriter, err error) {
	var vErr *trip.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "validation", vErr.Error())
	case llm.IsAuthentication(err):
		writeError(w, http.StatusBadGateway, "authentication", "generation service credential is missing or invalid")
	case llm.IsTransient(err):
		writeError(w, http.StatusServiceUnavailable, "transient", "generation service is unavailable, try again")
	case llm.IsService(err):
		writeError(w, http.StatusBadGateway, "service", "generation service rejected the request")
	default:
		log.Printf("storage failure: %v", err)
		writeError(w, http.StatusInternalServerError, "storage", fmt.Sprintf("failed to persist data: %v", err))
	}
}
