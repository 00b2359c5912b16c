// Package web exposes the trip pipeline over HTTP: a small form UI, a JSON
// API, share pages and the PDF download. Every core operation stays callable
// without this package; nothing here is required for headless use.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"tripguide/internal/assistant"
	"tripguide/internal/storage"
	"tripguide/internal/trip"
)

type Server struct {
	planner   *trip.Planner
	repo      *trip.Repository
	session   *assistant.Session
	rec       storage.Recorder
	server    *http.Server
	port      int
	startTime time.Time
}

// NewServer wires the HTTP surface. rec may be nil to disable event recording.
func NewServer(planner *trip.Planner, repo *trip.Repository, session *assistant.Session, rec storage.Recorder, port int) *Server {
	return &Server{
		planner:   planner,
		repo:      repo,
		session:   session,
		rec:       rec,
		port:      port,
		startTime: time.Now(),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/trips", s.handleGenerate)
	mux.HandleFunc("GET /api/trips/{username}/last", s.handleLastItinerary)
	mux.HandleFunc("GET /api/trips/{username}/last/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /api/assistant", s.handleAssistant)
	mux.HandleFunc("GET /api/shares/{id}", s.handleShareJSON)
	mux.HandleFunc("GET /shares/{id}", s.handleSharePage)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation round-trips are slow
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting travel guide server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
