package main

import (
	"log"

	"github.com/joho/godotenv"

	"tripguide/internal/assistant"
	"tripguide/internal/config"
	"tripguide/internal/kvstore"
	"tripguide/internal/llm"
	"tripguide/internal/storage"
	"tripguide/internal/trip"
	"tripguide/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	client, err := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenRouterReferrer, cfg.OpenRouterTitle)
	if err != nil {
		// A missing credential is caught here, before any request is made.
		log.Fatalf("failed to create llm client: %v", err)
	}

	tripsStore, err := kvstore.New(cfg.TripsFilePath)
	if err != nil {
		log.Fatalf("failed to init trips store: %v", err)
	}
	sharesStore, err := kvstore.New(cfg.SharesFilePath)
	if err != nil {
		log.Fatalf("failed to init shares store: %v", err)
	}
	repo := trip.NewRepository(tripsStore, sharesStore)

	var rec storage.Recorder
	if cfg.EventLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.EventLogPath)
		if err != nil {
			log.Printf("failed to init event recorder: %v", err)
		} else {
			rec = fr
		}
	}

	planner := trip.NewPlanner(client, repo, rec)
	session := assistant.New(client)

	server := web.NewServer(planner, repo, session, rec, cfg.HTTPPort)
	log.Fatal(server.Start())
}
