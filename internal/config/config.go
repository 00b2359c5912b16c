package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

// Config is resolved once at startup and handed to constructors as an
// immutable value. Business logic never reads the environment directly.
type Config struct {
	// Generation service
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	TripsFilePath  string `env:"TRIPS_FILE_PATH" envDefault:"data/saved_trips.json"`
	SharesFilePath string `env:"SHARES_FILE_PATH" envDefault:"data/shared_trips.json"`
	EventLogPath   string `env:"EVENT_LOG_PATH" envDefault:"logs/generations.jsonl"`

	// HTTP
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
