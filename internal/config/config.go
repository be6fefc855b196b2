package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds runtime configuration for the chatbot.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"chaturn"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	UserName string `env:"USER_NAME" envDefault:"Space Explorer"`

	Data    Data
	Quiz    Quiz
	Metrics Metrics
}

// Data locates the knowledge sources and the optional vocabulary and
// content overrides. Empty override paths keep the built-in defaults.
type Data struct {
	AstronomyJSONPath   string `env:"ASTRONOMY_JSON_PATH" envDefault:"data/astronomy.json"`
	SpaceObjectsCSVPath string `env:"SPACE_OBJECTS_CSV_PATH" envDefault:"data/space_objects.csv"`
	LexiconPath         string `env:"LEXICON_PATH" envDefault:""`
	ChatContentPath     string `env:"CHAT_CONTENT_PATH" envDefault:""`
}

// Quiz tunes the quiz session.
type Quiz struct {
	BankPath            string  `env:"QUIZ_BANK_PATH" envDefault:""`
	SimilarityThreshold float64 `env:"SIMILARITY_THRESHOLD" envDefault:"0.85"`
}

// Metrics configures the optional ops HTTP server.
type Metrics struct {
	Addr                    string        `env:"METRICS_ADDR" envDefault:""`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"5s"`
}

// Enabled reports whether the ops server should start.
func (m Metrics) Enabled() bool {
	return m.Addr != ""
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if t := cfg.Quiz.SimilarityThreshold; t <= 0 || t > 1 {
		return nil, fmt.Errorf("parse config: SIMILARITY_THRESHOLD must be in (0, 1], got %v", t)
	}
	return cfg, nil
}
