// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
)

// Config holds runtime settings.
type Config struct {
	// Seed for the game RNG. 0 means a random seed.
	Seed int64 `env:"DICECRAWL_SEED" envDefault:"0"`
	// Class preselects a character, skipping the selection screen.
	Class string `env:"DICECRAWL_CLASS"`

	LogLevel string `env:"DICECRAWL_LOG_LEVEL" envDefault:"info"`
	// LogFile receives logs in play mode. Empty discards them, since the
	// terminal belongs to the UI.
	LogFile string `env:"DICECRAWL_LOG_FILE"`

	MoveDelay      time.Duration `env:"DICECRAWL_MOVE_DELAY"       envDefault:"500ms"`
	EnemyTurnDelay time.Duration `env:"DICECRAWL_ENEMY_TURN_DELAY" envDefault:"1s"`

	TelemetryEnabled bool   `env:"DICECRAWL_TELEMETRY"          envDefault:"false"`
	OTLPEndpoint     string `env:"DICECRAWL_OTLP_ENDPOINT"      envDefault:"https://api.honeycomb.io"`
	HoneycombAPIKey  string `env:"HONEYCOMB_DICECRAWL_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_DICECRAWL_DATASET"  envDefault:"dicecrawl"`
}

// Load reads .env files (default ".env") into the process environment and
// then parses it. Missing .env files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug(".env file not loaded", "error", err)
	}
	return Parse()
}

// Parse reads the configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects negative delays and unknown log levels.
func (c Config) Validate() error {
	if c.MoveDelay < 0 {
		return errors.InvalidArgumentf("move delay must not be negative, got %s", c.MoveDelay)
	}
	if c.EnemyTurnDelay < 0 {
		return errors.InvalidArgumentf("enemy turn delay must not be negative, got %s", c.EnemyTurnDelay)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level, defaulting to info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", name)
	}
	return level, nil
}

// TelemetryOptions exports spans to the configured OTLP endpoint, adding
// the Honeycomb team and dataset headers when an API key is set.
func (c Config) TelemetryOptions(version string) telemetry.Options {
	opts := telemetry.Options{
		Endpoint:       strings.TrimRight(c.OTLPEndpoint, "/"),
		ServiceVersion: version,
	}
	if c.HoneycombAPIKey == "" {
		return opts
	}
	dataset := c.HoneycombDataset
	if dataset == "" {
		dataset = "dicecrawl"
	}
	opts.Headers = map[string]string{
		"x-honeycomb-team":    c.HoneycombAPIKey,
		"x-honeycomb-dataset": dataset,
	}
	return opts
}
