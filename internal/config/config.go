// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration. Empty paths are resolved by Resolve.
type Config struct {
	DataDir   string `env:"STASIS_DATA_DIR"`
	DBPath    string `env:"STASIS_DB"`
	Slot      string `env:"STASIS_SLOT" envDefault:"main"`
	Player    string `env:"STASIS_PLAYER" envDefault:"Player"`
	SaveKey   string `env:"STASIS_SAVE_KEY"`
	LogLevel  string `env:"STASIS_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"STASIS_LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file from the working directory and then parses
// the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Resolve()
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve fills the default data directory and database path.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.DBPath == "" {
		home, _ := os.UserHomeDir()
		c.DBPath = filepath.Join(home, ".stasis-hunters", "saves.db")
	}
}

// Key returns the save signing key, nil when unset.
func (c Config) Key() []byte {
	if c.SaveKey == "" {
		return nil
	}
	return []byte(c.SaveKey)
}

// NewLogger builds the process logger writing to stderr.
func NewLogger(c Config) (*slog.Logger, error) {
	return newLogger(c, os.Stderr)
}

func newLogger(c Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}
