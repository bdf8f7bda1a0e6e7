// Package config loads Astra Play settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all Astra Play configuration.
type Config struct {
	Session     SessionConfig     `yaml:"session"`
	Duel        DuelConfig        `yaml:"duel"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Journal     JournalConfig     `yaml:"journal"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SessionConfig is the progression a new session starts from.
type SessionConfig struct {
	StartLevel int `yaml:"start_level"`
	StartXP    int `yaml:"start_xp"`
	StartStars int `yaml:"start_stars"`
}

type DuelConfig struct {
	Delay time.Duration `yaml:"delay" env:"ASTRA_DUEL_DELAY"`
}

// LeaderboardConfig seeds the random source. Zero draws a fresh seed.
type LeaderboardConfig struct {
	Seed int64 `yaml:"seed" env:"ASTRA_SEED"`
}

// JournalConfig points the session journal at a SQLite DSN or file path.
// Empty keeps it in memory.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" env:"ASTRA_JOURNAL_ENABLED"`
	DSN     string `yaml:"dsn" env:"ASTRA_JOURNAL_DSN"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"ASTRA_LOG_LEVEL"` // debug, info, warn, error
	// File receives logs when set; otherwise logs go to stderr.
	File string `yaml:"file" env:"ASTRA_LOG_FILE"`
}

// DefaultConfig mirrors the demo's starting state.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			StartLevel: 3,
			StartXP:    45,
			StartStars: 12,
		},
		Duel: DuelConfig{
			Delay: 500 * time.Millisecond,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns ~/.astraplay.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".astraplay.yaml"), nil
}

// Load reads path over the defaults, applies environment overrides and
// validates. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Session.StartLevel < 1 {
		return fmt.Errorf("session.start_level must be >= 1, got %d", c.Session.StartLevel)
	}
	if c.Session.StartXP < 0 || c.Session.StartXP >= 100 {
		return fmt.Errorf("session.start_xp must be in [0,100), got %d", c.Session.StartXP)
	}
	if c.Session.StartStars < 0 {
		return fmt.Errorf("session.start_stars must be >= 0, got %d", c.Session.StartStars)
	}
	if c.Duel.Delay < 0 {
		return fmt.Errorf("duel.delay must not be negative, got %s", c.Duel.Delay)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %q", c.Logging.Level)
	}
	return nil
}
