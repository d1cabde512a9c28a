// Package config defines process configuration and its layered loader.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid config")

// maxRulesCap bounds max_rules; rule listings never exceed it.
const maxRulesCap = 20

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	MatchesPath    string `koanf:"matches_path"`
	DeliveriesPath string `koanf:"deliveries_path"`

	// DBPath points at the SQLite import store. Empty disables the store.
	DBPath string `koanf:"db_path"`

	// Mining thresholds used when a request does not supply its own.
	MinSupport    float64 `koanf:"min_support"`
	MinConfidence float64 `koanf:"min_confidence"`
	MaxRules      int     `koanf:"max_rules"`

	// MinBallsFaced qualifies a batter for player clustering.
	MinBallsFaced int `koanf:"min_balls_faced"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":5000",
		MatchesPath:    "matches.csv",
		DeliveriesPath: "deliveries.csv",
		MinSupport:     0.05,
		MinConfidence:  0.6,
		MaxRules:       20,
		MinBallsFaced:  100,
	}
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinSupport <= 0 || c.MinSupport > 1:
		return fmt.Errorf("%w: min_support %v not in (0,1]", ErrInvalidConfig, c.MinSupport)
	case c.MinConfidence < 0 || c.MinConfidence > 1:
		return fmt.Errorf("%w: min_confidence %v not in [0,1]", ErrInvalidConfig, c.MinConfidence)
	case c.MaxRules < 1 || c.MaxRules > maxRulesCap:
		return fmt.Errorf("%w: max_rules %d not in [1,%d]", ErrInvalidConfig, c.MaxRules, maxRulesCap)
	case c.MinBallsFaced < 0:
		return fmt.Errorf("%w: min_balls_faced must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}
