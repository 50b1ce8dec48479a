// Package config loads the HCL configuration file for the headsup server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/headsup/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server    *ServerSettings    `hcl:"server,block"`
	Match     *MatchSettings     `hcl:"match,block"`
	Store     *StoreSettings     `hcl:"store,block"`
	Retention *RetentionSettings `hcl:"retention,block"`
}

// ServerSettings contains listener and logging configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// MatchSettings are the defaults for matches created without explicit
// parameters.
type MatchSettings struct {
	StartingChips int `hcl:"starting_chips,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	MaxHands      int `hcl:"max_hands,optional"`
}

// StoreSettings selects where match state lives.
type StoreSettings struct {
	Backend     string `hcl:"backend,optional"` // memory or redis
	RedisAddr   string `hcl:"redis_addr,optional"`
	RedisPrefix string `hcl:"redis_prefix,optional"`
}

// RetentionSettings controls how long completed matches are kept.
type RetentionSettings struct {
	Completed     string `hcl:"completed,optional"`
	SweepInterval string `hcl:"sweep_interval,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost:8080",
			LogLevel: "info",
		},
		Match: &MatchSettings{
			StartingChips: 1000,
			SmallBlind:    10,
			BigBlind:      20,
			MaxHands:      100,
		},
		Store: &StoreSettings{
			Backend:     "memory",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "headsup:match:",
		},
		Retention: &RetentionSettings{
			Completed:     "1h",
			SweepInterval: "1m",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values left out of the file keep their defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() *Config {
	d := Default()
	if s := c.Server; s != nil {
		if s.Address != "" {
			d.Server.Address = s.Address
		}
		if s.LogLevel != "" {
			d.Server.LogLevel = s.LogLevel
		}
	}
	if m := c.Match; m != nil {
		if m.StartingChips != 0 {
			d.Match.StartingChips = m.StartingChips
		}
		if m.SmallBlind != 0 {
			d.Match.SmallBlind = m.SmallBlind
		}
		if m.BigBlind != 0 {
			d.Match.BigBlind = m.BigBlind
		}
		if m.MaxHands != 0 {
			d.Match.MaxHands = m.MaxHands
		}
	}
	if s := c.Store; s != nil {
		if s.Backend != "" {
			d.Store.Backend = s.Backend
		}
		if s.RedisAddr != "" {
			d.Store.RedisAddr = s.RedisAddr
		}
		if s.RedisPrefix != "" {
			d.Store.RedisPrefix = s.RedisPrefix
		}
	}
	if r := c.Retention; r != nil {
		if r.Completed != "" {
			d.Retention.Completed = r.Completed
		}
		if r.SweepInterval != "" {
			d.Retention.SweepInterval = r.SweepInterval
		}
	}
	return d
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must be set")
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if err := c.MatchDefaults().Validate(); err != nil {
		return fmt.Errorf("match: %w", err)
	}

	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store: redis backend requires redis_addr")
		}
	default:
		return fmt.Errorf("store: unknown backend %q", c.Store.Backend)
	}

	if _, err := c.CompletedRetention(); err != nil {
		return err
	}
	if _, err := c.SweepInterval(); err != nil {
		return err
	}
	return nil
}

// MatchDefaults returns the engine configuration for new matches. The seed
// is left zero so each match draws its own.
func (c *Config) MatchDefaults() game.Config {
	return game.Config{
		StartingChips: c.Match.StartingChips,
		SmallBlind:    c.Match.SmallBlind,
		BigBlind:      c.Match.BigBlind,
		MaxHands:      c.Match.MaxHands,
	}
}

// CompletedRetention parses the retention period for completed matches.
func (c *Config) CompletedRetention() (time.Duration, error) {
	return positiveDuration("retention.completed", c.Retention.Completed)
}

// SweepInterval parses how often expired matches are swept.
func (c *Config) SweepInterval() (time.Duration, error) {
	return positiveDuration("retention.sweep_interval", c.Retention.SweepInterval)
}

func positiveDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, value)
	}
	return d, nil
}
