// Package config loads the dojo's runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/dojo/internal/engine"
	"github.com/abhisek/dojo/internal/kata"
)

// Sound selects the audio cue backend.
type Sound string

const (
	SoundBell Sound = "bell"
	SoundOff  Sound = "off"
)

// Config holds the settings shared by every command.
type Config struct {
	Ruleset string `env:"DOJO_RULESET" envDefault:"shotokan"`

	// DBPath is the SQLite event log. Empty means the default location.
	DBPath string `env:"DOJO_DB"`

	// LogFile receives structured logs. Empty disables logging.
	LogFile  string `env:"DOJO_LOG_FILE"`
	LogLevel string `env:"DOJO_LOG_LEVEL" envDefault:"info"`

	PrepareDelay    time.Duration `env:"DOJO_PREPARE_DELAY" envDefault:"2s"`
	LastMoveClear   time.Duration `env:"DOJO_LAST_MOVE_CLEAR" envDefault:"400ms"`
	BreathTick      time.Duration `env:"DOJO_BREATH_TICK" envDefault:"50ms"`
	BreathIncrement int           `env:"DOJO_BREATH_INCREMENT" envDefault:"5"`

	AdvisoryTimeout time.Duration `env:"DOJO_ADVISORY_TIMEOUT" envDefault:"20s"`
	SenseiName      string        `env:"DOJO_SENSEI_NAME" envDefault:"Sensei Hiroshi"`
	SenseiLanguage  string        `env:"DOJO_SENSEI_LANGUAGE"`

	Sound Sound `env:"DOJO_SOUND" envDefault:"bell"`

	// Offline never calls an LLM. Set by --offline.
	Offline bool `env:"DOJO_OFFLINE"`

	// NoSplash skips the bow animation on launch.
	NoSplash bool `env:"DOJO_NO_SPLASH"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting against its allowed range.
func (c Config) Validate() error {
	var errs []error
	if c.Ruleset == "" {
		errs = append(errs, errors.New("DOJO_RULESET must not be empty"))
	}
	if c.PrepareDelay < 1500*time.Millisecond || c.PrepareDelay > 2*time.Second {
		errs = append(errs, fmt.Errorf("DOJO_PREPARE_DELAY %s outside 1.5s..2s", c.PrepareDelay))
	}
	if c.LastMoveClear < 300*time.Millisecond || c.LastMoveClear > 400*time.Millisecond {
		errs = append(errs, fmt.Errorf("DOJO_LAST_MOVE_CLEAR %s outside 300ms..400ms", c.LastMoveClear))
	}
	if c.BreathTick <= 0 {
		errs = append(errs, fmt.Errorf("DOJO_BREATH_TICK %s must be positive", c.BreathTick))
	}
	if c.BreathIncrement < 1 || c.BreathIncrement > 99 {
		errs = append(errs, fmt.Errorf("DOJO_BREATH_INCREMENT %d outside 1..99", c.BreathIncrement))
	}
	if c.AdvisoryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("DOJO_ADVISORY_TIMEOUT %s must be positive", c.AdvisoryTimeout))
	}
	switch c.Sound {
	case SoundBell, SoundOff:
	default:
		errs = append(errs, fmt.Errorf("DOJO_SOUND %q must be bell or off", c.Sound))
	}
	return errors.Join(errs...)
}

// Timing converts the delays for the engine.
func (c Config) Timing() engine.Timing {
	return engine.Timing{
		PrepareDelay:    c.PrepareDelay,
		LastMoveClear:   c.LastMoveClear,
		BreathTick:      c.BreathTick,
		BreathIncrement: c.BreathIncrement,
	}
}

// LoadRuleset resolves the configured ruleset.
func (c Config) LoadRuleset() (*kata.Ruleset, error) {
	return kata.Load(c.Ruleset)
}
