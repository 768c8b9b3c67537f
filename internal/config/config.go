// Package config loads application configuration from an optional YAML
// file, ANKIGO_ environment variables and command line flags, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/zlatanpham/ankigo/internal/srs"
)

const envPrefix = "ANKIGO_"

// Config holds all configuration for the application.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Decks     DecksConfig     `koanf:"decks"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Reminder  ReminderConfig  `koanf:"reminder"`
	Log       LogConfig       `koanf:"log"`
}

// DatabaseConfig locates the sqlite database file.
type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// DecksConfig holds deck source settings.
type DecksConfig struct {
	// ReposDir is where git sources are checked out.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// SchedulerConfig exposes the scheduling knobs. Durations accept Go
// syntax ("1m", "10m"); learning steps may be a YAML list or a
// comma-separated string.
type SchedulerConfig struct {
	LearningSteps      []time.Duration `koanf:"learning_steps" validate:"min=1,dive,gt=0"`
	RelearningStep     time.Duration   `koanf:"relearning_step" validate:"gt=0"`
	InitialEase        float64         `koanf:"initial_ease" validate:"gte=1.3"`
	GraduatingInterval int             `koanf:"graduating_interval" validate:"min=1"`
	EasyInterval       int             `koanf:"easy_interval" validate:"min=1"`
	HardMultiplier     float64         `koanf:"hard_multiplier" validate:"gt=0"`
	EasyMultiplier     float64         `koanf:"easy_multiplier" validate:"gt=0"`
}

// SRS returns the scheduler settings in the form the srs package
// consumes.
func (c SchedulerConfig) SRS() srs.Config {
	return srs.Config{
		LearningSteps:      c.LearningSteps,
		RelearningStep:     c.RelearningStep,
		InitialEase:        c.InitialEase,
		GraduatingInterval: c.GraduatingInterval,
		EasyInterval:       c.EasyInterval,
		HardMultiplier:     c.HardMultiplier,
		EasyMultiplier:     c.EasyMultiplier,
	}
}

// ReminderConfig controls the due-card reminder loop. Hours are
// inclusive and use the local clock.
type ReminderConfig struct {
	Every     time.Duration `koanf:"every" validate:"gt=0"`
	StartHour int           `koanf:"start_hour" validate:"min=0,max=23"`
	EndHour   int           `koanf:"end_hour" validate:"min=0,max=23,gtefield=StartHour"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: "ankigo.db"},
		Decks:    DecksConfig{ReposDir: "repos"},
		Scheduler: SchedulerConfig{
			LearningSteps:      []time.Duration{time.Minute, 10 * time.Minute},
			RelearningStep:     10 * time.Minute,
			InitialEase:        srs.DefaultEase,
			GraduatingInterval: 1,
			EasyInterval:       4,
			HardMultiplier:     1.2,
			EasyMultiplier:     1.3,
		},
		Reminder: ReminderConfig{Every: time.Hour, StartHour: 8, EndHour: 22},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// flagKeys maps global command line flags to config keys. Flags not
// listed here belong to individual subcommands and never reach the
// config layer.
var flagKeys = map[string]string{
	"db":         "database.path",
	"repos-dir":  "decks.repos_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Load reads path as YAML (a missing file is fine), layers ANKIGO_
// environment variables and then explicitly set flags on top, and
// validates the result.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// ANKIGO_DATABASE_PATH -> database.path. All keys are exactly two
	// levels deep, so only the first underscore becomes a separator.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithValue(flags, ".", k, func(name, value string) (string, any) {
			key, ok := flagKeys[name]
			if !ok || value == "" {
				return "", nil
			}
			return key, value
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
