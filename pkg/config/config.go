// Package config resolves the Atrium runtime configuration, most importantly
// the backend mode. The mode is read once at startup and is immutable for
// the process lifetime; everything downstream receives a concrete facade
// built from it rather than re-reading flags at call sites.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Mode selects which concrete backend services the facades.
type Mode string

const (
	// ModeSimulated serves every facade call from the in-process fixture
	// dataset. This is the default: the tool stays usable with no live
	// backend at all.
	ModeSimulated Mode = "simulated"

	// ModeRemote issues one REST call per facade method against the
	// configured base URL.
	ModeRemote Mode = "remote"
)

// ParseMode maps a raw flag value onto a Mode. Anything unrecognized,
// including the empty string, degrades to ModeSimulated rather than failing.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "remote", "live", "api":
		return ModeRemote
	default:
		return ModeSimulated
	}
}

// Config is the resolved runtime configuration.
type Config struct {
	Backend   Mode   `mapstructure:"backend"`
	BaseURL   string `mapstructure:"base_url"`
	Token     string `mapstructure:"token"`
	RedisAddr string `mapstructure:"redis_addr"`
	StateDir  string `mapstructure:"state_dir"`
	SessionID string `mapstructure:"session_id"`
	ActorID   string `mapstructure:"actor_id"`
	LogLevel  string `mapstructure:"log_level"`
}

// Mode returns the resolved backend mode.
func (c *Config) Mode() Mode {
	return ParseMode(string(c.Backend))
}

// Level returns the configured slog level, defaulting to Info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Option customizes the resolver before values are read.
type Option func(*viper.Viper) error

// WithFlags layers a parsed flag set on top of the file and environment
// sources. Flags win over both. Flag names use dashes, config keys use
// underscores; only flags present in the set are bound.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		bindings := map[string]string{
			"backend":    "backend",
			"base_url":   "base-url",
			"token":      "token",
			"redis_addr": "redis-addr",
			"state_dir":  "state-dir",
			"session_id": "session",
			"actor_id":   "actor",
			"log_level":  "log-level",
		}
		for key, name := range bindings {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Load reads configuration from the environment (ATRIUM_* variables) and an
// optional .atrium.yaml file in the working directory or $HOME. Absent or
// malformed values fall back to the simulated-backend defaults; Load only
// errors on an unreadable or unparsable config file.
func Load(opts ...Option) (*Config, error) {
	v := viper.New()

	v.SetConfigName(".atrium")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("ATRIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", string(ModeSimulated))
	v.SetDefault("base_url", "http://localhost:8787")
	v.SetDefault("session_id", "local")
	v.SetDefault("log_level", "info")

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("failed to apply config option: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(modeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// modeHook normalizes the backend flag during decoding, so a typo in
// ATRIUM_BACKEND lands on the simulated default instead of erroring out.
func modeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Mode("")) {
			return data, nil
		}
		return ParseMode(data.(string)), nil
	}
}
