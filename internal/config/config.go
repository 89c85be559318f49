// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mkoziy/i18nmodel/internal/locale"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDSN           string `env:"I18N_DB_DSN" envDefault:"file:i18nmodel.db"`
	Debug           bool   `env:"I18N_DEBUG" envDefault:"false"`
	LogLevel        string `env:"I18N_LOG_LEVEL" envDefault:"info"`
	LanguagesFile   string `env:"I18N_LANGUAGES_FILE"`
	DefaultLanguage string `env:"I18N_DEFAULT_LANGUAGE"`
	DefinitionsFile string `env:"I18N_DEFINITIONS_FILE"`
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level converts LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// Languages loads the Language Set from LanguagesFile and applies
// DefaultLanguage on top of it.
func (c Config) Languages() (locale.Set, error) {
	set, err := locale.LoadFile(c.LanguagesFile)
	if err != nil {
		return locale.Set{}, err
	}
	return set.WithDefault(c.DefaultLanguage)
}
