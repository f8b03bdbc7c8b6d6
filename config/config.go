// Package config defines process configuration and its loading rules.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// Store selects the persistence backend: "fs" or "sqlite".
	Store string `koanf:"store"`

	// DataDir is where the fs store keeps record files.
	DataDir string `koanf:"data_dir"`

	// DBPath is the sqlite database path.
	DBPath string `koanf:"db_path"`

	// OCREnabled controls whether poster images are run through tesseract.
	OCREnabled bool `koanf:"ocr_enabled"`

	// OCRLanguages is the tesseract language spec.
	OCRLanguages string `koanf:"ocr_languages"`

	// Headless controls browser visibility; disable for debugging scrapes.
	Headless bool `koanf:"headless"`

	// RateLimit is the per-domain request rate in requests per second.
	RateLimit float64 `koanf:"rate_limit"`

	// Concurrency bounds parallel scrapes in a batch.
	Concurrency int `koanf:"concurrency"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":3000",
		Store:        "fs",
		DataDir:      "performances",
		DBPath:       "stagenote.db",
		OCREnabled:   true,
		OCRLanguages: "kor+eng",
		Headless:     true,
		RateLimit:    1.0,
		Concurrency:  3,
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STAGENOTE_CONFIG is set
//  3. env (prefix STAGENOTE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STAGENOTE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: STAGENOTE_ADDR, STAGENOTE_DATA_DIR, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("STAGENOTE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "stagenote_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.Store != "fs" && cfg.Store != "sqlite" {
		return nil, errors.New(`store must be "fs" or "sqlite"`)
	}
	return &cfg, nil
}
