// Package config loads wasiraptor settings from YAML.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
)

// Config is the on-disk configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Guest  GuestConfig  `yaml:"guest"`
	Record RecordConfig `yaml:"record"`
}

// LogConfig controls the process logger that host records are written to.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GuestConfig controls guest memory and the reserved write offset.
type GuestConfig struct {
	Pages            uint32 `yaml:"pages"`
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
	BaseOffset       uint32 `yaml:"base_offset"`
}

// RecordConfig controls the CBOR journal.
type RecordConfig struct {
	Path  string `yaml:"path"`
	Limit int    `yaml:"limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Guest: GuestConfig{
			Pages:      1,
			BaseOffset: wasiraptor.ReservedOffset,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys, and validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	return cfg.Validate()
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Field("log.level").
			Value(c.Log.Level).
			Cause(err).
			Build()
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Field("log.format").
			Value(c.Log.Format).
			Detail("format must be console or json, got %q", c.Log.Format).
			Build()
	}
	if c.Guest.BaseOffset == 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Field("guest.base_offset").
			Detail("offset 0 is reserved").
			Build()
	}
	if c.Guest.MemoryLimitPages > 0 && c.Guest.Pages > c.Guest.MemoryLimitPages {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Field("guest.pages").
			Detail("%d pages exceeds memory_limit_pages %d", c.Guest.Pages, c.Guest.MemoryLimitPages).
			Build()
	}
	if c.Record.Limit < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Field("record.limit").
			Value(c.Record.Limit).
			Detail("limit cannot be negative").
			Build()
	}
	return nil
}

// NewLogger builds the process logger described by c.Log.
func (c Config) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}

	var zc zap.Config
	if strings.EqualFold(c.Log.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}
