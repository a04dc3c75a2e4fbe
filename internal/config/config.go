package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/warmscreen/internal/colortemp"
)

// Config holds the application configuration.
type Config struct {
	// Display is the X display to connect to. Empty means $DISPLAY.
	Display            string `yaml:"display,omitempty"`
	InitialTemperature int    `yaml:"initial_temperature"`
	WindowTitle        string `yaml:"window_title"`
	LogLevel           string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		InitialTemperature: colortemp.Default,
		WindowTitle:        "warmscreen",
		LogLevel:           "info",
	}
}

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.InitialTemperature < colortemp.Min || c.InitialTemperature > colortemp.Max {
		return &ValidationError{
			Path: "initial_temperature",
			Err:  fmt.Errorf("initial_temperature must be between %d and %d, got %d", colortemp.Min, colortemp.Max, c.InitialTemperature),
		}
	}
	if strings.TrimSpace(c.WindowTitle) == "" {
		return &ValidationError{Path: "window_title", Err: fmt.Errorf("window_title must not be empty")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// SlogLevel returns the configured log level. Call Validate first; an invalid
// level falls back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps a log_level value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}
