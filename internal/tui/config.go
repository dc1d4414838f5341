package tui

import (
	"context"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
)

// ExampleSource supplies a sample profile for the form.
type ExampleSource interface {
	Example(ctx context.Context) (model.ClientProfile, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Examples       ExampleSource
	RequestTimeout time.Duration
	Width          int
	Height         int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		RequestTimeout: 30 * time.Second,
		Width:          80,
		Height:         24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExampleSource enables loading a sample profile into the form.
func WithExampleSource(src ExampleSource) Option {
	return func(c *Config) {
		c.Examples = src
	}
}

// WithRequestTimeout bounds each call the TUI makes to the scoring service.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}
