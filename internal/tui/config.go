package tui

import (
	"time"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

// Backend is what the dashboard reads from and logs purchases through.
type Backend interface {
	service.Recorder
	service.SummaryProvider
	History() []model.Purchase
	Profile() model.Profile
}

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Clock         func() time.Time
	Width         int
	Height        int
	BannerTimeout time.Duration
	ShowHelp      bool
	Record        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		Clock:         time.Now,
		Width:         80,
		Height:        24,
		BannerTimeout: 4 * time.Second,
		ShowHelp:      true,
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

// WithClock sets the clock used for the month window of the summary.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithBannerTimeout sets how long the badge unlock banner stays up.
func WithBannerTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BannerTimeout = d
	}
}

// WithRecording writes every frame to a temp directory for debugging.
func WithRecording(enabled bool) Option {
	return func(c *Config) {
		c.Record = enabled
	}
}
