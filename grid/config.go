package grid

import (
	"log/slog"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/formula/builtins"
)

type Config struct {
	Library Library
	Logger  *slog.Logger
	// Eager recalculates every dirty cell after each mutation instead of
	// waiting for the cells to be read.
	Eager    bool
	MaxCells int64
	Sheet    string
}

func DefaultConfig() Config {
	return Config{
		Library:  builtins.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		MaxCells: formula.DefaultMaxCells,
	}
}

type Option func(*Config)

func WithLibrary(lib Library) Option {
	return func(c *Config) {
		if lib != nil {
			c.Library = lib
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func WithEager(eager bool) Option {
	return func(c *Config) {
		c.Eager = eager
	}
}

func WithMaxCells(n int64) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxCells = n
		}
	}
}

// WithSheet sets the sheet given to positions without one.
func WithSheet(name string) Option {
	return func(c *Config) {
		c.Sheet = name
	}
}
