package config

import (
	"fmt"
	"path/filepath"
)

// Config holds engine-wide settings. The zero value is not meaningful;
// start from Default.
type Config struct {
	// DataRootPath is the directory against which relative audio file
	// paths resolve.
	DataRootPath string

	// RandomSeed seeds noise generators that were not given an explicit
	// seed.
	RandomSeed int64

	// Decimal places used when formatting values in failure reports,
	// per unit.
	LinDecimals int
	DBDecimals  int
	SecDecimals int
	HzDecimals  int
	RadDecimals int
}

// Option mutates a Config.
type Option func(*Config)

// Default returns the stock configuration: data root ".", seed 0 and
// report precision of a few decimals per unit.
func Default() Config {
	return Config{
		DataRootPath: ".",
		RandomSeed:   0,
		LinDecimals:  6,
		DBDecimals:   2,
		SecDecimals:  4,
		HzDecimals:   1,
		RadDecimals:  3,
	}
}

// New returns the default configuration with options applied.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithDataRootPath sets the directory for resolving relative paths.
func WithDataRootPath(path string) Option {
	return func(cfg *Config) {
		if path != "" {
			cfg.DataRootPath = path
		}
	}
}

// WithRandomSeed sets the default noise seed.
func WithRandomSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.RandomSeed = seed
	}
}

// WithLinDecimals sets the precision for linear sample values.
func WithLinDecimals(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.LinDecimals = n
		}
	}
}

// WithDBDecimals sets the precision for decibel values.
func WithDBDecimals(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.DBDecimals = n
		}
	}
}

// WithSecDecimals sets the precision for values in seconds.
func WithSecDecimals(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.SecDecimals = n
		}
	}
}

// WithHzDecimals sets the precision for values in hertz.
func WithHzDecimals(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.HzDecimals = n
		}
	}
}

// WithRadDecimals sets the precision for values in radians.
func WithRadDecimals(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.RadDecimals = n
		}
	}
}

// ResolvePath resolves a possibly relative path against the data root.
// Absolute paths pass through unchanged.
func (c Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.DataRootPath, path)
}

// FormatLin formats a linear sample value.
func (c Config) FormatLin(v float64) string {
	return fmt.Sprintf("%.*f", c.LinDecimals, v)
}

// FormatDB formats a decibel value.
func (c Config) FormatDB(v float64) string {
	return fmt.Sprintf("%.*f", c.DBDecimals, v)
}

// FormatSec formats a value in seconds.
func (c Config) FormatSec(v float64) string {
	return fmt.Sprintf("%.*f", c.SecDecimals, v)
}

// FormatHz formats a value in hertz.
func (c Config) FormatHz(v float64) string {
	return fmt.Sprintf("%.*f", c.HzDecimals, v)
}

// FormatRad formats a value in radians.
func (c Config) FormatRad(v float64) string {
	return fmt.Sprintf("%.*f", c.RadDecimals, v)
}
