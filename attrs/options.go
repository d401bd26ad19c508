package attrs

import (
	"attrstore/internal/path"
)

// Config controls how a Store is built.
type Config struct {
	// Separator joins path segments.
	Separator string
	// Defaults are applied before Attributes.
	Defaults Record
	// Attributes are the initial values.
	Attributes Record
}

// DefaultConfig returns the configuration used by New without options.
func DefaultConfig() Config {
	return Config{
		Separator: path.DefaultSeparator,
	}
}

// Option configures a Store.
type Option func(*Config)

// WithSeparator sets the path separator.
func WithSeparator(sep string) Option {
	return func(c *Config) {
		c.Separator = sep
	}
}

// WithDefaults sets values applied before the initial attributes.
func WithDefaults(defaults Record) Option {
	return func(c *Config) {
		c.Defaults = defaults
	}
}

// WithAttributes sets the initial attributes.
func WithAttributes(rec Record) Option {
	return func(c *Config) {
		c.Attributes = rec
	}
}

// SetOptions modify a single Set call.
type SetOptions struct {
	// Unset deletes the given paths instead of assigning them.
	Unset bool
	// Silent records the writes without consuming them; no triggers are
	// returned and the changes are reported by the next loud Set.
	Silent bool
}
