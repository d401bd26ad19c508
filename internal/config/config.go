// Package config loads CLI settings from an optional YAML file and
// ATTRSTORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"attrstore/internal/codec"
	"attrstore/internal/path"
	"attrstore/internal/suggest"
	"attrstore/utils"
)

// EnvPrefix prefixes environment overrides, e.g. ATTRSTORE_SEPARATOR.
const EnvPrefix = "ATTRSTORE"

// Config holds CLI configuration.
type Config struct {
	Separator   string            `mapstructure:"separator"`
	Format      string            `mapstructure:"format"`
	Verbosity   int               `mapstructure:"verbosity"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
}

// SuggestionsConfig controls "did you mean" hints.
type SuggestionsConfig struct {
	Limit    int     `mapstructure:"limit"`
	MinScore float64 `mapstructure:"min_score"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Separator: path.DefaultSeparator,
		Format:    "yaml",
		Verbosity: 0,
		Suggestions: SuggestionsConfig{
			Limit:    3,
			MinScore: suggest.DefaultMinScore,
		},
	}
}

// Load reads configuration from file (optional; empty means none) and env.
func Load(file string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("separator", def.Separator)
	v.SetDefault("format", def.Format)
	v.SetDefault("verbosity", def.Verbosity)
	v.SetDefault("suggestions.limit", def.Suggestions.Limit)
	v.SetDefault("suggestions.min_score", def.Suggestions.MinScore)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.Separator == "" {
		return errors.New("separator must not be empty")
	}

	if _, err := codec.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if !utils.IsInRange(0, c.Suggestions.MinScore, 1) {
		return fmt.Errorf("suggestions.min_score must be within [0, 1], got %v", c.Suggestions.MinScore)
	}

	return nil
}
