package config

import (
	"github.com/debatelab/speakerkit/batch"
	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
)

// IdentityConfig selects where speaker mappings are persisted.
type IdentityConfig struct {
	// Store is "memory" or "sqlite".
	Store string `mapstructure:"store" json:"store"`
	// Path is the SQLite database path when Store is "sqlite".
	Path string `mapstructure:"path" json:"path"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *IdentityConfig) ApplyDefaults() {
	if c.Store == "" {
		c.Store = "memory"
	}
}

// Validate checks that the configuration is valid.
func (c *IdentityConfig) Validate() error {
	switch c.Store {
	case "memory":
		return nil
	case "sqlite":
		if c.Path == "" {
			return errors.MissingField("identity.path")
		}
		return nil
	default:
		return errors.InvalidInput("identity.store", "must be memory or sqlite")
	}
}

// Config is the full application configuration.
type Config struct {
	// Name identifies the service in logs.
	Name string `mapstructure:"name" json:"name"`

	Logging  logger.Config  `mapstructure:"logging" json:"logging"`
	Batch    batch.Config   `mapstructure:"batch" json:"batch"`
	Identity IdentityConfig `mapstructure:"identity" json:"identity"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "speakerstats"
	}
	c.Logging.ApplyDefaults()
	c.Batch.ApplyDefaults()
	c.Identity.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Batch.Validate(); err != nil {
		return err
	}
	return c.Identity.Validate()
}
