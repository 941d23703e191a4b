package storage

import "github.com/debatelab/speakerkit/errors"

// Default configuration values.
const (
	DefaultRegion = "us-east-1"
)

// Config holds backend configuration shared across locations. File
// locations need none of it; S3 locations pick up region, endpoint and
// credentials from here (falling back to the ambient AWS config chain).
type Config struct {
	// Region is the AWS region for S3.
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom S3-compatible endpoint (e.g. MinIO).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey is the AWS access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key"`

	// SecretKey is the AWS secret access key.
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`

	// ForcePathStyle forces path-style S3 addressing.
	ForcePathStyle bool `mapstructure:"force_path_style" json:"force_path_style"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.AccessKey != "" && c.SecretKey == "" {
		return errors.MissingField("secret_key")
	}
	if c.SecretKey != "" && c.AccessKey == "" {
		return errors.MissingField("access_key")
	}
	return nil
}
