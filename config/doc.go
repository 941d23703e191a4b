// Package config loads application configuration from YAML files and the
// environment. A YAML file provides the base, a .env file (when present)
// fills the process environment, and SPEAKERKIT_-prefixed variables
// override both.
package config
