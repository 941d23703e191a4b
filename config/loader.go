package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/debatelab/speakerkit/errors"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SPEAKERKIT_BATCH_WORKERS overrides batch.workers.
const EnvPrefix = "SPEAKERKIT"

// Load reads configuration from configFile (optional, YAML), a .env file
// next to the working directory (when present), and the environment, then
// applies defaults and validates. An empty configFile loads from the
// environment alone.
func Load(configFile string) (*Config, error) {
	// .env fills the process environment without overriding real variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.InvalidInput(".env", err.Error())
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidInput("config", err.Error()).WithDetail("file", configFile)
		}
	}
	bindKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.InvalidInput("config", err.Error())
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindKeys forces viper to consider env vars for keys that never appear in
// the config file. AutomaticEnv alone only resolves keys viper has seen.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"name",
		"logging.level",
		"logging.format",
		"logging.output",
		"logging.no_color",
		"batch.workers",
		"batch.storage.region",
		"batch.storage.endpoint",
		"batch.storage.access_key",
		"batch.storage.secret_key",
		"batch.storage.force_path_style",
		"identity.store",
		"identity.path",
	} {
		_ = v.BindEnv(key)
	}
}
