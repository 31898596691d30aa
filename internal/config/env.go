package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment. Unset variables stay
// nil so they do not mask file values.
type EnvConfig struct {
	ConfigPath *string `env:"DYADIKOS_CONFIG"`
	DBPath     *string `env:"DYADIKOS_DB"`
	LogPath    *string `env:"DYADIKOS_LOG"`
	Mouse      *bool   `env:"DYADIKOS_MOUSE"`
}

// LoadEnv parses DYADIKOS_* variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveConfigPath returns DYADIKOS_CONFIG when set, else the default path.
func (e EnvConfig) ResolveConfigPath() string {
	if e.ConfigPath != nil && *e.ConfigPath != "" {
		return *e.ConfigPath
	}
	return DefaultConfigPath()
}
