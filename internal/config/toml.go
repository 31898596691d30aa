package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game  GameConfig  `toml:"game"`
	Board BoardConfig `toml:"board"`
}

// GameConfig maps general play settings.
type GameConfig struct {
	DBPath *string `toml:"db"`
	Shape  *int    `toml:"shape"`
	Mouse  *bool   `toml:"mouse"`
	Puzzle *string `toml:"puzzle"`
}

// BoardConfig maps board drawing settings.
type BoardConfig struct {
	Radius    *float64 `toml:"radius"`
	Tolerance *float64 `toml:"tolerance"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
