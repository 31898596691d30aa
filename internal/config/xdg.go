// Package config resolves where dyadikos keeps its files and reads the
// optional TOML file and DYADIKOS_* environment overrides.
package config

import (
	"os"
	"path/filepath"
)

const appName = "dyadikos"

// baseDir returns $env, or fallback under the home directory. Without a
// home directory the current directory is used.
func baseDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome is $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string {
	return baseDir("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome is $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	return baseDir("XDG_DATA_HOME", ".local", "share")
}

// DefaultDBPath is the progress database under the data home.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath is config.toml under the config home.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
