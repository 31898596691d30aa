package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Game.DBPath != nil || cfg.Board.Radius != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
db = "/tmp/x.db"
shape = 6
mouse = false

[board]
radius = 0.4
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.DBPath == nil || *cfg.Game.DBPath != "/tmp/x.db" {
		t.Fatalf("unexpected db: %v", cfg.Game.DBPath)
	}
	if cfg.Game.Shape == nil || *cfg.Game.Shape != 6 {
		t.Fatalf("unexpected shape: %v", cfg.Game.Shape)
	}
	if cfg.Game.Mouse == nil || *cfg.Game.Mouse {
		t.Fatalf("unexpected mouse: %v", cfg.Game.Mouse)
	}
	if cfg.Game.Puzzle != nil {
		t.Fatalf("puzzle should stay unset")
	}
	if cfg.Board.Radius == nil || *cfg.Board.Radius != 0.4 {
		t.Fatalf("unexpected radius: %v", cfg.Board.Radius)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nsides = 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.sides") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DYADIKOS_DB", "/data/p.db")
	t.Setenv("DYADIKOS_MOUSE", "false")
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.DBPath == nil || *cfg.DBPath != "/data/p.db" {
		t.Fatalf("unexpected db path: %v", cfg.DBPath)
	}
	if cfg.Mouse == nil || *cfg.Mouse {
		t.Fatalf("unexpected mouse: %v", cfg.Mouse)
	}
	if cfg.LogPath != nil {
		t.Fatalf("expected unset log path")
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := (EnvConfig{}).ResolveConfigPath(); got != filepath.Join("/cfg", "dyadikos", "config.toml") {
		t.Fatalf("unexpected default path: %s", got)
	}
	custom := "/elsewhere.toml"
	if got := (EnvConfig{ConfigPath: &custom}).ResolveConfigPath(); got != custom {
		t.Fatalf("unexpected override: %s", got)
	}
}

func TestXDGFallbacks(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := DefaultDBPath(); got != filepath.Join(home, ".local", "share", "dyadikos", "dyadikos.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join(home, ".config", "dyadikos", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultDBPath(); got != filepath.Join("/data", "dyadikos", "dyadikos.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
