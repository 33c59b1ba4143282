package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"LIFEOS_DB", "LIFEOS_LADDER_SIZE", "LIFEOS_LADDER_SEED", "LIFEOS_AI_ENDPOINT", "LIFEOS_AI_MODEL"} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Leaderboard.PopulationSize != 20 {
		t.Fatalf("population size=%d, want 20", cfg.Leaderboard.PopulationSize)
	}
	if cfg.Storage.Path != "" {
		t.Fatalf("storage path=%q, want empty", cfg.Storage.Path)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "lifeos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
[storage]
path = "/tmp/other.db"

[leaderboard]
population-size = 50
seed = 42

[ai]
model = "planner-1"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/other.db" || cfg.Leaderboard.PopulationSize != 50 ||
		cfg.Leaderboard.Seed != 42 || cfg.AI.Model != "planner-1" {
		t.Fatalf("config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "lifeos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[leaderboard]\nseed = 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIFEOS_DB", "/tmp/env.db")
	t.Setenv("LIFEOS_LADDER_SEED", "7")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/env.db" || cfg.Leaderboard.Seed != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestEffectiveSeedDerivesFromDate(t *testing.T) {
	if got := (Leaderboard{Seed: 99}).EffectiveSeed(); got != 99 {
		t.Fatalf("explicit seed=%d, want 99", got)
	}
	now := time.Now()
	want := int64(now.Year()*10000 + int(now.Month())*100 + now.Day())
	if got := (Leaderboard{}).EffectiveSeed(); got != want {
		t.Fatalf("derived seed=%d, want %d", got, want)
	}
}
