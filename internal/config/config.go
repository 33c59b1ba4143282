// Package config handles loading the lifeos config.toml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the ~/.config/lifeos/config.toml file. Every field has a working
// default; the file is optional.
type Config struct {
	Storage     Storage     `toml:"storage"`
	Leaderboard Leaderboard `toml:"leaderboard"`
	AI          AI          `toml:"ai"`
}

type Storage struct {
	// Path is the sqlite database file. Defaults to ~/.lifeos.db.
	Path string `toml:"path"`
}

type Leaderboard struct {
	// PopulationSize is how many synthetic contenders fill the ladder.
	PopulationSize int `toml:"population-size"`
	// Seed fixes the synthetic population. 0 derives it from the date, so
	// the field changes day to day but stays stable within one.
	Seed int64 `toml:"seed"`
}

type AI struct {
	// Endpoint and Model describe the external planning assistant the
	// context digest is written for. Informational; nothing is called.
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// Load reads the global config file, then applies environment overrides.
// A .env file next to the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Leaderboard: Leaderboard{PopulationSize: 20},
	}

	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if cfg.Leaderboard.PopulationSize <= 0 {
		cfg.Leaderboard.PopulationSize = 20
	}
	return cfg, nil
}

// EffectiveSeed resolves the ladder seed, deriving one from today's date
// when unset.
func (l Leaderboard) EffectiveSeed() int64 {
	if l.Seed != 0 {
		return l.Seed
	}
	t := time.Now()
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "lifeos", "config.toml"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LIFEOS_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("LIFEOS_LADDER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Leaderboard.PopulationSize = n
		}
	}
	if v := os.Getenv("LIFEOS_LADDER_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Leaderboard.Seed = n
		}
	}
	if v := os.Getenv("LIFEOS_AI_ENDPOINT"); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := os.Getenv("LIFEOS_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
}
