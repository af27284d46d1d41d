package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Game holds all configuration for the game core.
type Game struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Static data directory (items, enemies, loot tables, ...)
	DataDir string `yaml:"data_dir"`

	// Persistence
	Database DatabaseConfig `yaml:"database"`
	Save     Save           `yaml:"save"`

	// Rates
	Rates Rates `yaml:"rates"`

	// Skill graph source
	SkillGraph SkillGraph `yaml:"skill_graph"`

	// Headless simulation driver
	Sim Sim `yaml:"sim"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Save controls profile persistence. When disabled the game runs fully
// in memory and never touches the database.
type Save struct {
	Enabled          bool          `yaml:"enabled"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
}

// Rates holds server rate multipliers. The drop-chance multiplier is
// applied once when loot tables are loaded (clamped to [0,1] per table);
// gold and XP multipliers scale kill rewards.
type Rates struct {
	DropChanceMultiplier float64 `yaml:"drop_chance_multiplier"`
	GoldMultiplier       float64 `yaml:"gold_multiplier"`
	XPMultiplier         float64 `yaml:"xp_multiplier"`
}

// DefaultRates returns Rates with x1 multipliers.
func DefaultRates() Rates {
	return Rates{
		DropChanceMultiplier: 1.0,
		GoldMultiplier:       1.0,
		XPMultiplier:         1.0,
	}
}

// SkillGraph selects where the skill topology comes from: the authored
// file in the data directory, or a procedurally generated layout.
type SkillGraph struct {
	Generated bool   `yaml:"generated"`
	Seed      uint64 `yaml:"seed"`
	NodeCount int    `yaml:"node_count"`
	Tiers     int    `yaml:"tiers"`
}

// Sim configures the headless simulation driver.
type Sim struct {
	Seed          uint64        `yaml:"seed"`
	Ticks         int           `yaml:"ticks"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	CharacterName string        `yaml:"character_name"`
	Class         string        `yaml:"class"`
	Race          string        `yaml:"race"`
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		DataDir:  "data",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skillmine",
			Password: "skillmine",
			DBName:   "skillmine",
			SSLMode:  "disable",
		},
		Save: Save{
			Enabled:          false,
			AutosaveInterval: 60 * time.Second,
		},
		Rates: DefaultRates(),
		SkillGraph: SkillGraph{
			Generated: false,
			Seed:      1,
			NodeCount: 24,
			Tiers:     4,
		},
		Sim: Sim{
			Seed:          1,
			Ticks:         600,
			TickInterval:  100 * time.Millisecond,
			CharacterName: "Adventurer",
			Class:         "warrior",
			Race:          "human",
		},
	}
}

// LoadGame loads game config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
