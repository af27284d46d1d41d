package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnPoint is one location enemies appear at. Each spawn rolls one
// kind from Kinds; Count caps how many of the point's enemies live at
// once.
type SpawnPoint struct {
	Kinds []string `yaml:"kinds"`
	X     float64  `yaml:"x"`
	Y     float64  `yaml:"y"`
	Count int      `yaml:"count"`
}

// SpawnConfig drives the world spawner.
type SpawnConfig struct {
	MaxEnemies        int          `yaml:"max_enemies"`
	SpawnInterval     float64      `yaml:"spawn_interval"`
	MinPlayerDistance float64      `yaml:"min_player_distance"`
	SpawnRadius       float64      `yaml:"spawn_radius"`
	RespawnDelay      float64      `yaml:"respawn_delay"`
	RespawnJitter     float64      `yaml:"respawn_jitter"`
	Points            []SpawnPoint `yaml:"points"`
}

func loadSpawns(path string) (*SpawnConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg SpawnConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.MaxEnemies < 1 {
		return nil, fmt.Errorf("%s: max_enemies must be positive", path)
	}
	if cfg.SpawnInterval <= 0 {
		return nil, fmt.Errorf("%s: spawn_interval must be positive", path)
	}
	if cfg.MinPlayerDistance < 0 {
		return nil, fmt.Errorf("%s: min_player_distance must not be negative", path)
	}
	if cfg.SpawnRadius <= 0 {
		return nil, fmt.Errorf("%s: spawn_radius must be positive", path)
	}
	if cfg.RespawnDelay < 0 {
		return nil, fmt.Errorf("%s: respawn_delay must not be negative", path)
	}
	if cfg.RespawnJitter < 0 {
		return nil, fmt.Errorf("%s: respawn_jitter must not be negative", path)
	}
	if len(cfg.Points) == 0 {
		return nil, fmt.Errorf("%s: no spawn points", path)
	}
	for i := range cfg.Points {
		p := &cfg.Points[i]
		if len(p.Kinds) == 0 {
			return nil, fmt.Errorf("%s: spawn point %d: no enemy kinds", path, i)
		}
		for _, kind := range p.Kinds {
			if kind == "" {
				return nil, fmt.Errorf("%s: spawn point %d: empty enemy kind", path, i)
			}
		}
		if p.Count < 1 {
			p.Count = 1
		}
	}

	return &cfg, nil
}
