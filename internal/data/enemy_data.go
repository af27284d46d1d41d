package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTemplate is the static definition of one enemy kind. Behaviour is
// data, not hierarchy: a boss is an ordinary template with the Boss flag,
// its own ability list and a guaranteed loot table.
type EnemyTemplate struct {
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Combat stats
	MaxHealth   float64 `yaml:"max_health"`
	AttackPower float64 `yaml:"attack_power"`
	Defense     float64 `yaml:"defense"`
	Speed       float64 `yaml:"speed"`

	// AI parameters
	AggroRange     float64 `yaml:"aggro_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds

	// Kill rewards
	XPReward int64 `yaml:"xp_reward"`
	GoldMin  int64 `yaml:"gold_min"`
	GoldMax  int64 `yaml:"gold_max"`

	// Loot table key; empty means the kind never drops anything.
	LootTable string `yaml:"loot_table,omitempty"`

	// Attached abilities (boss behaviour lives here)
	Abilities []string `yaml:"abilities,omitempty"`
	Boss      bool     `yaml:"boss,omitempty"`
}

func loadEnemies(path string) (map[string]*EnemyTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Enemies []*EnemyTemplate `yaml:"enemies"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	enemies := make(map[string]*EnemyTemplate, len(file.Enemies))
	for _, e := range file.Enemies {
		if e.Kind == "" {
			return nil, fmt.Errorf("%s: enemy without kind", path)
		}
		if _, dup := enemies[e.Kind]; dup {
			return nil, fmt.Errorf("%s: duplicate enemy kind %q", path, e.Kind)
		}
		if e.MaxHealth <= 0 {
			return nil, fmt.Errorf("%s: enemy %q: max_health must be positive", path, e.Kind)
		}
		if e.AttackCooldown <= 0 {
			return nil, fmt.Errorf("%s: enemy %q: attack_cooldown must be positive", path, e.Kind)
		}
		if e.GoldMax < e.GoldMin {
			return nil, fmt.Errorf("%s: enemy %q: gold_max %d below gold_min %d", path, e.Kind, e.GoldMax, e.GoldMin)
		}
		enemies[e.Kind] = e
	}

	return enemies, nil
}
