package loot

import "fmt"

// Table describes the drop behaviour for one enemy kind.
// DropChance is the probability in [0.0, 1.0] that a kill of this kind
// drops anything at all; Items is the candidate pool a successful drop
// picks from.
type Table struct {
	EnemyKind  string   `yaml:"enemy_kind"`
	DropChance float64  `yaml:"drop_chance"`
	Items      []string `yaml:"items"`
}

// Validate checks table constraints before the table is handed to a Resolver.
func (t Table) Validate() error {
	if t.EnemyKind == "" {
		return fmt.Errorf("loot table without enemy kind")
	}
	if t.DropChance < 0.0 || t.DropChance > 1.0 {
		return fmt.Errorf("loot table %q: drop_chance %.3f out of range [0,1]", t.EnemyKind, t.DropChance)
	}
	if len(t.Items) == 0 {
		return fmt.Errorf("loot table %q: empty item list", t.EnemyKind)
	}
	for i, id := range t.Items {
		if id == "" {
			return fmt.Errorf("loot table %q: empty item id at index %d", t.EnemyKind, i)
		}
	}
	return nil
}

// ScaleChances returns a copy of tables with every drop chance multiplied
// by mult and clamped to [0,1]. Used to apply the configured drop rate once
// at startup.
func ScaleChances(tables map[string]Table, mult float64) map[string]Table {
	scaled := make(map[string]Table, len(tables))
	for kind, tbl := range tables {
		c := tbl.DropChance * mult
		if c < 0 {
			c = 0
		}
		if c > 1 {
			c = 1
		}
		tbl.DropChance = c
		scaled[kind] = tbl
	}
	return scaled
}
