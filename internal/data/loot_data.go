package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skillmine/core/internal/game/loot"
)

func loadLootTables(path string) (map[string]loot.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Tables []loot.Table `yaml:"tables"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	tables := make(map[string]loot.Table, len(file.Tables))
	for _, tbl := range file.Tables {
		if err := tbl.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := tables[tbl.EnemyKind]; dup {
			return nil, fmt.Errorf("%s: duplicate loot table for %q", path, tbl.EnemyKind)
		}
		tables[tbl.EnemyKind] = tbl
	}

	return tables, nil
}
