package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClassTemplate defines a playable class: its base stats and ability
// kit. The first listed ability is known from character creation; the
// rest unlock as the character levels.
type ClassTemplate struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	BaseStats   StatBlock `yaml:"base_stats"`
	Abilities   []string  `yaml:"abilities"`
}

// RaceTemplate defines a playable race as a set of flat stat bonuses on
// top of the class base stats.
type RaceTemplate struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	StatBonuses StatBlock `yaml:"stat_bonuses"`
}

func loadClasses(path string) (map[string]*ClassTemplate, map[string]*RaceTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Classes []*ClassTemplate `yaml:"classes"`
		Races   []*RaceTemplate  `yaml:"races"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	classes := make(map[string]*ClassTemplate, len(file.Classes))
	for _, c := range file.Classes {
		if c.ID == "" {
			return nil, nil, fmt.Errorf("%s: class without id", path)
		}
		if _, dup := classes[c.ID]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate class id %q", path, c.ID)
		}
		if len(c.Abilities) == 0 {
			return nil, nil, fmt.Errorf("%s: class %q: empty ability list", path, c.ID)
		}
		classes[c.ID] = c
	}

	races := make(map[string]*RaceTemplate, len(file.Races))
	for _, r := range file.Races {
		if r.ID == "" {
			return nil, nil, fmt.Errorf("%s: race without id", path)
		}
		if _, dup := races[r.ID]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate race id %q", path, r.ID)
		}
		races[r.ID] = r
	}

	if len(classes) == 0 {
		return nil, nil, fmt.Errorf("%s: no classes defined", path)
	}
	if len(races) == 0 {
		return nil, nil, fmt.Errorf("%s: no races defined", path)
	}

	return classes, races, nil
}
