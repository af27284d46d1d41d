package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pet ability kinds. Combat abilities hit the owner's target, buffs
// raise owner stats, defense abilities shield the owner, and utility
// abilities trigger world effects such as treasure finds.
const (
	PetAbilityCombat  = "combat"
	PetAbilityBuff    = "buff"
	PetAbilityDefense = "defense"
	PetAbilityUtility = "utility"
)

// PetAbilityTemplate is one learnable pet ability. UnlockBond gates it
// behind a minimum bond level; zero means available from adoption.
type PetAbilityTemplate struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Type        string  `yaml:"type"`
	Cooldown    float64 `yaml:"cooldown"`
	Power       float64 `yaml:"power"`
	UnlockBond  int     `yaml:"unlock_bond,omitempty"`
}

// PetTemplate is the static definition of one adoptable pet species.
type PetTemplate struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Attack      int      `yaml:"attack"`
	Defense     int      `yaml:"defense"`
	Speed       int      `yaml:"speed"`
	Abilities   []string `yaml:"abilities"`
}

var validPetAbilityTypes = map[string]bool{
	PetAbilityCombat:  true,
	PetAbilityBuff:    true,
	PetAbilityDefense: true,
	PetAbilityUtility: true,
}

func loadPets(path string) (map[string]*PetTemplate, map[string]*PetAbilityTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Pets      []*PetTemplate        `yaml:"pets"`
		Abilities []*PetAbilityTemplate `yaml:"abilities"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	abilities := make(map[string]*PetAbilityTemplate, len(file.Abilities))
	for _, a := range file.Abilities {
		if a.ID == "" {
			return nil, nil, fmt.Errorf("%s: pet ability without id", path)
		}
		if _, dup := abilities[a.ID]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate pet ability id %q", path, a.ID)
		}
		if !validPetAbilityTypes[a.Type] {
			return nil, nil, fmt.Errorf("%s: pet ability %q: unknown type %q", path, a.ID, a.Type)
		}
		if a.Cooldown <= 0 {
			return nil, nil, fmt.Errorf("%s: pet ability %q: cooldown must be positive", path, a.ID)
		}
		if a.UnlockBond < 0 || a.UnlockBond > 100 {
			return nil, nil, fmt.Errorf("%s: pet ability %q: unlock_bond out of range", path, a.ID)
		}
		abilities[a.ID] = a
	}

	pets := make(map[string]*PetTemplate, len(file.Pets))
	for _, p := range file.Pets {
		if p.ID == "" {
			return nil, nil, fmt.Errorf("%s: pet without id", path)
		}
		if _, dup := pets[p.ID]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate pet id %q", path, p.ID)
		}
		for _, ab := range p.Abilities {
			if _, ok := abilities[ab]; !ok {
				return nil, nil, fmt.Errorf("%s: pet %q: unknown ability %q", path, p.ID, ab)
			}
		}
		pets[p.ID] = p
	}

	return pets, abilities, nil
}
