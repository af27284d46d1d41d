package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Damage types an ability can carry. Physical damage scales with attack
// power, everything else with magic power.
const (
	DamagePhysical  = "physical"
	DamageMagic     = "magic"
	DamageFire      = "fire"
	DamageIce       = "ice"
	DamageLightning = "lightning"
	DamageHoly      = "holy"
	DamageDark      = "dark"
)

// AbilityEffects is the bundle of side effects an ability applies on use.
// Zero values mean "no such effect". Duration covers the timed entries
// (slow, buffs, shield); stuns carry their own length.
type AbilityEffects struct {
	Stun        float64 `yaml:"stun,omitempty"`         // stun length, seconds
	Slow        float64 `yaml:"slow,omitempty"`         // speed multiplier, e.g. 0.5
	BuffAttack  float64 `yaml:"buff_attack,omitempty"`  // attack multiplier
	BuffDefense float64 `yaml:"buff_defense,omitempty"` // defense multiplier
	Shield      float64 `yaml:"shield,omitempty"`       // absorb pool
	CritChance  float64 `yaml:"crit_chance,omitempty"`  // extra crit probability
	Cleanse     bool    `yaml:"cleanse,omitempty"`      // strip negative effects
	Duration    float64 `yaml:"duration,omitempty"`     // seconds
}

// Empty reports whether the ability applies no side effects at all.
func (e AbilityEffects) Empty() bool {
	return e == AbilityEffects{}
}

// AbilityTemplate is the static definition of one ability. Negative
// BaseDamage means healing.
type AbilityTemplate struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	DamageType  string         `yaml:"damage_type"`
	BaseDamage  float64        `yaml:"base_damage"`
	ManaCost    float64        `yaml:"mana_cost"`
	Cooldown    float64        `yaml:"cooldown"` // seconds
	Range       float64        `yaml:"range"`
	Effects     AbilityEffects `yaml:"effects,omitempty"`
}

// IsHealing reports whether the ability restores health instead of
// dealing damage.
func (t *AbilityTemplate) IsHealing() bool {
	return t.BaseDamage < 0
}

var validDamageTypes = map[string]bool{
	DamagePhysical:  true,
	DamageMagic:     true,
	DamageFire:      true,
	DamageIce:       true,
	DamageLightning: true,
	DamageHoly:      true,
	DamageDark:      true,
}

func loadAbilities(path string) (map[string]*AbilityTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Abilities []*AbilityTemplate `yaml:"abilities"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	abilities := make(map[string]*AbilityTemplate, len(file.Abilities))
	for _, a := range file.Abilities {
		if a.ID == "" {
			return nil, fmt.Errorf("%s: ability without id", path)
		}
		if _, dup := abilities[a.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate ability id %q", path, a.ID)
		}
		if !validDamageTypes[a.DamageType] {
			return nil, fmt.Errorf("%s: ability %q: unknown damage type %q", path, a.ID, a.DamageType)
		}
		if a.Cooldown < 0 || a.ManaCost < 0 {
			return nil, fmt.Errorf("%s: ability %q: negative cooldown or mana cost", path, a.ID)
		}
		abilities[a.ID] = a
	}

	return abilities, nil
}
