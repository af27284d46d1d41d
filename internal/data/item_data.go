package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item type identifiers as used in items.yaml.
const (
	ItemTypeWeapon     = "weapon"
	ItemTypeArmor      = "armor"
	ItemTypeConsumable = "consumable"
	ItemTypeMaterial   = "material"
	ItemTypeQuest      = "quest"
)

// Item rarities, common through legendary.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// ItemTemplate is the static definition of one item.
type ItemTemplate struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Rarity      string `yaml:"rarity"`
	MaxStack    int    `yaml:"max_stack"`
	Value       int64  `yaml:"value"`

	// Equipment stats
	Attack      int       `yaml:"attack,omitempty"`
	Defense     int       `yaml:"defense,omitempty"`
	StatBonuses StatBlock `yaml:"stat_bonuses,omitempty"`

	// Consumable effects
	HealAmount     float64 `yaml:"heal_amount,omitempty"`
	ManaRestore    float64 `yaml:"mana_restore,omitempty"`
	StaminaRestore float64 `yaml:"stamina_restore,omitempty"`
}

// IsEquipment reports whether the item goes into an equipment slot.
func (t *ItemTemplate) IsEquipment() bool {
	return t.Type == ItemTypeWeapon || t.Type == ItemTypeArmor
}

// IsConsumable reports whether the item can be used up.
func (t *ItemTemplate) IsConsumable() bool {
	return t.Type == ItemTypeConsumable
}

// IsStackable reports whether multiple copies share one slot.
func (t *ItemTemplate) IsStackable() bool {
	return t.MaxStack > 1
}

var validItemTypes = map[string]bool{
	ItemTypeWeapon:     true,
	ItemTypeArmor:      true,
	ItemTypeConsumable: true,
	ItemTypeMaterial:   true,
	ItemTypeQuest:      true,
}

var validRarities = map[string]bool{
	RarityCommon:    true,
	RarityUncommon:  true,
	RarityRare:      true,
	RarityEpic:      true,
	RarityLegendary: true,
}

func loadItems(path string) (map[string]*ItemTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Items []*ItemTemplate `yaml:"items"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	items := make(map[string]*ItemTemplate, len(file.Items))
	for _, it := range file.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("%s: item without id", path)
		}
		if _, dup := items[it.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate item id %q", path, it.ID)
		}
		if !validItemTypes[it.Type] {
			return nil, fmt.Errorf("%s: item %q: unknown type %q", path, it.ID, it.Type)
		}
		if it.Rarity == "" {
			it.Rarity = RarityCommon
		}
		if !validRarities[it.Rarity] {
			return nil, fmt.Errorf("%s: item %q: unknown rarity %q", path, it.ID, it.Rarity)
		}
		if it.MaxStack < 1 {
			it.MaxStack = 1
		}
		items[it.ID] = it
	}

	return items, nil
}
