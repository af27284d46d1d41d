package model

import (
	"fmt"

	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/game/skilltree"
)

// ItemSnapshot is one persisted carry slot.
type ItemSnapshot struct {
	Slot     int
	ItemID   string
	Quantity int
}

// CharacterSnapshot is the persistable state of a character. Everything
// derivable from templates (max pools, attack power) is recomputed on
// restore.
type CharacterSnapshot struct {
	Name    string
	ClassID string
	RaceID  string

	Level      int
	XP         int64
	StatPoints int
	Stats      data.StatBlock

	Health  float64
	Mana    float64
	Stamina float64
	Pos     Vec2

	Gold           int64
	Items          []ItemSnapshot
	Equipment      []string
	KnownAbilities []string

	SkillPoints   int
	UnlockedNodes []skilltree.NodeID
}

// Snapshot captures the character's persistable state.
func (c *Character) Snapshot() CharacterSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := CharacterSnapshot{
		Name:           c.name,
		ClassID:        c.classID,
		RaceID:         c.raceID,
		Level:          c.level,
		XP:             c.xp,
		StatPoints:     c.statPoints,
		Stats:          c.stats,
		Health:         c.health,
		Mana:           c.mana,
		Stamina:        c.stamina,
		Pos:            c.pos,
		Gold:           c.inv.Gold(),
		KnownAbilities: append([]string(nil), c.known...),
		SkillPoints:    c.skills.Points(),
		UnlockedNodes:  c.skills.Unlocked(),
	}

	for i, stack := range c.inv.Slots() {
		if stack.IsEmpty() {
			continue
		}
		snap.Items = append(snap.Items, ItemSnapshot{
			Slot:     i,
			ItemID:   stack.Template.ID,
			Quantity: stack.Quantity,
		})
	}
	for _, kind := range []string{EquipSlotWeapon, EquipSlotArmor} {
		if tpl := c.inv.Equipped(kind); tpl != nil {
			snap.Equipment = append(snap.Equipment, tpl.ID)
		}
	}
	return snap
}

// RestoreCharacter rebuilds a character from a snapshot, resolving
// template references through the registry. Characters always come
// back alive, with at least one point of health.
func RestoreCharacter(id uint64, snap CharacterSnapshot, reg *data.Registry) (*Character, error) {
	class := reg.Class(snap.ClassID)
	if class == nil {
		return nil, fmt.Errorf("unknown class %q", snap.ClassID)
	}
	race := reg.Race(snap.RaceID)
	if race == nil {
		return nil, fmt.Errorf("unknown race %q", snap.RaceID)
	}

	known := append([]string(nil), snap.KnownAbilities...)
	if len(known) == 0 {
		known = []string{class.Abilities[0]}
	}

	c := &Character{
		classID:        snap.ClassID,
		raceID:         snap.RaceID,
		xp:             snap.XP,
		statPoints:     snap.StatPoints,
		stats:          snap.Stats,
		classAbilities: append([]string(nil), class.Abilities...),
		known:          known,
		skills:         skilltree.RestoreState(snap.SkillPoints, snap.UnlockedNodes),
		inv:            NewInventory(),
	}
	level := max(snap.Level, 1)
	initCombatant(&c.Combatant, id, snap.Name, snap.Pos, level, 0, 0)

	c.inv.SetGold(snap.Gold)
	for _, it := range snap.Items {
		tpl := reg.Item(it.ItemID)
		if tpl == nil {
			return nil, fmt.Errorf("unknown item %q", it.ItemID)
		}
		if err := c.inv.PlaceAt(it.Slot, tpl, it.Quantity); err != nil {
			return nil, err
		}
	}
	for _, itemID := range snap.Equipment {
		tpl := reg.Item(itemID)
		if tpl == nil {
			return nil, fmt.Errorf("unknown item %q", itemID)
		}
		if err := c.inv.RestoreEquipped(tpl); err != nil {
			return nil, fmt.Errorf("equip %s: %w", itemID, err)
		}
	}

	c.recalcDerivedLocked()
	c.health = min(max(snap.Health, 1), c.maxHealth)
	c.mana = min(max(snap.Mana, 0), c.maxMana)
	c.stamina = min(max(snap.Stamina, 0), c.maxStamina)
	return c, nil
}

// PetSnapshot is the persistable state of a pet. Stats are recomputed
// from the species template and level on restore.
type PetSnapshot struct {
	TemplateID string
	Nickname   string
	Level      int
	Experience int
	Bond       int
	Happiness  float64
}

// Snapshot captures the pet's persistable state.
func (p *Pet) Snapshot() PetSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PetSnapshot{
		TemplateID: p.tpl.ID,
		Nickname:   p.nickname,
		Level:      p.level,
		Experience: p.experience,
		Bond:       p.bond,
		Happiness:  p.happiness,
	}
}

// RestorePet rebuilds a pet from a snapshot by replaying its levels on
// a fresh adoption.
func RestorePet(snap PetSnapshot, reg *data.Registry) (*Pet, error) {
	tpl := reg.Pet(snap.TemplateID)
	if tpl == nil {
		return nil, fmt.Errorf("unknown pet %q", snap.TemplateID)
	}

	p := NewPet(tpl, snap.Nickname)
	for p.level < snap.Level {
		p.levelUpLocked()
	}
	p.experience = max(snap.Experience, 0)
	p.bond = min(max(snap.Bond, 0), petMaxBond)
	p.happiness = min(max(snap.Happiness, 0), petMaxHappiness)
	return p, nil
}
