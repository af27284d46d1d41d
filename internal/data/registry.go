package data

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/skillmine/core/internal/game/loot"
	"github.com/skillmine/core/internal/game/skilltree"
)

// Registry holds every loaded game definition. Contents are read-only
// after Load returns.
type Registry struct {
	Items        map[string]*ItemTemplate
	Enemies      map[string]*EnemyTemplate
	Classes      map[string]*ClassTemplate
	Races        map[string]*RaceTemplate
	Abilities    map[string]*AbilityTemplate
	LootTables   map[string]loot.Table
	Quests       map[string]*QuestTemplate
	Pets         map[string]*PetTemplate
	PetAbilities map[string]*PetAbilityTemplate
	Spawns       *SpawnConfig
	SkillGraph   *skilltree.Graph
}

// Load reads every definition file under dir and cross-checks the
// references between them.
func Load(dir string) (*Registry, error) {
	reg := &Registry{}
	var err error

	reg.Items, err = loadItems(filepath.Join(dir, "items.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	slog.Info("loaded item templates", "count", len(reg.Items))

	reg.Abilities, err = loadAbilities(filepath.Join(dir, "abilities.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load abilities: %w", err)
	}
	slog.Info("loaded ability templates", "count", len(reg.Abilities))

	reg.Classes, reg.Races, err = loadClasses(filepath.Join(dir, "classes.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	slog.Info("loaded class templates", "classes", len(reg.Classes), "races", len(reg.Races))

	reg.Enemies, err = loadEnemies(filepath.Join(dir, "enemies.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load enemies: %w", err)
	}
	slog.Info("loaded enemy templates", "count", len(reg.Enemies))

	reg.LootTables, err = loadLootTables(filepath.Join(dir, "loot_tables.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load loot tables: %w", err)
	}
	slog.Info("loaded loot tables", "count", len(reg.LootTables))

	reg.Quests, err = loadQuests(filepath.Join(dir, "quests.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	slog.Info("loaded quest templates", "count", len(reg.Quests))

	reg.Pets, reg.PetAbilities, err = loadPets(filepath.Join(dir, "pets.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load pets: %w", err)
	}
	slog.Info("loaded pet templates", "pets", len(reg.Pets), "abilities", len(reg.PetAbilities))

	reg.Spawns, err = loadSpawns(filepath.Join(dir, "spawns.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load spawns: %w", err)
	}
	slog.Info("loaded spawn config", "points", len(reg.Spawns.Points), "max_enemies", reg.Spawns.MaxEnemies)

	reg.SkillGraph, err = loadSkillGraph(filepath.Join(dir, "skill_graph.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load skill graph: %w", err)
	}
	slog.Info("loaded skill graph", "nodes", reg.SkillGraph.Len(), "tiers", reg.SkillGraph.MaxTier()+1)

	if err := reg.validateRefs(); err != nil {
		return nil, fmt.Errorf("validate data: %w", err)
	}

	return reg, nil
}

// validateRefs checks that every cross-file reference resolves.
func (r *Registry) validateRefs() error {
	for id, c := range r.Classes {
		for _, ab := range c.Abilities {
			if _, ok := r.Abilities[ab]; !ok {
				return fmt.Errorf("class %q: unknown ability %q", id, ab)
			}
		}
	}
	for kind, e := range r.Enemies {
		if e.LootTable != "" {
			if _, ok := r.LootTables[e.LootTable]; !ok {
				return fmt.Errorf("enemy %q: unknown loot table %q", kind, e.LootTable)
			}
		}
		for _, ab := range e.Abilities {
			if _, ok := r.Abilities[ab]; !ok {
				return fmt.Errorf("enemy %q: unknown ability %q", kind, ab)
			}
		}
	}
	for kind, tbl := range r.LootTables {
		for _, item := range tbl.Items {
			if _, ok := r.Items[item]; !ok {
				return fmt.Errorf("loot table %q: unknown item %q", kind, item)
			}
		}
	}
	for id, q := range r.Quests {
		for _, obj := range q.Objectives {
			if obj.Target == TargetAny {
				continue
			}
			switch obj.Type {
			case ObjectiveKill:
				if _, ok := r.Enemies[obj.Target]; !ok {
					return fmt.Errorf("quest %q: objective %q: unknown enemy %q", id, obj.ID, obj.Target)
				}
			case ObjectiveCollect:
				if _, ok := r.Items[obj.Target]; !ok {
					return fmt.Errorf("quest %q: objective %q: unknown item %q", id, obj.ID, obj.Target)
				}
			}
		}
		for _, item := range q.Rewards.Items {
			if _, ok := r.Items[item]; !ok {
				return fmt.Errorf("quest %q: unknown reward item %q", id, item)
			}
		}
		if ab := q.Rewards.UnlockAbility; ab != "" {
			if _, ok := r.Abilities[ab]; !ok {
				return fmt.Errorf("quest %q: unknown reward ability %q", id, ab)
			}
		}
	}
	for i, p := range r.Spawns.Points {
		for _, kind := range p.Kinds {
			if _, ok := r.Enemies[kind]; !ok {
				return fmt.Errorf("spawn point %d: unknown enemy %q", i, kind)
			}
		}
	}
	validStats := make(map[string]bool, len(StatNames))
	for _, s := range StatNames {
		validStats[s] = true
	}
	for _, n := range r.SkillGraph.Nodes() {
		if n.Effect.AbilityID != "" {
			if _, ok := r.Abilities[n.Effect.AbilityID]; !ok {
				return fmt.Errorf("skill node %q: unknown ability %q", n.ID, n.Effect.AbilityID)
			}
		}
		if n.Effect.Stat != "" && !validStats[n.Effect.Stat] {
			return fmt.Errorf("skill node %q: unknown stat %q", n.ID, n.Effect.Stat)
		}
	}
	return nil
}

// Item returns the item template by id, nil if not found.
func (r *Registry) Item(id string) *ItemTemplate { return r.Items[id] }

// Enemy returns the enemy template by kind, nil if not found.
func (r *Registry) Enemy(kind string) *EnemyTemplate { return r.Enemies[kind] }

// Ability returns the ability template by id, nil if not found.
func (r *Registry) Ability(id string) *AbilityTemplate { return r.Abilities[id] }

// Class returns the class template by id, nil if not found.
func (r *Registry) Class(id string) *ClassTemplate { return r.Classes[id] }

// Race returns the race template by id, nil if not found.
func (r *Registry) Race(id string) *RaceTemplate { return r.Races[id] }

// Quest returns the quest template by id, nil if not found.
func (r *Registry) Quest(id string) *QuestTemplate { return r.Quests[id] }

// Pet returns the pet template by id, nil if not found.
func (r *Registry) Pet(id string) *PetTemplate { return r.Pets[id] }

// PetAbility returns the pet ability template by id, nil if not found.
func (r *Registry) PetAbility(id string) *PetAbilityTemplate { return r.PetAbilities[id] }
