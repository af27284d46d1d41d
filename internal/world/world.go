// Package world tracks the live entities of one game world and answers
// proximity queries over them.
package world

import (
	"maps"
	"slices"
	"sync"

	"github.com/skillmine/core/internal/model"
)

// DefaultSearchRange bounds nearest-entity queries that pass no range.
const DefaultSearchRange = 50.0

// World is the registry of live characters and enemies. Constructed,
// not a singleton, so tests and simulations can run worlds side by
// side. Queries iterate ids in sorted order: ties always resolve the
// same way, keeping seeded runs replayable.
type World struct {
	ids *IDAllocator

	mu         sync.RWMutex
	characters map[uint64]*model.Character
	enemies    map[uint64]*model.Enemy
}

// New creates an empty world with a fresh id allocator.
func New() *World {
	return &World{
		ids:        NewIDAllocator(),
		characters: make(map[uint64]*model.Character),
		enemies:    make(map[uint64]*model.Enemy),
	}
}

// IDs returns the world's entity id allocator.
func (w *World) IDs() *IDAllocator { return w.ids }

// AddCharacter registers a character.
func (w *World) AddCharacter(c *model.Character) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.characters[c.ID()] = c
}

// RemoveCharacter drops the character with the given id.
func (w *World) RemoveCharacter(id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.characters, id)
}

// Character returns the registered character with the given id.
func (w *World) Character(id uint64) (*model.Character, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.characters[id]
	return c, ok
}

// Characters returns all registered characters in id order.
func (w *World) Characters() []*model.Character {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Character, 0, len(w.characters))
	for _, id := range slices.Sorted(maps.Keys(w.characters)) {
		out = append(out, w.characters[id])
	}
	return out
}

// AddEnemy registers an enemy.
func (w *World) AddEnemy(e *model.Enemy) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enemies[e.ID()] = e
}

// RemoveEnemy drops the enemy with the given id.
func (w *World) RemoveEnemy(id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.enemies, id)
}

// Enemy returns the registered enemy with the given id.
func (w *World) Enemy(id uint64) (*model.Enemy, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.enemies[id]
	return e, ok
}

// Enemies returns all registered enemies in id order, dead included.
func (w *World) Enemies() []*model.Enemy {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Enemy, 0, len(w.enemies))
	for _, id := range slices.Sorted(maps.Keys(w.enemies)) {
		out = append(out, w.enemies[id])
	}
	return out
}

// EnemyCount returns the number of registered enemies, dead included.
func (w *World) EnemyCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.enemies)
}

// CharacterCount returns the number of registered characters.
func (w *World) CharacterCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.characters)
}

// NearestEnemy returns the closest living enemy within maxRange of
// pos, or nil. A non-positive maxRange uses the default search range.
func (w *World) NearestEnemy(pos model.Vec2, maxRange float64) *model.Enemy {
	if maxRange <= 0 {
		maxRange = DefaultSearchRange
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var nearest *model.Enemy
	best := maxRange * maxRange
	for _, id := range slices.Sorted(maps.Keys(w.enemies)) {
		e := w.enemies[id]
		if e.IsDead() {
			continue
		}
		if d := pos.DistanceSquared(e.Pos()); d < best {
			best = d
			nearest = e
		}
	}
	return nearest
}

// NearestCharacter returns the closest living character within
// maxRange of pos, or nil. A non-positive maxRange uses the default
// search range.
func (w *World) NearestCharacter(pos model.Vec2, maxRange float64) *model.Character {
	if maxRange <= 0 {
		maxRange = DefaultSearchRange
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var nearest *model.Character
	best := maxRange * maxRange
	for _, id := range slices.Sorted(maps.Keys(w.characters)) {
		c := w.characters[id]
		if c.IsDead() {
			continue
		}
		if d := pos.DistanceSquared(c.Pos()); d < best {
			best = d
			nearest = c
		}
	}
	return nearest
}

// ReapDeadEnemies removes every dead enemy from the registry and
// returns them in id order, for spawners to reclaim.
func (w *World) ReapDeadEnemies() []*model.Enemy {
	w.mu.Lock()
	defer w.mu.Unlock()

	var dead []*model.Enemy
	for _, id := range slices.Sorted(maps.Keys(w.enemies)) {
		if e := w.enemies[id]; e.IsDead() {
			dead = append(dead, e)
			delete(w.enemies, id)
		}
	}
	return dead
}
