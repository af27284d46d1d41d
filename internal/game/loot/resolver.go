package loot

import (
	"math/rand/v2"
)

// DropEvent is the outcome of resolving a single kill. It is a plain value:
// the resolver reports what dropped, applying it to an inventory is the
// caller's job.
type DropEvent struct {
	EnemyKind    string
	Roll         float64
	Dropped      bool
	AwardedItems []string
}

// Resolver decides drops for killed enemies. The table set is fixed at
// construction and the random source is injected, so two resolvers built
// from the same tables and an identically seeded source produce identical
// event sequences.
type Resolver struct {
	tables map[string]Table
	rng    *rand.Rand
}

// NewResolver builds a resolver over the given tables. Tables are keyed by
// enemy kind; entries whose EnemyKind disagrees with their map key are
// re-keyed by EnemyKind. rng must be non-nil.
func NewResolver(tables map[string]Table, rng *rand.Rand) *Resolver {
	owned := make(map[string]Table, len(tables))
	for key, tbl := range tables {
		if tbl.EnemyKind == "" {
			tbl.EnemyKind = key
		}
		owned[tbl.EnemyKind] = tbl
	}
	return &Resolver{tables: owned, rng: rng}
}

// Resolve rolls the drop for one kill of the given enemy kind.
//
// Unknown kinds produce an empty no-drop event and consume no randomness.
// Known kinds consume exactly one uniform roll in [0, 1); the kill drops
// when roll < DropChance, so chance 0 never drops and chance 1 always
// drops through the same comparison. A successful drop awards exactly one
// item, chosen uniformly from the table's item list (one more draw).
func (r *Resolver) Resolve(enemyKind string) DropEvent {
	tbl, ok := r.tables[enemyKind]
	if !ok {
		return DropEvent{EnemyKind: enemyKind}
	}

	ev := DropEvent{EnemyKind: enemyKind}
	ev.Roll = r.rng.Float64()
	if ev.Roll >= tbl.DropChance {
		return ev
	}
	if len(tbl.Items) == 0 {
		// Malformed table slipped past load-time validation: degrade to no drop.
		return ev
	}

	ev.Dropped = true
	ev.AwardedItems = []string{tbl.Items[r.rng.IntN(len(tbl.Items))]}
	return ev
}

// Table returns the table registered for the given enemy kind.
func (r *Resolver) Table(enemyKind string) (Table, bool) {
	tbl, ok := r.tables[enemyKind]
	return tbl, ok
}

// Kinds returns the number of enemy kinds the resolver knows about.
func (r *Resolver) Kinds() int {
	return len(r.tables)
}
