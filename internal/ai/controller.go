// Package ai drives enemy behavior. State transitions are pure
// functions over a snapshot of inputs; controllers gather the inputs,
// run the decision and apply its side effects through injected
// callbacks, and a tick manager steps every controller at a fixed
// cadence.
package ai

import "github.com/skillmine/core/internal/model"

// Controller is one entity's brain, stepped by the TickManager.
type Controller interface {
	// Start arms the controller.
	Start()

	// Stop halts the controller and drops its target.
	Stop()

	// State returns the current behavior state.
	State() model.AIState

	// Tick advances the controller by dt seconds.
	Tick(dt float64)
}

// AttackFunc executes a basic attack on the target. Injected so the
// controller never depends on the combat engine directly.
type AttackFunc func(enemy *model.Enemy, target *model.Character)

// CastFunc casts one of the enemy's abilities on the target. Injected
// for boss controllers; nil disables casting.
type CastFunc func(enemy *model.Enemy, target *model.Character, abilityID string) error

// TargetFunc returns the closest living character within radius of
// pos, or nil. Injected so the controller never depends on the world
// registry directly.
type TargetFunc func(pos model.Vec2, radius float64) *model.Character
