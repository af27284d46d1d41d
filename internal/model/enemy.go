package model

import (
	"github.com/skillmine/core/internal/data"
)

// enemyManaPool is the flat casting pool every enemy carries. Only
// ability-wielding enemies (bosses) ever draw from it.
const enemyManaPool = 100.0

// enemyManaRegen is mana recovered per second while alive, so bosses do
// not run dry in long fights.
const enemyManaRegen = 2.0

// ManualSpawn marks an enemy placed directly rather than by a spawner.
const ManualSpawn = -1

// Enemy is a hostile combatant built from an enemy template. Stats come
// from the template; only resources, effects and timers are mutable.
type Enemy struct {
	Combatant

	tpl        *data.EnemyTemplate
	home       Vec2
	spawnIndex int

	attackTimer float64
	aiState     AIState
	targetID    uint64
}

// NewEnemy creates an enemy of the given template at pos. spawnIndex is
// the owning spawn point, or ManualSpawn.
func NewEnemy(id uint64, tpl *data.EnemyTemplate, pos Vec2, spawnIndex int) *Enemy {
	e := &Enemy{
		tpl:        tpl,
		home:       pos,
		spawnIndex: spawnIndex,
	}
	initCombatant(&e.Combatant, id, tpl.Name, pos, 1, tpl.MaxHealth, enemyManaPool)
	return e
}

// Template returns the static enemy definition.
func (e *Enemy) Template() *data.EnemyTemplate { return e.tpl }

// Kind returns the enemy kind id.
func (e *Enemy) Kind() string { return e.tpl.Kind }

// IsBoss reports whether this enemy is a boss.
func (e *Enemy) IsBoss() bool { return e.tpl.Boss }

// Home returns the spawn anchor the enemy leashes back to.
func (e *Enemy) Home() Vec2 { return e.home }

// SpawnIndex returns the owning spawn point index, or ManualSpawn.
func (e *Enemy) SpawnIndex() int { return e.spawnIndex }

// AttackPower returns base physical attack before multipliers.
func (e *Enemy) AttackPower() float64 { return e.tpl.AttackPower }

// MagicPower returns spell power for ability casts. Enemies channel the
// same power pool for spells as for swings.
func (e *Enemy) MagicPower() float64 { return e.tpl.AttackPower }

// Defense returns base damage mitigation.
func (e *Enemy) Defense() float64 { return e.tpl.Defense }

// Speed returns current movement speed with slow effects applied.
func (e *Enemy) Speed() float64 {
	return e.tpl.Speed * e.SlowFactor()
}

// AIState returns the current behavior state.
func (e *Enemy) AIState() AIState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.aiState
}

// SetAIState moves the state machine to the given state.
func (e *Enemy) SetAIState(s AIState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aiState = s
}

// TargetID returns the id of the current target, 0 when none.
func (e *Enemy) TargetID() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.targetID
}

// SetTarget locks the enemy onto a target.
func (e *Enemy) SetTarget(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetID = id
}

// ClearTarget drops the current target.
func (e *Enemy) ClearTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetID = 0
}

// CanAttack reports whether the swing timer has elapsed.
func (e *Enemy) CanAttack() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attackTimer <= 0
}

// StartAttackCooldown rearms the swing timer from the template.
func (e *Enemy) StartAttackCooldown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attackTimer = e.tpl.AttackCooldown
}

// Update advances effect timers, ability cooldowns, the swing timer and
// mana recovery.
func (e *Enemy) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.TickEffects(dt)
	e.TickCooldowns(dt)

	e.mu.Lock()
	e.attackTimer = max(e.attackTimer-dt, 0)
	if e.health > 0 {
		e.mana = min(e.mana+enemyManaRegen*dt, e.maxMana)
	}
	e.mu.Unlock()
}
