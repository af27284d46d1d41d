package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/skillmine/core/internal/model"
)

// EnemyAI runs one enemy's state machine. Each tick it advances the
// enemy's timers, gathers inputs, runs the pure decision and applies
// the resulting action through the injected callbacks.
type EnemyAI struct {
	enemy     *model.Enemy
	rng       *rand.Rand
	isRunning atomic.Bool

	attackFunc AttackFunc
	targetFunc TargetFunc
	castFunc   CastFunc

	// Tick-goroutine state, never touched concurrently.
	target   *model.Character
	route    []model.Vec2
	wayPoint int
}

// NewEnemyAI creates a controller for the enemy. The rng drives patrol
// rolls, flee rolls and boss ability picks, so identically seeded
// controllers replay identical behavior.
func NewEnemyAI(enemy *model.Enemy, rng *rand.Rand, attackFunc AttackFunc, targetFunc TargetFunc) *EnemyAI {
	return &EnemyAI{
		enemy:      enemy,
		rng:        rng,
		attackFunc: attackFunc,
		targetFunc: targetFunc,
	}
}

// SetCastFunc enables ability casting for enemies that carry abilities.
func (ai *EnemyAI) SetCastFunc(fn CastFunc) {
	ai.castFunc = fn
}

// Start arms the controller.
func (ai *EnemyAI) Start() {
	ai.isRunning.Store(true)
	if !ai.enemy.IsDead() {
		ai.setState(model.StateIdle)
	}

	if IsDebugEnabled() {
		slog.Debug("enemy AI started",
			"enemy", ai.enemy.Name(),
			"id", ai.enemy.ID(),
			"aggroRange", ai.enemy.Template().AggroRange)
	}
}

// Stop halts the controller and drops its target.
func (ai *EnemyAI) Stop() {
	ai.isRunning.Store(false)
	ai.dropTarget()

	if IsDebugEnabled() {
		slog.Debug("enemy AI stopped",
			"enemy", ai.enemy.Name(),
			"id", ai.enemy.ID())
	}
}

// State returns the enemy's current behavior state.
func (ai *EnemyAI) State() model.AIState {
	return ai.enemy.AIState()
}

// Target returns the character the enemy is locked onto, or nil.
func (ai *EnemyAI) Target() *model.Character {
	return ai.target
}

// Enemy returns the controlled enemy.
func (ai *EnemyAI) Enemy() *model.Enemy {
	return ai.enemy
}

// NotifyDamage reacts to the enemy being hit: an idle enemy turns on
// its attacker even outside aggro range, and a badly hurt one may
// break and run.
func (ai *EnemyAI) NotifyDamage(attacker *model.Character) {
	if !ai.isRunning.Load() || ai.enemy.IsDead() {
		return
	}

	if ai.target == nil && attacker != nil && !attacker.IsDead() {
		ai.target = attacker
		ai.enemy.SetTarget(attacker.ID())
		switch ai.enemy.AIState() {
		case model.StateIdle, model.StatePatrol:
			ai.setState(model.StateChase)
		}
	}

	if ai.enemy.HealthPercent() < FleeHealthRatio && ai.rng.Float64() < FleeChance {
		ai.setState(model.StateFlee)
	}
}

// Tick advances the enemy by dt seconds: timers first, then one
// decision and its action.
func (ai *EnemyAI) Tick(dt float64) {
	if !ai.isRunning.Load() {
		return
	}

	e := ai.enemy
	e.Update(dt)

	if e.IsDead() {
		if e.AIState() != model.StateDead {
			ai.setState(model.StateDead)
			ai.dropTarget()
		}
		return
	}

	ai.acquireTarget()

	in := ai.gatherInputs(dt)
	d := Decide(in)

	// Falling back to idle means the fight (or the fear) is over.
	if d.Next == model.StateIdle && in.State != model.StateIdle {
		ai.dropTarget()
	}
	ai.setState(d.Next)
	ai.apply(d, dt)
}

// acquireTarget drops a dead target and, while passive, looks for a
// living character inside aggro range.
func (ai *EnemyAI) acquireTarget() {
	if ai.target != nil && ai.target.IsDead() {
		ai.dropTarget()
	}
	if ai.target != nil || ai.targetFunc == nil {
		return
	}
	switch ai.enemy.AIState() {
	case model.StateIdle, model.StatePatrol:
	default:
		return
	}

	if found := ai.targetFunc(ai.enemy.Pos(), ai.enemy.Template().AggroRange); found != nil {
		ai.target = found
		ai.enemy.SetTarget(found.ID())

		if IsDebugEnabled() {
			slog.Debug("enemy AI acquired target",
				"enemy", ai.enemy.Name(),
				"id", ai.enemy.ID(),
				"target", found.Name())
		}
	}
}

func (ai *EnemyAI) gatherInputs(dt float64) Inputs {
	e := ai.enemy
	tpl := e.Template()

	in := Inputs{
		State:       e.AIState(),
		Pos:         e.Pos(),
		AggroRange:  tpl.AggroRange,
		AttackRange: tpl.AttackRange,
		AttackReady: e.CanAttack(),
		Stunned:     e.IsStunned(),
		PatrolRoll:  ai.rng.Float64() < PatrolChancePerSecond*dt,
	}
	if ai.target != nil {
		in.HasTarget = true
		in.TargetPos = ai.target.Pos()
		in.TargetDead = ai.target.IsDead()
	}
	if len(ai.route) > 0 {
		in.HasRoute = true
		in.WayPoint = ai.route[ai.wayPoint]
	}
	return in
}

func (ai *EnemyAI) apply(d Decision, dt float64) {
	switch d.Action {
	case ActionPlotPatrol:
		ai.plotRoute()
	case ActionAdvancePatrol:
		ai.wayPoint = (ai.wayPoint + 1) % len(ai.route)
	case ActionMove:
		ai.move(d, dt)
	case ActionAttack:
		ai.attack()
	}
}

// plotRoute lays out patrol points around the spawn anchor. The route
// is kept across fights and only replotted when empty.
func (ai *EnemyAI) plotRoute() {
	home := ai.enemy.Home()
	ai.route = ai.route[:0]
	for range PatrolPointCount {
		off := model.Vec2{
			X: ai.rng.Float64()*2*PatrolRadius - PatrolRadius,
			Y: ai.rng.Float64()*2*PatrolRadius - PatrolRadius,
		}
		ai.route = append(ai.route, home.Add(off))
	}
	ai.wayPoint = 0
}

func (ai *EnemyAI) move(d Decision, dt float64) {
	e := ai.enemy
	step := e.Speed() * d.SpeedScale * dt
	if step <= 0 {
		return
	}

	if d.Away {
		dir := e.Pos().Sub(d.Dest).Normalized()
		if dir == (model.Vec2{}) {
			dir = model.Vec2{X: 1} // standing on the target, pick a way out
		}
		e.SetPos(e.Pos().Add(dir.Scale(step)))
		return
	}
	e.SetPos(e.Pos().MoveToward(d.Dest, step))
}

// attack swings at the target. Ability-carrying enemies try a cast
// first; either way the swing timer rearms.
func (ai *EnemyAI) attack() {
	target := ai.target
	if target == nil {
		return
	}

	if !ai.tryCast(target) && ai.attackFunc != nil {
		ai.attackFunc(ai.enemy, target)
	}
	ai.enemy.StartAttackCooldown()
}

// tryCast picks a random off-cooldown ability and casts it. Returns
// true when a cast landed; any refusal falls through to the swing.
func (ai *EnemyAI) tryCast(target *model.Character) bool {
	if ai.castFunc == nil {
		return false
	}
	abilities := ai.enemy.Template().Abilities
	if len(abilities) == 0 {
		return false
	}

	ready := make([]string, 0, len(abilities))
	for _, id := range abilities {
		if ai.enemy.AbilityReady(id) {
			ready = append(ready, id)
		}
	}
	if len(ready) == 0 {
		return false
	}

	id := ready[ai.rng.IntN(len(ready))]
	if err := ai.castFunc(ai.enemy, target, id); err != nil {
		return false
	}

	if IsDebugEnabled() {
		slog.Debug("enemy cast ability",
			"enemy", ai.enemy.Name(),
			"ability", id,
			"target", target.Name())
	}
	return true
}

func (ai *EnemyAI) setState(next model.AIState) {
	old := ai.enemy.AIState()
	if old == next {
		return
	}
	ai.enemy.SetAIState(next)

	if IsDebugEnabled() {
		slog.Debug("enemy AI state changed",
			"enemy", ai.enemy.Name(),
			"id", ai.enemy.ID(),
			"from", old,
			"to", next)
	}
}

func (ai *EnemyAI) dropTarget() {
	ai.target = nil
	ai.enemy.ClearTarget()
}
