package ai

import "github.com/skillmine/core/internal/model"

// Behavior tuning. Ranges come from the enemy template; these factors
// shape the transitions around them.
const (
	// LeashFactor: a chase gives up beyond aggro range × this.
	LeashFactor = 1.5
	// AttackHysteresis: attacking falls back to chasing beyond attack
	// range × this, so enemies do not flicker between the two states.
	AttackHysteresis = 1.2
	// SafeRangeFactor: a fleeing enemy calms down beyond aggro range × this.
	SafeRangeFactor = 2.0

	// FleeHealthRatio and FleeChance: each hit below this health
	// fraction has this chance of breaking the enemy into flight.
	FleeHealthRatio = 0.2
	FleeChance      = 0.3

	PatrolSpeedScale = 0.5
	FleeSpeedScale   = 1.5

	// PatrolChancePerSecond: idle enemies start a patrol roughly this
	// often, applied as chance × dt each tick.
	PatrolChancePerSecond = 0.06

	PatrolArriveRadius = 0.5
	PatrolRadius       = 5.0
	PatrolPointCount   = 3
)

// Action is the side effect a decision asks the controller to perform.
type Action int

const (
	// ActionNone - hold position
	ActionNone Action = iota
	// ActionMove - step relative to Dest at SpeedScale
	ActionMove
	// ActionAttack - swing or cast at the target
	ActionAttack
	// ActionPlotPatrol - lay out a fresh patrol route
	ActionPlotPatrol
	// ActionAdvancePatrol - arrived at a waypoint, move to the next
	ActionAdvancePatrol
)

// Inputs is the world snapshot one decision is made over. The
// controller gathers it; Decide never touches the entities.
type Inputs struct {
	State model.AIState
	Pos   model.Vec2

	HasTarget  bool
	TargetPos  model.Vec2
	TargetDead bool

	AggroRange  float64
	AttackRange float64

	AttackReady bool
	Stunned     bool

	HasRoute bool
	WayPoint model.Vec2

	// PatrolRoll is rolled upstream so Decide stays deterministic.
	PatrolRoll bool
}

// Decision is the outcome: the next state plus at most one action.
type Decision struct {
	Next       model.AIState
	Action     Action
	Dest       model.Vec2
	SpeedScale float64
	// Away flips ActionMove to step away from Dest instead of toward it.
	Away bool
}

// Decide runs one step of the enemy state machine. Pure: the same
// inputs always produce the same decision.
func Decide(in Inputs) Decision {
	if in.State == model.StateDead {
		return Decision{Next: model.StateDead}
	}
	// Stunned enemies hold their state and do nothing.
	if in.Stunned {
		return Decision{Next: in.State}
	}

	switch in.State {
	case model.StateIdle:
		return decideIdle(in)
	case model.StatePatrol:
		return decidePatrol(in)
	case model.StateChase:
		return decideChase(in)
	case model.StateAttack:
		return decideAttack(in)
	case model.StateFlee:
		return decideFlee(in)
	default:
		return Decision{Next: model.StateIdle}
	}
}

func targetInAggro(in Inputs) bool {
	return in.HasTarget && !in.TargetDead && in.Pos.Distance(in.TargetPos) < in.AggroRange
}

func decideIdle(in Inputs) Decision {
	if targetInAggro(in) {
		return Decision{Next: model.StateChase}
	}
	if in.PatrolRoll {
		return Decision{Next: model.StatePatrol, Action: ActionPlotPatrol}
	}
	return Decision{Next: model.StateIdle}
}

func decidePatrol(in Inputs) Decision {
	if targetInAggro(in) {
		return Decision{Next: model.StateChase}
	}
	if !in.HasRoute {
		return Decision{Next: model.StatePatrol, Action: ActionPlotPatrol}
	}
	if in.Pos.Distance(in.WayPoint) < PatrolArriveRadius {
		return Decision{Next: model.StatePatrol, Action: ActionAdvancePatrol}
	}
	return Decision{
		Next:       model.StatePatrol,
		Action:     ActionMove,
		Dest:       in.WayPoint,
		SpeedScale: PatrolSpeedScale,
	}
}

func decideChase(in Inputs) Decision {
	if !in.HasTarget || in.TargetDead {
		return Decision{Next: model.StateIdle}
	}
	dist := in.Pos.Distance(in.TargetPos)
	if dist > in.AggroRange*LeashFactor {
		return Decision{Next: model.StateIdle}
	}
	if dist < in.AttackRange {
		return Decision{Next: model.StateAttack}
	}
	return Decision{
		Next:       model.StateChase,
		Action:     ActionMove,
		Dest:       in.TargetPos,
		SpeedScale: 1.0,
	}
}

func decideAttack(in Inputs) Decision {
	if !in.HasTarget || in.TargetDead {
		return Decision{Next: model.StateIdle}
	}
	if in.Pos.Distance(in.TargetPos) > in.AttackRange*AttackHysteresis {
		return Decision{Next: model.StateChase}
	}
	if in.AttackReady {
		return Decision{Next: model.StateAttack, Action: ActionAttack}
	}
	return Decision{Next: model.StateAttack}
}

func decideFlee(in Inputs) Decision {
	if !in.HasTarget || in.TargetDead {
		return Decision{Next: model.StateIdle}
	}
	if in.Pos.Distance(in.TargetPos) > in.AggroRange*SafeRangeFactor {
		return Decision{Next: model.StateIdle}
	}
	return Decision{
		Next:       model.StateFlee,
		Action:     ActionMove,
		Dest:       in.TargetPos,
		SpeedScale: FleeSpeedScale,
		Away:       true,
	}
}
