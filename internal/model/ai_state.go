package model

// AIState is the behavior state of an enemy's state machine.
type AIState int32

const (
	// StateIdle - standing still, watching for targets
	StateIdle AIState = iota
	// StatePatrol - walking a loop of points around the spawn anchor
	StatePatrol
	// StateChase - closing on an acquired target
	StateChase
	// StateAttack - in range, swinging on cooldown
	StateAttack
	// StateFlee - running from the target at low health
	StateFlee
	// StateDead - killed; the controller stops acting
	StateDead
)

// String returns the state name used in logs.
func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateFlee:
		return "flee"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
