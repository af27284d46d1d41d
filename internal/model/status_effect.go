package model

// Status effect kinds.
const (
	EffectStun        = "stun"
	EffectSlow        = "slow"
	EffectBuffAttack  = "buff_attack"
	EffectBuffDefense = "buff_defense"
	EffectShield      = "shield"
)

// StatusEffect is one timed effect on a combatant. Value carries the
// kind-specific magnitude: a speed multiplier for slow, an attack or
// defense multiplier for buffs, the remaining absorb pool for shield.
type StatusEffect struct {
	Name      string
	Kind      string
	Value     float64
	Remaining float64 // seconds
}

// IsNegative reports whether the effect is hostile and can be cleansed.
func (e StatusEffect) IsNegative() bool {
	return e.Kind == EffectStun || e.Kind == EffectSlow
}
