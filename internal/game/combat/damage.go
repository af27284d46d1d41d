package combat

import "github.com/skillmine/core/internal/data"

// Scaling coefficients for ability damage and healing. Physical abilities
// scale with attack power, every other damage type with magic power;
// heals scale with magic power at a lower rate.
const (
	PhysicalScaling = 0.5
	MagicScaling    = 0.5
	HealScaling     = 0.3

	// CritMultiplier doubles a hit that rolls a critical.
	CritMultiplier = 2.0

	// DefenseSoftCap shapes diminishing returns on defense: mitigation
	// is defense/(defense+DefenseSoftCap), so 50 defense halves damage.
	DefenseSoftCap = 50.0
)

// DefenseFactor returns the fraction of incoming damage that gets through
// the given defense value: 1 - d/(d+DefenseSoftCap). Defense 0 lets
// everything through; the factor approaches 0 but never reaches it.
func DefenseFactor(defense float64) float64 {
	if defense <= 0 {
		return 1.0
	}
	return 1.0 - defense/(defense+DefenseSoftCap)
}

// AbilityDamage returns the unmitigated damage of one ability cast:
// base damage plus the caster's scaling power. Healing abilities
// (negative base damage) never reach this path.
func AbilityDamage(tpl *data.AbilityTemplate, attackPower, magicPower float64) float64 {
	if tpl.DamageType == data.DamagePhysical {
		return tpl.BaseDamage + attackPower*PhysicalScaling
	}
	return tpl.BaseDamage + magicPower*MagicScaling
}

// HealAmount returns how much one cast of a healing ability restores:
// the ability's magnitude plus a share of the caster's magic power.
func HealAmount(tpl *data.AbilityTemplate, magicPower float64) float64 {
	return -tpl.BaseDamage + magicPower*HealScaling
}

// Mitigate applies the target's effective defense to raw damage. Defense
// buffs multiply the defense value before the soft-cap curve, so a 1.5x
// defense buff is worth more against already-armored targets.
func Mitigate(raw, defense, defenseMult float64) float64 {
	return raw * DefenseFactor(defense*defenseMult)
}
