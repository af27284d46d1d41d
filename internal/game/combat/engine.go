package combat

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/skillmine/core/internal/config"
	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/game/loot"
	"github.com/skillmine/core/internal/model"
)

// Stamina drained by one basic attack. Casters pay mana, melee pays
// stamina; combatants without a stamina pool swing for free.
const BasicAttackStamina = 5.0

// DefaultEffectDuration applies when an ability's effect bundle carries
// no explicit duration. Stuns always use their own length instead.
const DefaultEffectDuration = 5.0

// Display names for engine-applied status effects. Reapplying an effect
// with the same name refreshes it, so two abilities granting an attack
// buff overwrite each other rather than stacking.
const (
	EffectNameStun        = "Stun"
	EffectNameSlow        = "Slow"
	EffectNameAttackBuff  = "Attack Buff"
	EffectNameDefenseBuff = "Defense Buff"
	EffectNameShield      = "Shield"
)

var (
	ErrUnknownAbility = errors.New("unknown ability")
	ErrOnCooldown     = errors.New("ability on cooldown")
	ErrNoMana         = errors.New("not enough mana")
	ErrStunned        = errors.New("attacker is stunned")
	ErrExhausted      = errors.New("not enough stamina")
	ErrNoTarget       = errors.New("no target")
	ErrDeadAttacker   = errors.New("attacker is dead")
	ErrDeadTarget     = errors.New("target is dead")
	ErrOutOfRange     = errors.New("target out of attack range")
)

// Actor is what the engine needs from a combat participant. Character
// and Enemy both satisfy it through their embedded combat state.
type Actor interface {
	Name() string
	Pos() model.Vec2
	IsDead() bool
	IsStunned() bool

	AttackPower() float64
	MagicPower() float64
	Defense() float64
	AttackMultiplier() float64
	DefenseMultiplier() float64

	UseMana(amount float64) bool
	AbilityReady(abilityID string) bool
	StartCooldown(abilityID string, seconds float64)

	ApplyDamage(amount float64) float64
	Heal(amount float64)
	ApplyEffect(e model.StatusEffect)
	Cleanse() int
}

// StaminaUser is the optional stamina pool interface. Basic attacks
// drain it when the attacker has one.
type StaminaUser interface {
	UseStamina(amount float64) bool
}

// HitResult carries the outcome of one attack for observation in tests.
type HitResult struct {
	Attacker string
	Target   string
	Ability  string // empty for basic attacks
	Damage   float64
	Crit     bool
	Killed   bool
}

// Outcome reports what one combat action did. Damage is what reached
// the target's health after defense and shields.
type Outcome struct {
	Ability      string
	Damage       float64
	Healing      float64
	Crit         bool
	TargetKilled bool
}

// Engine resolves combat actions: basic attacks, ability casts, pet
// abilities and kill rewards. The random source is injected, so an
// identically seeded engine replays the same crit and gold rolls.
type Engine struct {
	reg      *data.Registry
	resolver *loot.Resolver
	rates    config.Rates
	rng      *rand.Rand
	log      *Log

	// hitObserver is a callback for observing attack results (nil in production).
	hitObserver func(HitResult)
}

// NewEngine builds a combat engine over the given definitions. resolver
// decides kill drops; rng must be non-nil.
func NewEngine(reg *data.Registry, resolver *loot.Resolver, rates config.Rates, rng *rand.Rand) *Engine {
	return &Engine{
		reg:      reg,
		resolver: resolver,
		rates:    rates,
		rng:      rng,
		log:      NewLog(),
	}
}

// Log returns the rolling combat feed.
func (e *Engine) Log() *Log {
	return e.log
}

// SetRates overrides the reward multipliers.
func (e *Engine) SetRates(rates config.Rates) {
	e.rates = rates
}

// SetHitObserver sets a callback for observing attack results (for tests).
func (e *Engine) SetHitObserver(fn func(HitResult)) {
	e.hitObserver = fn
}

func (e *Engine) observe(hit HitResult) {
	if e.hitObserver != nil {
		e.hitObserver(hit)
	}
}

// ValidateAttack checks an attack request before any cost is paid.
//
// Checks:
//   - Target exists (not nil)
//   - Attacker alive
//   - Target alive
//   - Target within maxRange (skipped when maxRange <= 0)
//
// The engine's action methods do not repeat these checks; callers
// validate first and then commit.
func ValidateAttack(attacker, target Actor, maxRange float64) error {
	if target == nil {
		return ErrNoTarget
	}
	if attacker.IsDead() {
		return ErrDeadAttacker
	}
	if target.IsDead() {
		return ErrDeadTarget
	}
	if maxRange > 0 {
		if attacker.Pos().DistanceSquared(target.Pos()) > maxRange*maxRange {
			return ErrOutOfRange
		}
	}
	return nil
}

// BasicAttack performs a plain weapon swing. Stunned attackers lose the
// swing; attackers with a stamina pool pay BasicAttackStamina or are too
// exhausted to attack. Damage is attack power times active attack buffs,
// mitigated by the target's defense.
func (e *Engine) BasicAttack(attacker, target Actor) (Outcome, error) {
	if target == nil {
		return Outcome{}, ErrNoTarget
	}
	if attacker.IsStunned() {
		e.log.Addf("%s is stunned!", attacker.Name())
		return Outcome{}, ErrStunned
	}
	if su, ok := attacker.(StaminaUser); ok {
		if !su.UseStamina(BasicAttackStamina) {
			e.log.Addf("%s is too exhausted to attack!", attacker.Name())
			return Outcome{}, ErrExhausted
		}
	}

	raw := attacker.AttackPower() * attacker.AttackMultiplier()
	applied := target.ApplyDamage(Mitigate(raw, target.Defense(), target.DefenseMultiplier()))
	e.log.Addf("%s attacks %s for %d damage!", attacker.Name(), target.Name(), int(applied))

	out := Outcome{Damage: applied, TargetKilled: target.IsDead()}
	e.observe(HitResult{
		Attacker: attacker.Name(),
		Target:   target.Name(),
		Damage:   applied,
		Killed:   out.TargetKilled,
	})
	return out, nil
}

// UseAbility resolves one ability cast.
//
// Workflow:
//  1. Cooldown gate, then mana gate. Failing either logs and costs nothing.
//  2. Mana is spent and the cooldown starts. From here the cast is
//     committed: a damage cast without a target fizzles with costs paid.
//  3. Positive base damage hits the target: base plus power scaling,
//     times attack buffs, with the ability's own crit chance doubling
//     the hit. The target's effects apply after the damage lands.
//  4. Negative base damage heals the target, or the caster when the
//     target is absent or self.
//  5. Zero base damage is pure utility: effects go to the target if
//     present, otherwise back on the caster.
func (e *Engine) UseAbility(user, target Actor, abilityID string) (Outcome, error) {
	tpl := e.reg.Ability(abilityID)
	if tpl == nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAbility, abilityID)
	}
	out := Outcome{Ability: abilityID}

	if !user.AbilityReady(abilityID) {
		e.log.Addf("%s is on cooldown!", tpl.Name)
		return out, ErrOnCooldown
	}
	if !user.UseMana(tpl.ManaCost) {
		e.log.Addf("Not enough mana for %s!", tpl.Name)
		return out, ErrNoMana
	}
	user.StartCooldown(abilityID, tpl.Cooldown)

	switch {
	case tpl.BaseDamage > 0:
		if target == nil {
			return out, nil
		}
		raw := AbilityDamage(tpl, user.AttackPower(), user.MagicPower())
		raw *= user.AttackMultiplier()
		if tpl.Effects.CritChance > 0 && e.rng.Float64() < tpl.Effects.CritChance {
			raw *= CritMultiplier
			out.Crit = true
		}
		applied := target.ApplyDamage(Mitigate(raw, target.Defense(), target.DefenseMultiplier()))
		out.Damage = applied
		e.log.Addf("%s used %s on %s for %d damage!", user.Name(), tpl.Name, target.Name(), int(applied))
		if !tpl.Effects.Empty() {
			e.applyEffects(tpl.Effects, target)
		}
		out.TargetKilled = target.IsDead()
		e.observe(HitResult{
			Attacker: user.Name(),
			Target:   target.Name(),
			Ability:  abilityID,
			Damage:   applied,
			Crit:     out.Crit,
			Killed:   out.TargetKilled,
		})

	case tpl.BaseDamage < 0:
		amount := HealAmount(tpl, user.MagicPower())
		recipient := user
		if target != nil && target != user {
			recipient = target
		}
		recipient.Heal(amount)
		out.Healing = amount
		if recipient == user {
			e.log.Addf("%s healed self for %d!", user.Name(), int(amount))
		} else {
			e.log.Addf("%s healed %s for %d!", user.Name(), recipient.Name(), int(amount))
		}

	default:
		recipient := user
		if target != nil {
			recipient = target
		}
		if !tpl.Effects.Empty() {
			e.applyEffects(tpl.Effects, recipient)
		}
		e.log.Addf("%s used %s!", user.Name(), tpl.Name)
	}

	return out, nil
}

// applyEffects attaches an ability's effect bundle to the recipient.
// Timed effects share the bundle's duration; stuns carry their own
// length. Crit chance is consumed at damage time, not here.
func (e *Engine) applyEffects(fx data.AbilityEffects, recipient Actor) {
	duration := fx.Duration
	if duration <= 0 {
		duration = DefaultEffectDuration
	}

	if fx.Stun > 0 {
		recipient.ApplyEffect(model.StatusEffect{
			Name: EffectNameStun, Kind: model.EffectStun, Remaining: fx.Stun,
		})
	}
	if fx.Slow > 0 {
		recipient.ApplyEffect(model.StatusEffect{
			Name: EffectNameSlow, Kind: model.EffectSlow, Value: fx.Slow, Remaining: duration,
		})
	}
	if fx.BuffAttack > 0 {
		recipient.ApplyEffect(model.StatusEffect{
			Name: EffectNameAttackBuff, Kind: model.EffectBuffAttack, Value: fx.BuffAttack, Remaining: duration,
		})
	}
	if fx.BuffDefense > 0 {
		recipient.ApplyEffect(model.StatusEffect{
			Name: EffectNameDefenseBuff, Kind: model.EffectBuffDefense, Value: fx.BuffDefense, Remaining: duration,
		})
	}
	if fx.Shield > 0 {
		recipient.ApplyEffect(model.StatusEffect{
			Name: EffectNameShield, Kind: model.EffectShield, Value: fx.Shield, Remaining: duration,
		})
	}
	if fx.Cleanse {
		recipient.Cleanse()
	}
}

// PetAbility resolves one pet ability use. The pet pays its own
// cooldown and bond gates through Pet.UseAbility; on success the effect
// lands by ability type: combat abilities strike the owner's target,
// buffs raise the owner's attack, defense abilities shield the owner,
// and utility effects are the caller's job to interpret.
func (e *Engine) PetAbility(pet *model.Pet, owner, target Actor, abilityID string) (Outcome, error) {
	tpl := e.reg.PetAbility(abilityID)
	if tpl == nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAbility, abilityID)
	}
	out := Outcome{Ability: abilityID}

	if err := pet.UseAbility(tpl); err != nil {
		return out, err
	}

	switch tpl.Type {
	case data.PetAbilityCombat:
		if target == nil {
			e.log.Addf("%s uses %s!", pet.Nickname(), tpl.Name)
			return out, nil
		}
		raw := (tpl.Power + float64(pet.Attack())) * pet.BondMultiplier()
		applied := target.ApplyDamage(Mitigate(raw, target.Defense(), target.DefenseMultiplier()))
		out.Damage = applied
		out.TargetKilled = target.IsDead()
		e.log.Addf("%s uses %s! Deals %d damage!", pet.Nickname(), tpl.Name, int(raw))
		e.observe(HitResult{
			Attacker: pet.Nickname(),
			Target:   target.Name(),
			Ability:  abilityID,
			Damage:   applied,
			Killed:   out.TargetKilled,
		})

	case data.PetAbilityBuff:
		if owner != nil {
			owner.ApplyEffect(model.StatusEffect{
				Name: EffectNameAttackBuff, Kind: model.EffectBuffAttack,
				Value: tpl.Power, Remaining: DefaultEffectDuration,
			})
		}
		e.log.Addf("%s uses %s! Party attack increased!", pet.Nickname(), tpl.Name)

	case data.PetAbilityDefense:
		if owner != nil {
			owner.ApplyEffect(model.StatusEffect{
				Name: EffectNameShield, Kind: model.EffectShield,
				Value: tpl.Power, Remaining: DefaultEffectDuration,
			})
		}
		e.log.Addf("%s uses %s!", pet.Nickname(), tpl.Name)

	default:
		e.log.Addf("%s uses %s!", pet.Nickname(), tpl.Name)
	}

	return out, nil
}
