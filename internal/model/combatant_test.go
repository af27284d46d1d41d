package model

import (
	"math"
	"testing"
)

func newTestCombatant(maxHealth, maxMana float64) *Combatant {
	var c Combatant
	initCombatant(&c, 1, "dummy", Vec2{}, 1, maxHealth, maxMana)
	return &c
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCombatant_ApplyDamage(t *testing.T) {
	c := newTestCombatant(100, 50)

	if got := c.ApplyDamage(30); got != 30 {
		t.Errorf("ApplyDamage(30) = %v, want 30", got)
	}
	if got := c.CurrentHealth(); got != 70 {
		t.Errorf("CurrentHealth() = %v, want 70", got)
	}

	// Overkill clamps at zero.
	c.ApplyDamage(500)
	if got := c.CurrentHealth(); got != 0 {
		t.Errorf("CurrentHealth() after overkill = %v, want 0", got)
	}
	if !c.IsDead() {
		t.Error("IsDead() = false after overkill")
	}

	// Dead combatants take no further damage.
	if got := c.ApplyDamage(10); got != 0 {
		t.Errorf("ApplyDamage on dead = %v, want 0", got)
	}
}

func TestCombatant_ShieldAbsorbsFirst(t *testing.T) {
	c := newTestCombatant(100, 50)
	c.ApplyEffect(StatusEffect{Name: "arcane_shield", Kind: EffectShield, Value: 20, Remaining: 8})

	if got := c.ApplyDamage(30); got != 10 {
		t.Errorf("ApplyDamage(30) = %v, want 10 through the shield", got)
	}
	if got := c.CurrentHealth(); got != 90 {
		t.Errorf("CurrentHealth() = %v, want 90 (20 absorbed by shield)", got)
	}
	// Depleted shield is removed.
	if got := len(c.Effects()); got != 0 {
		t.Errorf("len(Effects()) = %d, want 0 after shield depleted", got)
	}
}

func TestCombatant_ShieldPartialDeplete(t *testing.T) {
	c := newTestCombatant(100, 50)
	c.ApplyEffect(StatusEffect{Name: "arcane_shield", Kind: EffectShield, Value: 50, Remaining: 8})

	if got := c.ApplyDamage(30); got != 0 {
		t.Errorf("ApplyDamage(30) = %v, want 0 when fully absorbed", got)
	}
	if got := c.CurrentHealth(); got != 100 {
		t.Errorf("CurrentHealth() = %v, want 100 (fully absorbed)", got)
	}
	if got := c.ShieldRemaining(); got != 20 {
		t.Errorf("ShieldRemaining() = %v, want 20", got)
	}
}

func TestCombatant_ApplyEffectRefreshes(t *testing.T) {
	c := newTestCombatant(100, 50)

	c.ApplyEffect(StatusEffect{Name: "stun", Kind: EffectStun, Remaining: 2})
	c.ApplyEffect(StatusEffect{Name: "stun", Kind: EffectStun, Remaining: 5})

	effects := c.Effects()
	if len(effects) != 1 {
		t.Fatalf("len(Effects()) = %d, want 1 (same name refreshes)", len(effects))
	}
	if effects[0].Remaining != 5 {
		t.Errorf("Remaining = %v, want 5", effects[0].Remaining)
	}
}

func TestCombatant_TickEffectsExpiry(t *testing.T) {
	c := newTestCombatant(100, 50)
	c.ApplyEffect(StatusEffect{Name: "stun", Kind: EffectStun, Remaining: 1.0})
	c.ApplyEffect(StatusEffect{Name: "slow", Kind: EffectSlow, Value: 0.5, Remaining: 3.0})

	c.TickEffects(1.5)

	effects := c.Effects()
	if len(effects) != 1 {
		t.Fatalf("len(Effects()) = %d, want 1 after expiry", len(effects))
	}
	if effects[0].Name != "slow" {
		t.Errorf("surviving effect = %q, want slow", effects[0].Name)
	}
	if !almostEqual(effects[0].Remaining, 1.5) {
		t.Errorf("Remaining = %v, want 1.5", effects[0].Remaining)
	}
}

func TestCombatant_Cleanse(t *testing.T) {
	c := newTestCombatant(100, 50)
	c.ApplyEffect(StatusEffect{Name: "stun", Kind: EffectStun, Remaining: 2})
	c.ApplyEffect(StatusEffect{Name: "slow", Kind: EffectSlow, Value: 0.5, Remaining: 4})
	c.ApplyEffect(StatusEffect{Name: "battle_cry", Kind: EffectBuffAttack, Value: 1.5, Remaining: 10})

	if got := c.Cleanse(); got != 2 {
		t.Errorf("Cleanse() = %d, want 2", got)
	}
	effects := c.Effects()
	if len(effects) != 1 || effects[0].Kind != EffectBuffAttack {
		t.Errorf("Effects() = %v, want only the attack buff", effects)
	}
	if c.IsStunned() {
		t.Error("IsStunned() = true after cleanse")
	}
}

func TestCombatant_Multipliers(t *testing.T) {
	c := newTestCombatant(100, 50)

	if got := c.AttackMultiplier(); got != 1.0 {
		t.Errorf("AttackMultiplier() = %v, want 1.0 with no buffs", got)
	}
	if got := c.SlowFactor(); got != 1.0 {
		t.Errorf("SlowFactor() = %v, want 1.0 with no slows", got)
	}

	c.ApplyEffect(StatusEffect{Name: "battle_cry", Kind: EffectBuffAttack, Value: 1.5, Remaining: 10})
	c.ApplyEffect(StatusEffect{Name: "avatar_form", Kind: EffectBuffAttack, Value: 1.2, Remaining: 10})
	if got := c.AttackMultiplier(); !almostEqual(got, 1.8) {
		t.Errorf("AttackMultiplier() = %v, want 1.8 (stacked)", got)
	}

	c.ApplyEffect(StatusEffect{Name: "frost", Kind: EffectSlow, Value: 0.7, Remaining: 5})
	c.ApplyEffect(StatusEffect{Name: "mire", Kind: EffectSlow, Value: 0.5, Remaining: 5})
	if got := c.SlowFactor(); got != 0.5 {
		t.Errorf("SlowFactor() = %v, want 0.5 (strongest slow wins)", got)
	}

	c.ApplyEffect(StatusEffect{Name: "stone_skin", Kind: EffectBuffDefense, Value: 1.5, Remaining: 5})
	if got := c.DefenseMultiplier(); got != 1.5 {
		t.Errorf("DefenseMultiplier() = %v, want 1.5", got)
	}
}

func TestCombatant_Cooldowns(t *testing.T) {
	c := newTestCombatant(100, 50)

	if !c.AbilityReady("fireball") {
		t.Error("AbilityReady() = false for never-used ability")
	}

	c.StartCooldown("fireball", 3.0)
	if c.AbilityReady("fireball") {
		t.Error("AbilityReady() = true right after StartCooldown")
	}

	c.TickCooldowns(1.0)
	if got := c.CooldownRemaining("fireball"); !almostEqual(got, 2.0) {
		t.Errorf("CooldownRemaining() = %v, want 2.0", got)
	}

	c.TickCooldowns(2.5)
	if !c.AbilityReady("fireball") {
		t.Error("AbilityReady() = false after cooldown elapsed")
	}
}

func TestCombatant_Mana(t *testing.T) {
	c := newTestCombatant(100, 50)

	if !c.UseMana(30) {
		t.Fatal("UseMana(30) = false with 50 available")
	}
	if c.UseMana(30) {
		t.Error("UseMana(30) = true with only 20 left")
	}
	c.RestoreMana(100)
	if got := c.CurrentMana(); got != 50 {
		t.Errorf("CurrentMana() = %v, want 50 (clamped)", got)
	}
}

func TestCombatant_DeathOnce(t *testing.T) {
	c := newTestCombatant(100, 50)
	c.ApplyDamage(100)

	if !c.MarkDead() {
		t.Error("first MarkDead() = false, want true")
	}
	if c.MarkDead() {
		t.Error("second MarkDead() = true, want false")
	}

	c.ResetDeath()
	if !c.MarkDead() {
		t.Error("MarkDead() after ResetDeath() = false, want true")
	}
}
