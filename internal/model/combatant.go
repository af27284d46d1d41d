package model

import "sync"

// Combatant holds the state shared by everything that can fight:
// health, mana, position, timed status effects and per-unit ability
// cooldowns. Character, Enemy and Pet embed it; the embedded mutex
// guards their fields too.
type Combatant struct {
	mu sync.RWMutex

	id    uint64
	name  string
	pos   Vec2
	level int

	health    float64
	maxHealth float64
	mana      float64
	maxMana   float64

	effects   []StatusEffect
	cooldowns map[string]float64 // ability id -> seconds remaining

	deathOnce sync.Once
}

// initCombatant fills in the embedded base in place so the containing
// struct's mutex is never copied.
func initCombatant(c *Combatant, id uint64, name string, pos Vec2, level int, maxHealth, maxMana float64) {
	c.id = id
	c.name = name
	c.pos = pos
	c.level = level
	c.health = maxHealth
	c.maxHealth = maxHealth
	c.mana = maxMana
	c.maxMana = maxMana
	c.cooldowns = make(map[string]float64)
}

// ID returns the unique world id (immutable after creation).
func (c *Combatant) ID() uint64 { return c.id }

// Name returns the display name.
func (c *Combatant) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Pos returns the current position.
func (c *Combatant) Pos() Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos
}

// SetPos moves the combatant.
func (c *Combatant) SetPos(p Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = p
}

// Level returns the current level.
func (c *Combatant) Level() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

// CurrentHealth returns current health.
func (c *Combatant) CurrentHealth() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.health
}

// MaxHealth returns maximum health.
func (c *Combatant) MaxHealth() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHealth
}

// HealthPercent returns current health as a fraction of maximum (0.0-1.0).
func (c *Combatant) HealthPercent() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.maxHealth == 0 {
		return 0
	}
	return c.health / c.maxHealth
}

// IsDead reports whether health is depleted.
func (c *Combatant) IsDead() bool {
	return c.CurrentHealth() <= 0
}

// Heal restores health, clamped to the maximum.
func (c *Combatant) Heal(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.health = min(c.health+amount, c.maxHealth)
}

// ApplyDamage applies mitigated damage: active shield pools absorb first,
// the rest comes off health (clamped at 0). Returns the damage that got
// through to health; fully absorbed hits return 0. Mitigation itself
// (defense reduction) is the combat layer's job.
func (c *Combatant) ApplyDamage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.health <= 0 {
		return 0
	}

	remaining := amount
	for i := 0; i < len(c.effects) && remaining > 0; {
		if c.effects[i].Kind != EffectShield {
			i++
			continue
		}
		absorbed := min(c.effects[i].Value, remaining)
		c.effects[i].Value -= absorbed
		remaining -= absorbed
		if c.effects[i].Value <= 0 {
			c.effects = append(c.effects[:i], c.effects[i+1:]...)
			continue
		}
		i++
	}

	c.health = max(c.health-remaining, 0)
	return remaining
}

// CurrentMana returns current mana.
func (c *Combatant) CurrentMana() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mana
}

// MaxMana returns maximum mana.
func (c *Combatant) MaxMana() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxMana
}

// UseMana spends mana if enough is available.
func (c *Combatant) UseMana(amount float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

// RestoreMana adds mana, clamped to the maximum.
func (c *Combatant) RestoreMana(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mana = min(c.mana+amount, c.maxMana)
}

// ApplyEffect attaches a status effect. Reapplying an effect with the
// same name refreshes its duration and magnitude instead of stacking.
func (c *Combatant) ApplyEffect(e StatusEffect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.effects {
		if c.effects[i].Name == e.Name {
			c.effects[i].Remaining = e.Remaining
			c.effects[i].Value = e.Value
			return
		}
	}
	c.effects = append(c.effects, e)
}

// TickEffects advances effect timers and drops expired effects.
func (c *Combatant) TickEffects(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.effects[:0]
	for _, e := range c.effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	c.effects = kept
}

// Effects returns a copy of the active effects.
func (c *Combatant) Effects() []StatusEffect {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]StatusEffect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Cleanse strips all negative effects, returning how many were removed.
func (c *Combatant) Cleanse() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.effects[:0]
	removed := 0
	for _, e := range c.effects {
		if e.IsNegative() {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	c.effects = kept
	return removed
}

// IsStunned reports whether a stun effect is active.
func (c *Combatant) IsStunned() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.effects {
		if e.Kind == EffectStun {
			return true
		}
	}
	return false
}

// SlowFactor returns the strongest active speed multiplier (1.0 = none).
func (c *Combatant) SlowFactor() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	factor := 1.0
	for _, e := range c.effects {
		if e.Kind == EffectSlow && e.Value < factor {
			factor = e.Value
		}
	}
	return factor
}

// AttackMultiplier returns the product of active attack buffs.
func (c *Combatant) AttackMultiplier() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mult := 1.0
	for _, e := range c.effects {
		if e.Kind == EffectBuffAttack {
			mult *= e.Value
		}
	}
	return mult
}

// DefenseMultiplier returns the product of active defense buffs.
func (c *Combatant) DefenseMultiplier() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mult := 1.0
	for _, e := range c.effects {
		if e.Kind == EffectBuffDefense {
			mult *= e.Value
		}
	}
	return mult
}

// ShieldRemaining returns the total absorb pool across shield effects.
func (c *Combatant) ShieldRemaining() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, e := range c.effects {
		if e.Kind == EffectShield {
			total += e.Value
		}
	}
	return total
}

// AbilityReady reports whether the ability's cooldown has elapsed.
func (c *Combatant) AbilityReady(abilityID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cooldowns[abilityID] <= 0
}

// CooldownRemaining returns seconds until the ability is ready again.
func (c *Combatant) CooldownRemaining(abilityID string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return max(c.cooldowns[abilityID], 0)
}

// StartCooldown puts the ability on cooldown.
func (c *Combatant) StartCooldown(abilityID string, seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cooldowns[abilityID] = seconds
}

// TickCooldowns advances all cooldown timers.
func (c *Combatant) TickCooldowns(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, left := range c.cooldowns {
		if left <= 0 {
			continue
		}
		c.cooldowns[id] = left - dt
	}
}

// MarkDead records the death exactly once. Returns true for the caller
// that performed it; concurrent or repeated calls get false. Keeps kill
// rewards from being granted twice.
func (c *Combatant) MarkDead() bool {
	executed := false
	c.deathOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.health = 0
		executed = true
	})
	return executed
}

// ResetDeath re-arms the death guard. Must be called on respawn.
func (c *Combatant) ResetDeath() {
	c.deathOnce = sync.Once{}
}
