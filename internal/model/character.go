package model

import (
	"errors"
	"fmt"

	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/game/skilltree"
)

// Base resource pools before stats and level are applied.
const (
	baseHealth  = 50.0
	baseMana    = 50.0
	baseStamina = 100.0
)

// Level-up grants.
const (
	levelUpStatPoints  = 3
	levelUpSkillPoints = 1
	levelUpStatGain    = 2
)

// classAbilityInterval is the level spacing between class kit unlocks:
// ability index level/interval opens at each multiple.
const classAbilityInterval = 3

var (
	ErrNoStatPoints = errors.New("no stat points available")
	ErrUnknownStat  = errors.New("unknown stat")
)

// Character is a playable character: a combatant plus progression
// (experience, stats, abilities, skill graph state) and an inventory.
type Character struct {
	Combatant

	classID string
	raceID  string

	xp         int64
	statPoints int
	stats      data.StatBlock

	stamina    float64
	maxStamina float64

	classAbilities []string
	known          []string

	skills skilltree.State

	inv *Inventory
}

// NewCharacter creates a fresh level-1 character of the given class and
// race. Stats start at the class base plus race bonuses, and only the
// first class ability is known.
func NewCharacter(id uint64, name string, class *data.ClassTemplate, race *data.RaceTemplate) *Character {
	c := &Character{
		classID:        class.ID,
		raceID:         race.ID,
		stats:          class.BaseStats.Add(race.StatBonuses),
		classAbilities: append([]string(nil), class.Abilities...),
		known:          []string{class.Abilities[0]},
		skills:         skilltree.NewState(0),
		inv:            NewInventory(),
	}
	initCombatant(&c.Combatant, id, name, Vec2{}, 1, 0, 0)
	c.recalcDerivedLocked()
	c.restoreFullLocked()
	return c
}

// ClassID returns the character's class id.
func (c *Character) ClassID() string { return c.classID }

// RaceID returns the character's race id.
func (c *Character) RaceID() string { return c.raceID }

// XP returns the accumulated experience.
func (c *Character) XP() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.xp
}

// StatPoints returns the unspent stat points.
func (c *Character) StatPoints() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statPoints
}

// Stats returns the allocated primary stats, without equipment bonuses.
func (c *Character) Stats() data.StatBlock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// TotalStats returns primary stats including equipment bonuses.
func (c *Character) TotalStats() data.StatBlock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalStatsLocked()
}

func (c *Character) totalStatsLocked() data.StatBlock {
	return c.stats.Add(c.inv.EquipmentStatBonuses())
}

// Inventory returns the character's inventory.
func (c *Character) Inventory() *Inventory { return c.inv }

// GainXP adds experience and applies any level-ups it pays for. Returns
// the number of levels gained.
func (c *Character) GainXP(amount int64) int {
	if amount <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.xp += amount
	gained := 0
	for c.level < data.MaxCharacterLevel && c.xp >= data.ExpForLevel(c.level+1) {
		c.levelUpLocked()
		gained++
	}
	return gained
}

// levelUpLocked applies one level: stat growth, progression points, the
// class kit unlock schedule, and a full restore.
func (c *Character) levelUpLocked() {
	c.level++
	c.stats = c.stats.AddAll(levelUpStatGain)
	c.statPoints += levelUpStatPoints
	c.skills = c.skills.AddPoints(levelUpSkillPoints)

	if c.level%classAbilityInterval == 0 {
		idx := c.level / classAbilityInterval
		if idx < len(c.classAbilities) {
			c.learnLocked(c.classAbilities[idx])
		}
	}

	c.recalcDerivedLocked()
	c.restoreFullLocked()
}

// AllocateStatPoint spends one stat point on the named stat.
func (c *Character) AllocateStatPoint(stat string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statPoints <= 0 {
		return ErrNoStatPoints
	}
	next, ok := c.stats.WithStat(stat, 1)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStat, stat)
	}
	c.stats = next
	c.statPoints--
	c.recalcDerivedLocked()
	return nil
}

// recalcDerivedLocked recomputes the resource pool maximums from total
// stats and level, clamping current values into the new range.
func (c *Character) recalcDerivedLocked() {
	total := c.totalStatsLocked()
	c.maxHealth = baseHealth + float64(total.Vitality*5) + float64(c.level*5)
	c.maxMana = baseMana + float64(total.Intelligence*5) + float64(c.level*5)
	c.maxStamina = baseStamina + float64(total.Agility*3) + float64(c.level*5)

	c.health = min(c.health, c.maxHealth)
	c.mana = min(c.mana, c.maxMana)
	c.stamina = min(c.stamina, c.maxStamina)
}

func (c *Character) restoreFullLocked() {
	c.health = c.maxHealth
	c.mana = c.maxMana
	c.stamina = c.maxStamina
}

// AttackPower returns physical attack: strength plus equipped weapon.
func (c *Character) AttackPower() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.totalStatsLocked()
	return float64(total.Strength*2 + c.inv.EquipmentAttack())
}

// MagicPower returns spell power derived from intelligence.
func (c *Character) MagicPower() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float64(c.totalStatsLocked().Intelligence * 3)
}

// Defense returns damage mitigation: vitality plus equipped armor.
func (c *Character) Defense() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.totalStatsLocked()
	return float64(total.Vitality + c.inv.EquipmentDefense())
}

// CurrentStamina returns the current stamina.
func (c *Character) CurrentStamina() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stamina
}

// MaxStamina returns the stamina pool size.
func (c *Character) MaxStamina() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxStamina
}

// UseStamina spends stamina if enough is available.
func (c *Character) UseStamina(amount float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if amount < 0 || c.stamina < amount {
		return false
	}
	c.stamina -= amount
	return true
}

// RestoreStamina adds stamina up to the maximum.
func (c *Character) RestoreStamina(amount float64) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stamina = min(c.stamina+amount, c.maxStamina)
}

// Regen applies passive per-second recovery scaled by dt. Dead
// characters do not regenerate.
func (c *Character) Regen(dt float64) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.health <= 0 {
		return
	}

	total := c.totalStatsLocked()
	c.health = min(c.health+(0.1+float64(total.Vitality)*0.01)*dt, c.maxHealth)
	c.mana = min(c.mana+(1.0+float64(total.Intelligence)*0.1)*dt, c.maxMana)
	c.stamina = min(c.stamina+5.0*dt, c.maxStamina)
}

// Update advances per-tick state: effect timers, ability cooldowns and
// passive regeneration.
func (c *Character) Update(dt float64) {
	c.TickEffects(dt)
	c.TickCooldowns(dt)
	c.Regen(dt)
}

// EquipFromSlot equips the item in the given carry slot and refreshes
// derived stats.
func (c *Character) EquipFromSlot(idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.inv.Equip(idx); err != nil {
		return err
	}
	c.recalcDerivedLocked()
	return nil
}

// UnequipSlot removes the item from the given equipment slot and
// refreshes derived stats.
func (c *Character) UnequipSlot(slotKind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.inv.Unequip(slotKind); err != nil {
		return err
	}
	c.recalcDerivedLocked()
	return nil
}

// UseItemAt consumes the item in the given carry slot and applies its
// restorative effects. Returns the consumed template.
func (c *Character) UseItemAt(idx int) (*data.ItemTemplate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.health <= 0 {
		return nil, errors.New("dead characters cannot use items")
	}
	tpl, err := c.inv.ConsumeAt(idx)
	if err != nil {
		return nil, err
	}

	if tpl.HealAmount > 0 {
		c.health = min(c.health+tpl.HealAmount, c.maxHealth)
	}
	if tpl.ManaRestore > 0 {
		c.mana = min(c.mana+tpl.ManaRestore, c.maxMana)
	}
	if tpl.StaminaRestore > 0 {
		c.stamina = min(c.stamina+tpl.StaminaRestore, c.maxStamina)
	}
	return tpl, nil
}

// KnownAbilities returns the learned ability ids in learn order.
func (c *Character) KnownAbilities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.known...)
}

// KnowsAbility reports whether the ability has been learned.
func (c *Character) KnowsAbility(abilityID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.knowsLocked(abilityID)
}

func (c *Character) knowsLocked(abilityID string) bool {
	for _, id := range c.known {
		if id == abilityID {
			return true
		}
	}
	return false
}

// LearnAbility adds the ability to the known set. Returns false if it
// was already known.
func (c *Character) LearnAbility(abilityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.learnLocked(abilityID)
}

func (c *Character) learnLocked(abilityID string) bool {
	if c.knowsLocked(abilityID) {
		return false
	}
	c.known = append(c.known, abilityID)
	return true
}

// SkillPoints returns the unspent skill graph points.
func (c *Character) SkillPoints() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skills.Points()
}

// SkillState returns the current skill graph state.
func (c *Character) SkillState() skilltree.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skills
}

// AddSkillPoints grants extra skill points, e.g. from quest rewards.
func (c *Character) AddSkillPoints(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skills = c.skills.AddPoints(n)
}

// UnlockSkillNode spends a skill point on the node and applies its
// effect: a permanent stat bonus, a new ability, or both.
func (c *Character) UnlockSkillNode(g *skilltree.Graph, id skilltree.NodeID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := skilltree.Unlock(g, c.skills, id)
	if err != nil {
		return err
	}
	c.skills = next

	node, _ := g.Node(id)
	if node.Effect.Stat != "" {
		if stats, ok := c.stats.WithStat(node.Effect.Stat, node.Effect.Amount); ok {
			c.stats = stats
		}
	}
	if node.Effect.AbilityID != "" {
		c.learnLocked(node.Effect.AbilityID)
	}

	c.recalcDerivedLocked()
	return nil
}

// Respawn revives the character at the given position with full
// resources and no lingering effects.
func (c *Character) Respawn(pos Vec2) {
	c.mu.Lock()
	c.pos = pos
	c.effects = nil
	c.restoreFullLocked()
	c.mu.Unlock()
	c.ResetDeath()
}
