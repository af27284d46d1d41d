package model

import (
	"errors"
	"testing"

	"github.com/skillmine/core/internal/data"
)

func newTestWarrior(t *testing.T) (*Character, *data.Registry) {
	t.Helper()
	reg := data.NewTestRegistry()
	c := NewCharacter(1, "Conan", reg.Class("warrior"), reg.Race("human"))
	return c, reg
}

func TestNewCharacter(t *testing.T) {
	c, _ := newTestWarrior(t)

	// Class base plus race bonus.
	want := data.StatBlock{Strength: 16, Agility: 11, Intelligence: 6, Vitality: 13}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	if got := c.Level(); got != 1 {
		t.Errorf("Level() = %d, want 1", got)
	}

	// Derived pools: base + stat scaling + level scaling.
	if got := c.MaxHealth(); got != 120 {
		t.Errorf("MaxHealth() = %v, want 120", got)
	}
	if got := c.MaxMana(); got != 85 {
		t.Errorf("MaxMana() = %v, want 85", got)
	}
	if got := c.MaxStamina(); got != 138 {
		t.Errorf("MaxStamina() = %v, want 138", got)
	}
	if got := c.CurrentHealth(); got != c.MaxHealth() {
		t.Errorf("CurrentHealth() = %v, want full %v", got, c.MaxHealth())
	}

	// Only the first class ability is known at creation.
	known := c.KnownAbilities()
	if len(known) != 1 || known[0] != "power_strike" {
		t.Errorf("KnownAbilities() = %v, want [power_strike]", known)
	}

	if got := c.AttackPower(); got != 32 {
		t.Errorf("AttackPower() = %v, want 32", got)
	}
	if got := c.MagicPower(); got != 18 {
		t.Errorf("MagicPower() = %v, want 18", got)
	}
	if got := c.Defense(); got != 13 {
		t.Errorf("Defense() = %v, want 13", got)
	}
}

func TestCharacter_GainXPLevelUp(t *testing.T) {
	c, _ := newTestWarrior(t)

	if got := c.GainXP(99); got != 0 {
		t.Errorf("GainXP(99) = %d levels, want 0", got)
	}

	if got := c.GainXP(1); got != 1 {
		t.Errorf("GainXP(1) at threshold = %d levels, want 1", got)
	}
	if got := c.Level(); got != 2 {
		t.Errorf("Level() = %d, want 2", got)
	}

	// Level-up grants: +2 to every stat, 3 stat points, 1 skill point.
	want := data.StatBlock{Strength: 18, Agility: 13, Intelligence: 8, Vitality: 15}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	if got := c.StatPoints(); got != 3 {
		t.Errorf("StatPoints() = %d, want 3", got)
	}
	if got := c.SkillPoints(); got != 1 {
		t.Errorf("SkillPoints() = %d, want 1", got)
	}

	// Full restore on level-up.
	if got := c.CurrentHealth(); got != c.MaxHealth() {
		t.Errorf("CurrentHealth() = %v, want full %v", got, c.MaxHealth())
	}
}

func TestCharacter_GainXPCascade(t *testing.T) {
	c, _ := newTestWarrior(t)

	// 250 total XP pays for levels 2 and 3 at once.
	if got := c.GainXP(250); got != 2 {
		t.Errorf("GainXP(250) = %d levels, want 2", got)
	}
	if got := c.Level(); got != 3 {
		t.Errorf("Level() = %d, want 3", got)
	}

	// Second class ability unlocks at level 3.
	if !c.KnowsAbility("shield_bash") {
		t.Errorf("KnowsAbility(shield_bash) = false at level 3, known: %v", c.KnownAbilities())
	}
	if c.KnowsAbility("battle_cry") {
		t.Error("KnowsAbility(battle_cry) = true at level 3, unlocks at 6")
	}
}

func TestCharacter_ClassKitCompleteAtSix(t *testing.T) {
	c, _ := newTestWarrior(t)

	c.GainXP(data.ExpForLevel(6))

	if got := c.Level(); got != 6 {
		t.Fatalf("Level() = %d, want 6", got)
	}
	want := []string{"power_strike", "shield_bash", "battle_cry"}
	got := c.KnownAbilities()
	if len(got) != len(want) {
		t.Fatalf("KnownAbilities() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownAbilities()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCharacter_AllocateStatPoint(t *testing.T) {
	c, _ := newTestWarrior(t)

	if err := c.AllocateStatPoint(data.StatStrength); !errors.Is(err, ErrNoStatPoints) {
		t.Errorf("AllocateStatPoint with no points = %v, want ErrNoStatPoints", err)
	}

	c.GainXP(100) // level 2, grants 3 points

	if err := c.AllocateStatPoint("luck"); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("AllocateStatPoint(luck) = %v, want ErrUnknownStat", err)
	}
	if got := c.StatPoints(); got != 3 {
		t.Errorf("StatPoints() = %d after failed allocate, want 3", got)
	}

	healthBefore := c.MaxHealth()
	if err := c.AllocateStatPoint(data.StatVitality); err != nil {
		t.Fatalf("AllocateStatPoint(vitality) = %v", err)
	}
	if got := c.StatPoints(); got != 2 {
		t.Errorf("StatPoints() = %d, want 2", got)
	}
	if got := c.MaxHealth(); got != healthBefore+5 {
		t.Errorf("MaxHealth() = %v, want %v (+5 per vitality)", got, healthBefore+5)
	}
}

func TestCharacter_EquipmentAffectsDerived(t *testing.T) {
	c, reg := newTestWarrior(t)

	sword := reg.Item("steel_sword") // attack 25, +2 strength
	if overflow := c.Inventory().Add(sword, 1); overflow != 0 {
		t.Fatalf("Add overflow = %d, want 0", overflow)
	}
	if err := c.EquipFromSlot(0); err != nil {
		t.Fatalf("EquipFromSlot(0) = %v", err)
	}

	// 16 base strength + 2 from the sword, doubled, plus weapon attack.
	if got := c.AttackPower(); got != 61 {
		t.Errorf("AttackPower() = %v, want 61", got)
	}

	total := c.TotalStats()
	if total.Strength != 18 {
		t.Errorf("TotalStats().Strength = %d, want 18", total.Strength)
	}

	if err := c.UnequipSlot(EquipSlotWeapon); err != nil {
		t.Fatalf("UnequipSlot(weapon) = %v", err)
	}
	if got := c.AttackPower(); got != 32 {
		t.Errorf("AttackPower() after unequip = %v, want 32", got)
	}
}

func TestCharacter_UseItemAt(t *testing.T) {
	c, reg := newTestWarrior(t)
	c.Inventory().Add(reg.Item("health_potion"), 2)

	c.ApplyDamage(80)
	if got := c.CurrentHealth(); got != 40 {
		t.Fatalf("CurrentHealth() = %v, want 40", got)
	}

	tpl, err := c.UseItemAt(0)
	if err != nil {
		t.Fatalf("UseItemAt(0) = %v", err)
	}
	if tpl.ID != "health_potion" {
		t.Errorf("consumed %q, want health_potion", tpl.ID)
	}
	if got := c.CurrentHealth(); got != 90 {
		t.Errorf("CurrentHealth() = %v, want 90", got)
	}
	if got := c.Inventory().Count("health_potion"); got != 1 {
		t.Errorf("Count(health_potion) = %d, want 1", got)
	}

	// Dead characters cannot drink.
	c.ApplyDamage(1000)
	if _, err := c.UseItemAt(0); err == nil {
		t.Error("UseItemAt on dead character = nil error")
	}
}

func TestCharacter_Regen(t *testing.T) {
	c, _ := newTestWarrior(t)

	c.ApplyDamage(50)
	c.UseMana(40)
	c.UseStamina(60)

	c.Regen(10)

	// health: 0.1 + 13*0.01 = 0.23/s
	if got := c.CurrentHealth(); !almostEqual(got, 72.3) {
		t.Errorf("CurrentHealth() = %v, want 72.3", got)
	}
	// mana: 1 + 6*0.1 = 1.6/s
	if got := c.CurrentMana(); !almostEqual(got, 61) {
		t.Errorf("CurrentMana() = %v, want 61", got)
	}
	// stamina: flat 5/s
	if got := c.CurrentStamina(); !almostEqual(got, 128) {
		t.Errorf("CurrentStamina() = %v, want 128", got)
	}

	// Dead characters do not regenerate.
	c.ApplyDamage(1000)
	c.Regen(10)
	if got := c.CurrentHealth(); got != 0 {
		t.Errorf("CurrentHealth() = %v, want 0 (no regen while dead)", got)
	}
}

func TestCharacter_UnlockSkillNode(t *testing.T) {
	reg := data.NewTestRegistry()
	c := NewCharacter(1, "Mindy", reg.Class("mage"), reg.Race("human"))
	g := reg.SkillGraph

	if err := c.UnlockSkillNode(g, "strength_training"); err == nil {
		t.Fatal("UnlockSkillNode with no points = nil error")
	}

	c.AddSkillPoints(3)

	strBefore := c.Stats().Strength
	if err := c.UnlockSkillNode(g, "strength_training"); err != nil {
		t.Fatalf("UnlockSkillNode(strength_training) = %v", err)
	}
	if got := c.Stats().Strength; got != strBefore+2 {
		t.Errorf("Strength = %d, want %d", got, strBefore+2)
	}
	if got := c.SkillPoints(); got != 2 {
		t.Errorf("SkillPoints() = %d, want 2", got)
	}

	// Chain up to the ultimate, which teaches an ability.
	if err := c.UnlockSkillNode(g, "brute_force"); err != nil {
		t.Fatalf("UnlockSkillNode(brute_force) = %v", err)
	}
	if c.KnowsAbility("power_strike") {
		t.Fatal("mage should not know power_strike yet")
	}
	if err := c.UnlockSkillNode(g, "war_mastery"); err != nil {
		t.Fatalf("UnlockSkillNode(war_mastery) = %v", err)
	}
	if !c.KnowsAbility("power_strike") {
		t.Error("KnowsAbility(power_strike) = false after unlocking war_mastery")
	}
}

func TestCharacter_Respawn(t *testing.T) {
	c, _ := newTestWarrior(t)

	c.ApplyEffect(StatusEffect{Name: "slow", Kind: EffectSlow, Value: 0.5, Remaining: 10})
	c.ApplyDamage(1000)
	c.MarkDead()

	home := Vec2{X: 5, Y: -3}
	c.Respawn(home)

	if c.IsDead() {
		t.Error("IsDead() = true after respawn")
	}
	if got := c.CurrentHealth(); got != c.MaxHealth() {
		t.Errorf("CurrentHealth() = %v, want full %v", got, c.MaxHealth())
	}
	if got := c.Pos(); got != home {
		t.Errorf("Pos() = %+v, want %+v", got, home)
	}
	if got := len(c.Effects()); got != 0 {
		t.Errorf("len(Effects()) = %d, want 0 after respawn", got)
	}
	if !c.MarkDead() {
		t.Error("MarkDead() = false after respawn, death guard not reset")
	}
}
