package model

import (
	"testing"

	"github.com/skillmine/core/internal/data"
)

func TestNewEnemy(t *testing.T) {
	reg := data.NewTestRegistry()
	wolf := reg.Enemy("wolf")

	e := NewEnemy(7, wolf, Vec2{X: 10, Y: 20}, 2)

	if got := e.ID(); got != 7 {
		t.Errorf("ID() = %d, want 7", got)
	}
	if got := e.Kind(); got != "wolf" {
		t.Errorf("Kind() = %q, want wolf", got)
	}
	if got := e.CurrentHealth(); got != 40 {
		t.Errorf("CurrentHealth() = %v, want 40", got)
	}
	if got := e.Home(); got != (Vec2{X: 10, Y: 20}) {
		t.Errorf("Home() = %+v, want {10 20}", got)
	}
	if got := e.SpawnIndex(); got != 2 {
		t.Errorf("SpawnIndex() = %d, want 2", got)
	}
	if e.IsBoss() {
		t.Error("IsBoss() = true for wolf")
	}
	if !reg.Enemy("troll_king").Boss {
		t.Error("troll_king template not flagged as boss")
	}
}

func TestEnemy_AttackTimer(t *testing.T) {
	reg := data.NewTestRegistry()
	e := NewEnemy(1, reg.Enemy("wolf"), Vec2{}, ManualSpawn)

	if !e.CanAttack() {
		t.Fatal("CanAttack() = false for fresh enemy")
	}

	e.StartAttackCooldown()
	if e.CanAttack() {
		t.Error("CanAttack() = true right after swing")
	}

	e.Update(0.6) // half the 1.2s cooldown
	if e.CanAttack() {
		t.Error("CanAttack() = true mid-cooldown")
	}

	e.Update(0.7)
	if !e.CanAttack() {
		t.Error("CanAttack() = false after cooldown elapsed")
	}
}

func TestEnemy_SlowAffectsSpeed(t *testing.T) {
	reg := data.NewTestRegistry()
	e := NewEnemy(1, reg.Enemy("wolf"), Vec2{}, ManualSpawn)

	if got := e.Speed(); got != 6 {
		t.Errorf("Speed() = %v, want 6", got)
	}

	e.ApplyEffect(StatusEffect{Name: "mire", Kind: EffectSlow, Value: 0.5, Remaining: 3})
	if got := e.Speed(); got != 3 {
		t.Errorf("Speed() = %v under 0.5 slow, want 3", got)
	}

	e.Update(4) // slow expires
	if got := e.Speed(); got != 6 {
		t.Errorf("Speed() = %v after slow expired, want 6", got)
	}
}

func TestEnemy_ManaRegen(t *testing.T) {
	reg := data.NewTestRegistry()
	e := NewEnemy(1, reg.Enemy("troll_king"), Vec2{}, ManualSpawn)

	e.UseMana(50)
	e.Update(10)
	if got := e.CurrentMana(); !almostEqual(got, 70) {
		t.Errorf("CurrentMana() = %v, want 70 (2/s regen)", got)
	}

	// Dead enemies stop regenerating.
	e.ApplyDamage(10_000)
	e.Update(10)
	if got := e.CurrentMana(); !almostEqual(got, 70) {
		t.Errorf("CurrentMana() = %v while dead, want 70", got)
	}
}
