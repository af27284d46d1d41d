package combat

import (
	"math"
	"testing"

	"github.com/skillmine/core/internal/data"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefenseFactor(t *testing.T) {
	tests := []struct {
		name    string
		defense float64
		want    float64
	}{
		{"no defense lets everything through", 0, 1.0},
		{"soft cap halves damage", 50, 0.5},
		{"light armor", 3, 50.0 / 53.0},
		{"heavy armor keeps diminishing", 200, 0.2},
		{"negative treated as none", -10, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefenseFactor(tt.defense); !almostEqual(got, tt.want) {
				t.Errorf("DefenseFactor(%v) = %v, want %v", tt.defense, got, tt.want)
			}
		})
	}
}

func TestAbilityDamage(t *testing.T) {
	physical := &data.AbilityTemplate{
		ID: "power_strike", DamageType: data.DamagePhysical, BaseDamage: 25,
	}
	if got := AbilityDamage(physical, 32, 18); !almostEqual(got, 41) {
		t.Errorf("physical AbilityDamage = %v, want 41 (25 + 32*0.5)", got)
	}

	fire := &data.AbilityTemplate{
		ID: "fireball", DamageType: data.DamageFire, BaseDamage: 30,
	}
	if got := AbilityDamage(fire, 12, 57); !almostEqual(got, 58.5) {
		t.Errorf("fire AbilityDamage = %v, want 58.5 (30 + 57*0.5)", got)
	}
}

func TestHealAmount(t *testing.T) {
	heal := &data.AbilityTemplate{
		ID: "heal", DamageType: data.DamageHoly, BaseDamage: -40,
	}
	if got := HealAmount(heal, 57); !almostEqual(got, 57.1) {
		t.Errorf("HealAmount = %v, want 57.1 (40 + 57*0.3)", got)
	}
}

func TestMitigate(t *testing.T) {
	if got := Mitigate(41, 3, 1.0); !almostEqual(got, 41*50.0/53.0) {
		t.Errorf("Mitigate(41, 3, 1.0) = %v, want %v", got, 41*50.0/53.0)
	}

	// A defense buff multiplies defense before the soft-cap curve.
	if got := Mitigate(10, 50, 1.5); !almostEqual(got, 4.0) {
		t.Errorf("Mitigate(10, 50, 1.5) = %v, want 4.0", got)
	}
}
