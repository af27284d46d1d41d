package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDataDir = "../../data"

// TestLoad_RealData loads the shipped data directory end to end.
func TestLoad_RealData(t *testing.T) {
	reg, err := Load(testDataDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(reg.Items) < 20 {
		t.Errorf("items: got %d, want >= 20", len(reg.Items))
	}
	if len(reg.Enemies) != 6 {
		t.Errorf("enemies: got %d, want 6", len(reg.Enemies))
	}
	if len(reg.Classes) != 4 {
		t.Errorf("classes: got %d, want 4", len(reg.Classes))
	}
	if len(reg.Races) != 4 {
		t.Errorf("races: got %d, want 4", len(reg.Races))
	}
	if len(reg.Abilities) < 13 {
		t.Errorf("abilities: got %d, want >= 13", len(reg.Abilities))
	}
	if len(reg.Quests) != 6 {
		t.Errorf("quests: got %d, want 6", len(reg.Quests))
	}
	if len(reg.Pets) != 3 {
		t.Errorf("pets: got %d, want 3", len(reg.Pets))
	}
	if reg.SkillGraph.Len() != 12 {
		t.Errorf("skill graph nodes: got %d, want 12", reg.SkillGraph.Len())
	}
}

// TestLoad_KnownItem checks exact fields of a known item.
func TestLoad_KnownItem(t *testing.T) {
	reg, err := Load(testDataDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	potion := reg.Item("health_potion")
	if potion == nil {
		t.Fatal("health_potion not found")
	}
	if potion.Name != "Health Potion" {
		t.Errorf("name: got %q, want %q", potion.Name, "Health Potion")
	}
	if potion.HealAmount != 50 {
		t.Errorf("heal_amount: got %v, want 50", potion.HealAmount)
	}
	if potion.MaxStack != 20 {
		t.Errorf("max_stack: got %d, want 20", potion.MaxStack)
	}
	if !potion.IsConsumable() || !potion.IsStackable() {
		t.Error("health_potion should be a stackable consumable")
	}

	blade := reg.Item("flame_blade")
	if blade == nil {
		t.Fatal("flame_blade not found")
	}
	if blade.Attack != 35 {
		t.Errorf("attack: got %d, want 35", blade.Attack)
	}
	if blade.StatBonuses.Strength != 3 || blade.StatBonuses.Intelligence != 2 {
		t.Errorf("stat bonuses: got %+v", blade.StatBonuses)
	}
	if !blade.IsEquipment() {
		t.Error("flame_blade should be equipment")
	}
}

// TestLoad_WarriorClass checks the warrior base stats and kit.
func TestLoad_WarriorClass(t *testing.T) {
	reg, err := Load(testDataDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	w := reg.Class("warrior")
	if w == nil {
		t.Fatal("warrior class not found")
	}
	want := StatBlock{Strength: 15, Agility: 10, Intelligence: 5, Vitality: 12}
	if w.BaseStats != want {
		t.Errorf("base stats: got %+v, want %+v", w.BaseStats, want)
	}
	if len(w.Abilities) != 3 || w.Abilities[0] != "power_strike" {
		t.Errorf("abilities: got %v", w.Abilities)
	}

	orc := reg.Race("orc")
	if orc == nil {
		t.Fatal("orc race not found")
	}
	if orc.StatBonuses.Intelligence != -1 {
		t.Errorf("orc intelligence bonus: got %d, want -1", orc.StatBonuses.Intelligence)
	}
}

// TestLoad_BossTemplate checks the troll king is flagged and armed.
func TestLoad_BossTemplate(t *testing.T) {
	reg, err := Load(testDataDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	boss := reg.Enemy("troll_king")
	if boss == nil {
		t.Fatal("troll_king not found")
	}
	if !boss.Boss {
		t.Error("troll_king should be flagged as boss")
	}
	if len(boss.Abilities) == 0 {
		t.Error("troll_king should have abilities")
	}
	tbl, ok := reg.LootTables[boss.LootTable]
	if !ok {
		t.Fatalf("boss loot table %q not found", boss.LootTable)
	}
	if tbl.DropChance != 1.0 {
		t.Errorf("boss drop chance: got %v, want 1.0", tbl.DropChance)
	}

	troll := reg.Enemy("troll")
	if troll == nil {
		t.Fatal("troll not found")
	}
	if troll.Boss {
		t.Error("regular troll should not be a boss")
	}
	if troll.MaxHealth != 150 || troll.AttackPower != 25 {
		t.Errorf("troll stats: hp=%v atk=%v", troll.MaxHealth, troll.AttackPower)
	}
}

// TestLoad_SkillGraphCapstone checks the shipped graph tops out in an ultimate.
func TestLoad_SkillGraphCapstone(t *testing.T) {
	reg, err := Load(testDataDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	g := reg.SkillGraph
	if g.MaxTier() != 3 {
		t.Fatalf("max tier: got %d, want 3", g.MaxTier())
	}

	var ultimates int
	for _, n := range g.Nodes() {
		if n.Ultimate {
			ultimates++
			if n.Tier != g.MaxTier() {
				t.Errorf("ultimate %s on tier %d, want %d", n.ID, n.Tier, g.MaxTier())
			}
		}
	}
	if ultimates != 1 {
		t.Errorf("ultimates: got %d, want 1", ultimates)
	}
}

// TestLoad_MissingDir fails cleanly when the directory does not exist.
func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("testdata/does-not-exist"); err == nil {
		t.Fatal("expected error for missing data dir")
	}
}

// TestLoad_BrokenReference rejects a loot table naming an unknown item.
func TestLoad_BrokenReference(t *testing.T) {
	dir := copyDataDir(t)
	overwrite(t, dir, "loot_tables.yaml", `
tables:
  - enemy_kind: slime
    drop_chance: 0.5
    items: [no_such_item]
  - enemy_kind: goblin
    drop_chance: 0.35
    items: [goblin_ear]
  - enemy_kind: wolf
    drop_chance: 0.5
    items: [wolf_pelt]
  - enemy_kind: skeleton
    drop_chance: 0.65
    items: [bone]
  - enemy_kind: troll
    drop_chance: 0.55
    items: [troll_blood]
  - enemy_kind: troll_king
    drop_chance: 1.0
    items: [flame_blade]
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown loot item")
	}
	if !strings.Contains(err.Error(), "no_such_item") {
		t.Errorf("error should name the missing item: %v", err)
	}
}

// TestLoad_DuplicateEnemy rejects duplicate enemy kinds.
func TestLoad_DuplicateEnemy(t *testing.T) {
	dir := copyDataDir(t)
	overwrite(t, dir, "enemies.yaml", `
enemies:
  - kind: slime
    name: Slime
    max_health: 30
    attack_cooldown: 2.0
  - kind: slime
    name: Slime Again
    max_health: 30
    attack_cooldown: 2.0
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for duplicate enemy kind")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate: %v", err)
	}
}

// copyDataDir clones the shipped data dir into a temp dir so a test can
// corrupt single files.
func copyDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(testDataDir)
	if err != nil {
		t.Fatalf("reading data dir: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(testDataDir, e.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), raw, 0o644); err != nil {
			t.Fatalf("writing %s: %v", e.Name(), err)
		}
	}
	return dir
}

func overwrite(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("overwriting %s: %v", name, err)
	}
}
