package data

import (
	"github.com/skillmine/core/internal/game/loot"
	"github.com/skillmine/core/internal/game/skilltree"
)

// NewTestRegistry builds a small in-memory registry for tests in other
// packages that need game definitions without touching the filesystem.
func NewTestRegistry() *Registry {
	items := map[string]*ItemTemplate{
		"rusty_sword": {
			ID: "rusty_sword", Name: "Rusty Sword", Type: ItemTypeWeapon,
			Rarity: RarityCommon, MaxStack: 1, Value: 5, Attack: 5,
		},
		"steel_sword": {
			ID: "steel_sword", Name: "Steel Sword", Type: ItemTypeWeapon,
			Rarity: RarityRare, MaxStack: 1, Value: 150, Attack: 25,
			StatBonuses: StatBlock{Strength: 2},
		},
		"leather_armor": {
			ID: "leather_armor", Name: "Leather Armor", Type: ItemTypeArmor,
			Rarity: RarityUncommon, MaxStack: 1, Value: 40, Defense: 8,
		},
		"health_potion": {
			ID: "health_potion", Name: "Health Potion", Type: ItemTypeConsumable,
			Rarity: RarityCommon, MaxStack: 20, Value: 25, HealAmount: 50,
		},
		"mana_potion": {
			ID: "mana_potion", Name: "Mana Potion", Type: ItemTypeConsumable,
			Rarity: RarityCommon, MaxStack: 20, Value: 30, ManaRestore: 30,
		},
		"wolf_pelt": {
			ID: "wolf_pelt", Name: "Wolf Pelt", Type: ItemTypeMaterial,
			Rarity: RarityCommon, MaxStack: 50, Value: 5,
		},
	}

	abilities := map[string]*AbilityTemplate{
		"basic_attack": {
			ID: "basic_attack", Name: "Attack", DamageType: DamagePhysical,
			BaseDamage: 10, Cooldown: 0.5, Range: 2.5,
		},
		"power_strike": {
			ID: "power_strike", Name: "Power Strike", DamageType: DamagePhysical,
			BaseDamage: 25, ManaCost: 10, Cooldown: 2.0, Range: 2.5,
		},
		"shield_bash": {
			ID: "shield_bash", Name: "Shield Bash", DamageType: DamagePhysical,
			BaseDamage: 15, ManaCost: 15, Cooldown: 5.0, Range: 2.0,
			Effects: AbilityEffects{Stun: 2.0},
		},
		"battle_cry": {
			ID: "battle_cry", Name: "Battle Cry", DamageType: DamagePhysical,
			ManaCost: 20, Cooldown: 15.0,
			Effects: AbilityEffects{BuffAttack: 1.5, Duration: 10.0},
		},
		"fireball": {
			ID: "fireball", Name: "Fireball", DamageType: DamageFire,
			BaseDamage: 30, ManaCost: 20, Cooldown: 3.0, Range: 15.0,
		},
		"arcane_shield": {
			ID: "arcane_shield", Name: "Arcane Shield", DamageType: DamageMagic,
			ManaCost: 30, Cooldown: 20.0,
			Effects: AbilityEffects{Shield: 50, Duration: 8.0},
		},
		"heal": {
			ID: "heal", Name: "Heal", DamageType: DamageHoly,
			BaseDamage: -40, ManaCost: 25, Cooldown: 3.0, Range: 10.0,
		},
		"purify": {
			ID: "purify", Name: "Purify", DamageType: DamageHoly,
			ManaCost: 15, Cooldown: 8.0, Range: 8.0,
			Effects: AbilityEffects{Cleanse: true},
		},
	}

	classes := map[string]*ClassTemplate{
		"warrior": {
			ID: "warrior", Name: "Warrior",
			BaseStats: StatBlock{Strength: 15, Agility: 10, Intelligence: 5, Vitality: 12},
			Abilities: []string{"power_strike", "shield_bash", "battle_cry"},
		},
		"mage": {
			ID: "mage", Name: "Mage",
			BaseStats: StatBlock{Strength: 5, Agility: 8, Intelligence: 18, Vitality: 8},
			Abilities: []string{"fireball", "arcane_shield", "heal"},
		},
	}

	races := map[string]*RaceTemplate{
		"human": {
			ID: "human", Name: "Human",
			StatBonuses: StatBlock{Strength: 1, Agility: 1, Intelligence: 1, Vitality: 1},
		},
	}

	enemies := map[string]*EnemyTemplate{
		"wolf": {
			Kind: "wolf", Name: "Wild Wolf", MaxHealth: 40, AttackPower: 12,
			Defense: 3, Speed: 6, AggroRange: 15, AttackRange: 2.5,
			AttackCooldown: 1.2, XPReward: 20, GoldMin: 0, GoldMax: 3,
			LootTable: "wolf",
		},
		"slime": {
			Kind: "slime", Name: "Slime", MaxHealth: 30, AttackPower: 5,
			Defense: 2, Speed: 2, AggroRange: 8, AttackRange: 1.5,
			AttackCooldown: 2.0, XPReward: 15, GoldMin: 1, GoldMax: 5,
		},
		"troll_king": {
			Kind: "troll_king", Name: "Troll King", MaxHealth: 400, AttackPower: 35,
			Defense: 20, Speed: 3, AggroRange: 12, AttackRange: 3.5,
			AttackCooldown: 2.5, XPReward: 250, GoldMin: 100, GoldMax: 200,
			LootTable: "troll_king", Abilities: []string{"shield_bash"}, Boss: true,
		},
	}

	lootTables := map[string]loot.Table{
		"wolf": {
			EnemyKind: "wolf", DropChance: 1.0,
			Items: []string{"wolf_pelt"},
		},
		"troll_king": {
			EnemyKind: "troll_king", DropChance: 1.0,
			Items: []string{"steel_sword", "health_potion"},
		},
	}

	quests := map[string]*QuestTemplate{
		"hunt_wolves": {
			ID: "hunt_wolves", Name: "Wolf Hunter", Giver: "Tanner",
			LevelRequirement: 1, Repeatable: true,
			Objectives: []QuestObjective{
				{ID: "kill_wolves", Description: "Kill wolves", Type: ObjectiveKill, Target: "wolf", Count: 3},
			},
			Rewards: QuestReward{XP: 40, Gold: 25, Items: []string{"leather_armor"}},
		},
		"gather_pelts": {
			ID: "gather_pelts", Name: "Pelt Gatherer", Giver: "Tanner",
			LevelRequirement: 1,
			Objectives: []QuestObjective{
				{ID: "collect_pelts", Description: "Collect wolf pelts", Type: ObjectiveCollect, Target: "wolf_pelt", Count: 2},
			},
			Rewards: QuestReward{XP: 30, Gold: 15, SkillPoints: 1},
		},
	}

	pets := map[string]*PetTemplate{
		"wolf": {
			ID: "wolf", Name: "Shadow Wolf", Attack: 10, Defense: 5, Speed: 12,
			Abilities: []string{"bite", "howl"},
		},
	}

	petAbilities := map[string]*PetAbilityTemplate{
		"bite": {ID: "bite", Name: "Bite", Type: PetAbilityCombat, Cooldown: 3.0, Power: 15},
		"howl": {ID: "howl", Name: "Howl", Type: PetAbilityBuff, Cooldown: 30.0, Power: 1.2, UnlockBond: 50},
	}

	spawns := &SpawnConfig{
		MaxEnemies:        20,
		SpawnInterval:     10.0,
		MinPlayerDistance: 15,
		SpawnRadius:       3,
		RespawnDelay:      10,
		Points: []SpawnPoint{
			{Kinds: []string{"wolf"}, X: 30, Y: 30, Count: 3},
			{Kinds: []string{"slime"}, X: -20, Y: 10, Count: 3},
		},
	}

	graph, err := skilltree.NewGraph([]skilltree.Node{
		{ID: "strength_training", Tier: 0, Effect: skilltree.Effect{Stat: StatStrength, Amount: 2}},
		{ID: "iron_constitution", Tier: 0, Effect: skilltree.Effect{Stat: StatVitality, Amount: 2}},
		{ID: "brute_force", Tier: 1, Prereqs: []skilltree.NodeID{"strength_training"},
			Effect: skilltree.Effect{Stat: StatStrength, Amount: 3}},
		{ID: "war_mastery", Tier: 2, Prereqs: []skilltree.NodeID{"brute_force"},
			Effect: skilltree.Effect{AbilityID: "power_strike"}, Ultimate: true},
	})
	if err != nil {
		panic("test registry graph: " + err.Error())
	}

	return &Registry{
		Items:        items,
		Enemies:      enemies,
		Classes:      classes,
		Races:        races,
		Abilities:    abilities,
		LootTables:   lootTables,
		Quests:       quests,
		Pets:         pets,
		PetAbilities: petAbilities,
		Spawns:       spawns,
		SkillGraph:   graph,
	}
}
