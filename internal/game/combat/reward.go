package combat

import (
	"log/slog"
	"strings"

	"github.com/skillmine/core/internal/model"
)

// Pets accompanying a kill receive this share of the XP award.
const petXPShare = 5 // divisor: 1/5 of the killer's XP

// KillReward is everything one kill granted. Drops lists item ids that
// reached the killer's inventory; LostDrops lists rolled items that did
// not fit.
type KillReward struct {
	XP           int64
	LevelsGained int
	Gold         int64
	Drops        []string
	LostDrops    []string
	PetXP        int
}

// ResolveKill credits a kill exactly once: XP (with level-ups), a gold
// roll, a loot roll, and the pet's XP share when a pet is out. The
// second return is false when the victim's death was already credited,
// in which case nothing is awarded.
//
// XP and gold are scaled by the engine's rates. The gold roll is
// uniform over [GoldMin, GoldMax] inclusive. pet may be nil.
func (e *Engine) ResolveKill(killer *model.Character, victim *model.Enemy, pet *model.Pet) (KillReward, bool) {
	if !victim.MarkDead() {
		return KillReward{}, false
	}
	tpl := victim.Template()
	var reward KillReward

	reward.XP = int64(float64(tpl.XPReward) * e.rates.XPMultiplier)
	oldLevel := killer.Level()
	reward.LevelsGained = killer.GainXP(reward.XP)
	if reward.LevelsGained > 0 {
		slog.Info("character leveled up",
			"name", killer.Name(),
			"oldLevel", oldLevel,
			"newLevel", killer.Level(),
			"xp", killer.XP())
	}

	roll := tpl.GoldMin + e.rng.Int64N(tpl.GoldMax-tpl.GoldMin+1)
	reward.Gold = int64(float64(roll) * e.rates.GoldMultiplier)
	killer.Inventory().AddGold(reward.Gold)

	e.log.Addf("Defeated %s! +%d XP, +%d gold", victim.Name(), reward.XP, reward.Gold)

	if tpl.LootTable != "" {
		ev := e.resolver.Resolve(tpl.LootTable)
		for _, itemID := range ev.AwardedItems {
			itemTpl := e.reg.Item(itemID)
			if itemTpl == nil {
				continue
			}
			if overflow := killer.Inventory().Add(itemTpl, 1); overflow > 0 {
				reward.LostDrops = append(reward.LostDrops, itemID)
				continue
			}
			reward.Drops = append(reward.Drops, itemID)
		}
		if len(reward.Drops) > 0 {
			e.log.Addf("Dropped: %s", strings.Join(reward.Drops, ", "))
		}
	}

	if pet != nil {
		reward.PetXP = int(reward.XP / petXPShare)
		if reward.PetXP > 0 {
			pet.GainExp(reward.PetXP)
		}
	}

	return reward, true
}
