package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/skillmine/core/internal/ai"
	"github.com/skillmine/core/internal/config"
	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/db"
	"github.com/skillmine/core/internal/game/combat"
	"github.com/skillmine/core/internal/game/quest"
	"github.com/skillmine/core/internal/game/skilltree"
	"github.com/skillmine/core/internal/model"
	"github.com/skillmine/core/internal/spawn"
	"github.com/skillmine/core/internal/world"
)

// Hero behavior tuning. The hero hunts whatever the world offers within
// aggro range, swings in melee range, and walks home after dying.
const (
	heroMoveSpeed   = 6.0  // units per second before slows
	heroAttackRange = 2.5  // melee reach, matches ability ranges in data
	heroAggroRange  = 60.0 // how far the hero roams for a target
	heroRespawnTime = 5.0  // seconds spent dead
	petCareInterval = 30.0 // seconds between feeding the companion

	// One cast attempt per castDie swings keeps mana from draining in
	// the first minute of a run.
	castDie = 4

	finalSaveTimeout = 10 * time.Second
)

// simulation drives a scripted hero through the live world. In a seeded
// run it also owns time: every tick it steps spawns, AI and entities on
// a fixed timestep, then lets the hero fight, quest and spend what it
// earned. The same seed and tick count replay the same run.
type simulation struct {
	cfg     config.Game
	reg     *data.Registry
	world   *world.World
	engine  *combat.Engine
	ai      *ai.TickManager
	spawns  *spawn.Manager
	persist *db.PersistenceService
	rng     *rand.Rand

	hero      *model.Character
	questLog  *quest.Log
	pet       *model.Pet
	profileID int64 // stamped once in setupHero, read-only afterwards

	// hero timers, touched only by the tick loop
	dead         bool
	respawnTimer float64
	petCareTimer float64

	// run counters for the final summary
	ticks      int
	kills      int
	deaths     int
	casts      int
	questsDone int
	nodesTaken int
}

func newSimulation(
	cfg config.Game,
	reg *data.Registry,
	w *world.World,
	engine *combat.Engine,
	aiMgr *ai.TickManager,
	spawns *spawn.Manager,
	persist *db.PersistenceService,
	rng *rand.Rand,
) *simulation {
	return &simulation{
		cfg:     cfg,
		reg:     reg,
		world:   w,
		engine:  engine,
		ai:      aiMgr,
		spawns:  spawns,
		persist: persist,
		rng:     rng,
	}
}

// setupHero loads the configured character from the database or creates
// a fresh one, and places it in the world. A fresh hero is persisted
// immediately so later saves always update an existing row.
func (s *simulation) setupHero(ctx context.Context) error {
	name := s.cfg.Sim.CharacterName

	if s.persist != nil {
		prof, err := s.persist.FindProfile(ctx, name)
		if err != nil {
			return fmt.Errorf("loading profile %q: %w", name, err)
		}
		if prof != nil {
			if err := s.restoreHero(prof); err != nil {
				return err
			}
			s.world.AddCharacter(s.hero)
			return nil
		}
	}

	if err := s.createHero(ctx); err != nil {
		return err
	}
	s.world.AddCharacter(s.hero)
	return nil
}

func (s *simulation) createHero(ctx context.Context) error {
	class := s.reg.Class(s.cfg.Sim.Class)
	if class == nil {
		return fmt.Errorf("unknown class %q", s.cfg.Sim.Class)
	}
	race := s.reg.Race(s.cfg.Sim.Race)
	if race == nil {
		return fmt.Errorf("unknown race %q", s.cfg.Sim.Race)
	}

	s.hero = model.NewCharacter(s.world.IDs().NextCharacterID(), s.cfg.Sim.CharacterName, class, race)
	s.questLog = quest.NewLog(s.reg.Quests)

	// The hero sets out with a companion when one is defined.
	if tpl := starterPet(s.reg); tpl != nil {
		s.pet = model.NewPet(tpl, tpl.Name)
	}

	slog.Info("character created",
		"name", s.hero.Name(),
		"class", s.cfg.Sim.Class,
		"race", s.cfg.Sim.Race)

	if s.persist == nil {
		return nil
	}
	prof := s.buildProfile()
	if err := s.persist.CreateProfile(ctx, &prof); err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	s.profileID = prof.CharacterID
	return nil
}

func (s *simulation) restoreHero(prof *db.Profile) error {
	hero, err := model.RestoreCharacter(s.world.IDs().NextCharacterID(), prof.Character, s.reg)
	if err != nil {
		return fmt.Errorf("restoring character %q: %w", prof.Character.Name, err)
	}
	s.hero = hero
	s.questLog = quest.RestoreLog(s.reg.Quests, prof.Quests)

	if prof.Pet != nil {
		pet, err := model.RestorePet(*prof.Pet, s.reg)
		if err != nil {
			return fmt.Errorf("restoring pet: %w", err)
		}
		s.pet = pet
	}

	s.profileID = prof.CharacterID
	slog.Info("profile restored",
		"name", s.hero.Name(),
		"level", s.hero.Level(),
		"character_id", prof.CharacterID)
	return nil
}

// starterPet picks the first pet template in id order, nil when no pets
// are defined.
func starterPet(reg *data.Registry) *data.PetTemplate {
	ids := make([]string, 0, len(reg.Pets))
	for id := range reg.Pets {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	slices.Sort(ids)
	return reg.Pets[ids[0]]
}

// Run executes the configured number of ticks, paced by the tick
// interval, then saves and logs a run summary. An early cancellation
// still saves and summarizes whatever ran.
func (s *simulation) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Sim.TickInterval)
	defer ticker.Stop()

	dt := s.cfg.Sim.TickInterval.Seconds()
	for tick := 0; tick < s.cfg.Sim.Ticks; tick++ {
		select {
		case <-ctx.Done():
			slog.Info("simulation interrupted", "tick", tick)
			return s.finish()
		case <-ticker.C:
			s.step(dt)
		}
	}
	return s.finish()
}

// step advances the world by dt seconds: spawns first so respawn timers
// and corpse sweeps run, then enemy AI, then per-entity upkeep, and the
// hero acts last on the fresh state.
func (s *simulation) step(dt float64) {
	s.ticks++

	s.spawns.Update(dt)
	s.ai.Step(dt)

	for _, e := range s.world.Enemies() {
		e.Update(dt)
	}
	s.hero.Update(dt)
	if s.pet != nil {
		s.pet.Update(dt)
	}

	s.heroAct(dt)
}

func (s *simulation) heroAct(dt float64) {
	if s.hero.IsDead() {
		if !s.dead {
			s.dead = true
			s.deaths++
			s.respawnTimer = heroRespawnTime
			slog.Info("hero died", "name", s.hero.Name(), "deaths", s.deaths)
		}
		s.respawnTimer -= dt
		if s.respawnTimer <= 0 {
			s.hero.Respawn(model.Vec2{})
			s.dead = false
			slog.Info("hero respawned", "name", s.hero.Name())
		}
		return
	}

	s.tendPet(dt)
	s.manageQuests()
	s.spendPoints()
	s.hunt(dt)
}

func (s *simulation) tendPet(dt float64) {
	if s.pet == nil {
		return
	}
	s.petCareTimer -= dt
	if s.petCareTimer > 0 {
		return
	}
	s.pet.Feed()
	s.pet.Play()
	s.pet.Interact()
	s.petCareTimer = petCareInterval
}

// manageQuests turns in finished quests and then accepts whatever just
// became available, so an unlock from a turn-in is picked up in the
// same pass.
func (s *simulation) manageQuests() {
	for _, v := range s.questLog.Active() {
		if !v.Complete {
			continue
		}
		reward, err := s.questLog.TurnIn(v.Template.ID)
		if err != nil {
			continue
		}
		s.questsDone++
		s.applyReward(v.Template.ID, reward)
	}

	for _, tpl := range s.questLog.Available(s.hero.Level()) {
		if err := s.questLog.Accept(tpl.ID, s.hero.Level()); err == nil {
			slog.Info("quest accepted", "quest", tpl.ID, "giver", tpl.Giver)
		}
	}
}

func (s *simulation) applyReward(questID string, r data.QuestReward) {
	if r.XP > 0 {
		s.hero.GainXP(r.XP)
	}
	if r.Gold > 0 {
		s.hero.Inventory().AddGold(r.Gold)
	}
	for _, itemID := range r.Items {
		tpl := s.reg.Item(itemID)
		if tpl == nil {
			continue
		}
		if overflow := s.hero.Inventory().Add(tpl, 1); overflow > 0 {
			slog.Info("reward item dropped, inventory full", "item", itemID)
		}
	}
	if r.SkillPoints > 0 {
		s.hero.AddSkillPoints(r.SkillPoints)
	}
	if r.UnlockAbility != "" && s.hero.LearnAbility(r.UnlockAbility) {
		slog.Info("ability learned", "ability", r.UnlockAbility)
	}

	slog.Info("quest turned in",
		"quest", questID,
		"xp", r.XP,
		"gold", r.Gold,
		"items", len(r.Items))
}

// spendPoints sinks earned points back into the build: skill points go
// into random eligible graph nodes, stat points mostly into strength
// with the rest into vitality.
func (s *simulation) spendPoints() {
	for {
		eligible := skilltree.EligibleNodes(s.reg.SkillGraph, s.hero.SkillState())
		if len(eligible) == 0 {
			break
		}
		id := eligible[s.rng.IntN(len(eligible))]
		if err := s.hero.UnlockSkillNode(s.reg.SkillGraph, id); err != nil {
			break
		}
		s.nodesTaken++
		slog.Info("skill node unlocked",
			"node", id,
			"points_left", s.hero.SkillPoints())
	}

	for s.hero.StatPoints() > 0 {
		stat := data.StatStrength
		if s.rng.IntN(3) == 0 {
			stat = data.StatVitality
		}
		if err := s.hero.AllocateStatPoint(stat); err != nil {
			break
		}
	}
}

func (s *simulation) hunt(dt float64) {
	target := s.world.NearestEnemy(s.hero.Pos(), heroAggroRange)
	if target == nil {
		// Nothing in range: drift back toward the spawn area where the
		// points cluster.
		step := heroMoveSpeed * s.hero.SlowFactor() * dt
		s.hero.SetPos(s.hero.Pos().MoveToward(model.Vec2{}, step))
		return
	}

	if s.hero.Pos().Distance(target.Pos()) > heroAttackRange {
		step := heroMoveSpeed * s.hero.SlowFactor() * dt
		s.hero.SetPos(s.hero.Pos().MoveToward(target.Pos(), step))
		return
	}

	s.engage(target)
}

func (s *simulation) engage(target *model.Enemy) {
	outcome, err := s.attackOnce(target)
	if err != nil {
		if ai.IsDebugEnabled() {
			slog.Debug("hero attack failed", "target", target.Name(), "err", err)
		}
		return
	}

	s.pokeAI(target)

	if outcome.TargetKilled {
		s.creditKill(target)
	}
}

// attackOnce occasionally casts a known ability and otherwise lands a
// basic attack. Cast failures (cooldown, mana) fall back to the swing.
func (s *simulation) attackOnce(target *model.Enemy) (combat.Outcome, error) {
	if abilities := s.hero.KnownAbilities(); len(abilities) > 0 && s.rng.IntN(castDie) == 0 {
		id := abilities[s.rng.IntN(len(abilities))]
		if out, err := s.engine.UseAbility(s.hero, target, id); err == nil {
			s.casts++
			return out, nil
		}
	}
	return s.engine.BasicAttack(s.hero, target)
}

// pokeAI tells the victim's controller who hit it, so idle and
// patrolling enemies turn on the hero instead of shrugging the hit off.
func (s *simulation) pokeAI(target *model.Enemy) {
	ctrl, err := s.ai.Controller(target.ID())
	if err != nil {
		return
	}
	if n, ok := ctrl.(interface{ NotifyDamage(*model.Character) }); ok {
		n.NotifyDamage(s.hero)
	}
}

func (s *simulation) creditKill(victim *model.Enemy) {
	reward, ok := s.engine.ResolveKill(s.hero, victim, s.pet)
	if !ok {
		return
	}
	s.kills++

	s.questLog.OnKill(victim.Kind())
	for _, itemID := range reward.Drops {
		s.questLog.OnCollect(itemID, 1)
	}
	if len(reward.LostDrops) > 0 {
		slog.Info("drops left on the ground, inventory full",
			"enemy", victim.Kind(),
			"items", reward.LostDrops)
	}
}

// RunAutosave persists the profile every autosave interval until the
// context is canceled. Failures are logged and retried next interval.
func (s *simulation) RunAutosave(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Save.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.save(ctx); err != nil {
				slog.Error("autosave failed", "err", err)
			}
		}
	}
}

func (s *simulation) buildProfile() db.Profile {
	prof := db.Profile{
		CharacterID: s.profileID,
		Account:     localAccount,
		Character:   s.hero.Snapshot(),
		Quests:      s.questLog.Snapshot(),
	}
	if s.pet != nil {
		snap := s.pet.Snapshot()
		prof.Pet = &snap
	}
	return prof
}

func (s *simulation) save(ctx context.Context) error {
	prof := s.buildProfile()
	return s.persist.SaveProfile(ctx, &prof)
}

// finish logs the run summary and writes the final save. The run
// context may already be canceled on shutdown, so the save gets its own
// deadline.
func (s *simulation) finish() error {
	s.summary()
	if s.persist == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
	defer cancel()
	if err := s.save(ctx); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	slog.Info("final save written", "character_id", s.profileID)
	return nil
}

func (s *simulation) summary() {
	slog.Info("simulation complete",
		"ticks", s.ticks,
		"hero", s.hero.Name(),
		"level", s.hero.Level(),
		"xp", s.hero.XP(),
		"gold", s.hero.Inventory().Gold(),
		"kills", s.kills,
		"deaths", s.deaths,
		"ability_casts", s.casts,
		"quests_turned_in", s.questsDone,
		"nodes_unlocked", s.nodesTaken,
		"abilities_known", len(s.hero.KnownAbilities()),
		"enemies_alive", s.world.EnemyCount())

	if s.pet != nil {
		slog.Info("companion report",
			"name", s.pet.Nickname(),
			"level", s.pet.Level(),
			"bond", s.pet.Bond())
	}
	if last := s.engine.Log().Last(); last != "" {
		slog.Info("last combat entry", "entry", last)
	}
}
