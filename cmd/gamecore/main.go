package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/skillmine/core/internal/ai"
	"github.com/skillmine/core/internal/config"
	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/db"
	"github.com/skillmine/core/internal/game/combat"
	"github.com/skillmine/core/internal/game/loot"
	"github.com/skillmine/core/internal/game/skilltree"
	"github.com/skillmine/core/internal/model"
	"github.com/skillmine/core/internal/spawn"
	"github.com/skillmine/core/internal/world"
)

const DefaultConfigPath = "config/gamecore.yaml"

// Each randomized subsystem draws from its own PCG stream off the shared
// seed, so an extra roll in one subsystem never shifts another's sequence.
const (
	rngStreamSim uint64 = iota
	rngStreamSpawn
	rngStreamAI
	rngStreamLoot
)

// Saved profiles hang off one fixed local account. The game is offline;
// the account exists only to satisfy the schema and is never authenticated.
const (
	localAccount         = "local"
	localAccountPassword = "offline"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := DefaultConfigPath
	if p := os.Getenv("SKILLMINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("skillmine core starting",
		"log_level", cfg.LogLevel,
		"data_dir", cfg.DataDir,
		"save_enabled", cfg.Save.Enabled,
		"seed", cfg.Sim.Seed)

	reg, err := data.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	if cfg.SkillGraph.Generated {
		g, err := skilltree.Generate(cfg.SkillGraph.Seed, cfg.SkillGraph.NodeCount, cfg.SkillGraph.Tiers)
		if err != nil {
			return fmt.Errorf("generating skill graph: %w", err)
		}
		reg.SkillGraph = g
		slog.Info("generated skill graph",
			"seed", cfg.SkillGraph.Seed,
			"nodes", g.Len(),
			"tiers", g.MaxTier()+1)
	}

	if cfg.Rates.DropChanceMultiplier != 1 {
		reg.LootTables = loot.ScaleChances(reg.LootTables, cfg.Rates.DropChanceMultiplier)
		slog.Info("drop chances scaled", "multiplier", cfg.Rates.DropChanceMultiplier)
	}

	// Connect to database when persistence is on
	var persist *db.PersistenceService
	if cfg.Save.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		if _, err := database.GetOrCreateAccount(ctx, localAccount, localAccountPassword); err != nil {
			return fmt.Errorf("preparing local account: %w", err)
		}
		persist = db.NewPersistenceService(database.Pool())
	}

	w := world.New()

	// The combat engine and the loot resolver share one stream: drop,
	// crit and gold rolls all belong to the same kill pipeline.
	lootRng := rand.New(rand.NewPCG(cfg.Sim.Seed, rngStreamLoot))
	resolver := loot.NewResolver(reg.LootTables, lootRng)
	engine := combat.NewEngine(reg, resolver, cfg.Rates, lootRng)

	aiMgr := ai.NewTickManager(cfg.Sim.TickInterval)
	aiRng := rand.New(rand.NewPCG(cfg.Sim.Seed, rngStreamAI))

	attack := func(enemy *model.Enemy, target *model.Character) {
		if _, err := engine.BasicAttack(enemy, target); err != nil && ai.IsDebugEnabled() {
			slog.Debug("enemy attack failed", "enemy", enemy.Name(), "err", err)
		}
	}
	cast := func(enemy *model.Enemy, target *model.Character, abilityID string) error {
		_, err := engine.UseAbility(enemy, target, abilityID)
		return err
	}
	factory := func(e *model.Enemy) ai.Controller {
		ctrl := ai.NewEnemyAI(e, aiRng, attack, w.NearestCharacter)
		ctrl.SetCastFunc(cast)
		return ctrl
	}

	spawnRng := rand.New(rand.NewPCG(cfg.Sim.Seed, rngStreamSpawn))
	spawnMgr := spawn.NewManager(reg, w, aiMgr, factory, spawnRng)
	if err := spawnMgr.PopulateAll(); err != nil {
		return fmt.Errorf("populating spawn points: %w", err)
	}

	simRng := rand.New(rand.NewPCG(cfg.Sim.Seed, rngStreamSim))
	sim := newSimulation(cfg, reg, w, engine, aiMgr, spawnMgr, persist, simRng)
	if err := sim.setupHero(ctx); err != nil {
		return fmt.Errorf("setting up hero: %w", err)
	}

	// A finished simulation cancels runCtx so the autosave loop winds
	// down with it instead of holding the group open.
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Sim.Ticks > 0 {
		// Scripted run: the simulation owns time and steps the spawn and
		// AI managers itself, so a fixed seed replays the same run.
		g.Go(func() error {
			defer stopRun()
			slog.Info("starting simulation",
				"ticks", cfg.Sim.Ticks,
				"tick_interval", cfg.Sim.TickInterval)
			if err := sim.Run(gctx); err != nil {
				return fmt.Errorf("simulation: %w", err)
			}
			return nil
		})
	} else {
		// Free-running world: managers tick on the wall clock until a
		// signal arrives.
		g.Go(func() error {
			slog.Info("starting AI tick manager", "interval", cfg.Sim.TickInterval)
			if err := aiMgr.Start(gctx); err != nil {
				return fmt.Errorf("ai tick manager: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			slog.Info("starting spawn manager", "points", spawnMgr.PointCount())
			if err := spawnMgr.Run(gctx); err != nil {
				return fmt.Errorf("spawn manager: %w", err)
			}
			return nil
		})
	}

	if persist != nil {
		g.Go(func() error {
			slog.Info("starting autosave loop", "interval", cfg.Save.AutosaveInterval)
			if err := sim.RunAutosave(gctx); err != nil {
				return fmt.Errorf("autosave: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
