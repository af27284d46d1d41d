package integration

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skillmine/core/internal/ai"
	"github.com/skillmine/core/internal/config"
	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/game/combat"
	"github.com/skillmine/core/internal/game/loot"
	"github.com/skillmine/core/internal/model"
	"github.com/skillmine/core/internal/spawn"
	"github.com/skillmine/core/internal/world"
)

var schemaCounter atomic.Int64

// acquireSchema carves a private schema out of the shared database and
// returns a DSN scoped to it. The schema is dropped on cleanup, so
// suites never see each other's tables.
func acquireSchema(t *testing.T) string {
	t.Helper()

	if sharedPGBaseDSN == "" {
		t.Skip("database container not started in -short mode")
	}

	name := fmt.Sprintf("test_%d", schemaCounter.Add(1))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, sharedPGBaseDSN)
	if err != nil {
		t.Fatalf("connecting for schema setup: %v", err)
	}
	if _, err := conn.Exec(ctx, "CREATE SCHEMA "+name); err != nil {
		conn.Close(ctx)
		t.Fatalf("creating schema %s: %v", name, err)
	}
	conn.Close(ctx)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, sharedPGBaseDSN)
		if err != nil {
			t.Logf("schema cleanup: %v", err)
			return
		}
		defer conn.Close(ctx)
		if _, err := conn.Exec(ctx, "DROP SCHEMA "+name+" CASCADE"); err != nil {
			t.Logf("dropping schema %s: %v", name, err)
		}
	})

	// Unknown URL query parameters are forwarded to the server as
	// runtime parameters, so search_path reaches both pgxpool and the
	// stdlib driver the migrator uses.
	sep := "?"
	if strings.Contains(sharedPGBaseDSN, "?") {
		sep = "&"
	}
	return sharedPGBaseDSN + sep + "search_path=" + name
}

// battlefield bundles a fully wired game core without a database. The
// managers are stepped by hand at a fixed dt, so scenarios replay
// identically for a given seed.
type battlefield struct {
	reg    *data.Registry
	world  *world.World
	engine *combat.Engine
	aiMgr  *ai.TickManager
	spawns *spawn.Manager
}

func newBattlefield(tb testing.TB, seed uint64) *battlefield {
	tb.Helper()

	reg := data.NewTestRegistry()
	w := world.New()

	lootRng := rand.New(rand.NewPCG(seed, 3))
	resolver := loot.NewResolver(reg.LootTables, lootRng)
	engine := combat.NewEngine(reg, resolver, config.DefaultRates(), lootRng)

	aiMgr := ai.NewTickManager(100 * time.Millisecond)
	aiRng := rand.New(rand.NewPCG(seed, 2))

	attack := func(enemy *model.Enemy, target *model.Character) {
		_, _ = engine.BasicAttack(enemy, target)
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

	spawnRng := rand.New(rand.NewPCG(seed, 1))
	spawns := spawn.NewManager(reg, w, aiMgr, factory, spawnRng)

	return &battlefield{
		reg:    reg,
		world:  w,
		engine: engine,
		aiMgr:  aiMgr,
		spawns: spawns,
	}
}

// newHero drops a fresh level 1 warrior into the world at pos.
func (b *battlefield) newHero(tb testing.TB, pos model.Vec2) *model.Character {
	tb.Helper()

	class := b.reg.Class("warrior")
	race := b.reg.Race("human")
	if class == nil || race == nil {
		tb.Fatalf("test registry is missing the warrior/human templates")
	}

	hero := model.NewCharacter(b.world.IDs().NextCharacterID(), "Tester", class, race)
	hero.SetPos(pos)
	b.world.AddCharacter(hero)
	return hero
}
