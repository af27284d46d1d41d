// Package spawn populates the world from configured spawn points and
// brings enemies back after they die.
package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/skillmine/core/internal/ai"
	"github.com/skillmine/core/internal/data"
	"github.com/skillmine/core/internal/model"
	"github.com/skillmine/core/internal/world"
)

// ControllerFactory builds the AI controller for a freshly spawned
// enemy. The manager registers it under the enemy's id.
type ControllerFactory func(*model.Enemy) ai.Controller

// point tracks one spawn anchor and how many of its enemies live.
type point struct {
	pos      model.Vec2
	kinds    []string
	maxCount int
	live     int
}

// Manager owns the spawn points. Update advances it by simulated
// seconds: corpses are reaped back to their points, due respawn tasks
// refill, and every spawn_interval a sweep tops up points that are
// below capacity and far enough from players. Run drives Update from a
// wall-clock ticker for live mode.
type Manager struct {
	reg       *data.Registry
	world     *world.World
	aiManager *ai.TickManager
	build     ControllerFactory

	maxEnemies    int
	interval      float64
	minPlayerDist float64
	radius        float64
	respawnDelay  float64
	respawnJitter float64

	stopCh chan struct{}

	mu     sync.Mutex
	rng    *rand.Rand
	timer  float64
	points []point
	queue  *RespawnQueue
}

// NewManager wires a spawner over the registry's spawn config. The rng
// drives kind choice, placement scatter and respawn jitter.
func NewManager(reg *data.Registry, w *world.World, aiManager *ai.TickManager, build ControllerFactory, rng *rand.Rand) *Manager {
	cfg := reg.Spawns
	points := make([]point, len(cfg.Points))
	for i, p := range cfg.Points {
		points[i] = point{
			pos:      model.Vec2{X: p.X, Y: p.Y},
			kinds:    slices.Clone(p.Kinds),
			maxCount: p.Count,
		}
	}

	return &Manager{
		reg:           reg,
		world:         w,
		aiManager:     aiManager,
		build:         build,
		maxEnemies:    cfg.MaxEnemies,
		interval:      cfg.SpawnInterval,
		minPlayerDist: cfg.MinPlayerDistance,
		radius:        cfg.SpawnRadius,
		respawnDelay:  cfg.RespawnDelay,
		respawnJitter: cfg.RespawnJitter,
		stopCh:        make(chan struct{}),
		rng:           rng,
		points:        points,
		queue:         NewRespawnQueue(),
	}
}

// PopulateAll fills every point to capacity, up to the world enemy cap.
// Called once at startup before players roam.
func (m *Manager) PopulateAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for i := range m.points {
		p := &m.points[i]
		for p.live < p.maxCount {
			if m.world.EnemyCount() >= m.maxEnemies {
				slog.Warn("world population hit the enemy cap", "spawned", count)
				return nil
			}
			if m.playerNear(p.pos) {
				break
			}
			if _, err := m.spawnAtLocked(i); err != nil {
				return fmt.Errorf("populating point %d: %w", i, err)
			}
			count++
		}
	}

	slog.Info("world populated", "enemies", count, "points", len(m.points))
	return nil
}

// Update advances the spawner by dt simulated seconds.
func (m *Manager) Update(dt float64) {
	if dt <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reapLocked()

	for _, idx := range m.queue.Advance(dt) {
		if m.world.EnemyCount() >= m.maxEnemies {
			continue
		}
		m.tryPointLocked(idx)
	}

	m.timer += dt
	if m.timer >= m.interval {
		m.timer = 0
		m.sweepLocked()
	}
}

// reapLocked removes corpses, returns them to their points and
// schedules the refills.
func (m *Manager) reapLocked() {
	for _, corpse := range m.world.ReapDeadEnemies() {
		m.aiManager.Unregister(corpse.ID())

		idx := corpse.SpawnIndex()
		if idx < 0 || idx >= len(m.points) {
			continue
		}
		m.points[idx].live--

		delay := m.respawnDelay
		if m.respawnJitter > 0 {
			delay += m.rng.Float64() * m.respawnJitter
		}
		m.queue.Schedule(idx, delay)

		slog.Debug("respawn scheduled",
			"point", idx,
			"kind", corpse.Kind(),
			"delay", delay)
	}
}

// sweepLocked tops up every under-capacity point. The enemy cap gates
// the sweep as a whole, not each point within it.
func (m *Manager) sweepLocked() {
	if m.world.EnemyCount() >= m.maxEnemies {
		return
	}
	for i := range m.points {
		m.tryPointLocked(i)
	}
}

// tryPointLocked spawns one enemy at the point if it is below capacity
// and no player is camping it. A blocked refill is dropped; the next
// sweep catches the point up.
func (m *Manager) tryPointLocked(i int) {
	p := &m.points[i]
	if p.live >= p.maxCount {
		return
	}
	if m.playerNear(p.pos) {
		return
	}
	if _, err := m.spawnAtLocked(i); err != nil {
		slog.Error("spawn failed", "point", i, "error", err)
	}
}

// spawnAtLocked creates one enemy of a random point kind, scattered
// around the anchor, and registers its AI.
func (m *Manager) spawnAtLocked(i int) (*model.Enemy, error) {
	p := &m.points[i]

	kind := p.kinds[m.rng.IntN(len(p.kinds))]
	tpl := m.reg.Enemy(kind)
	if tpl == nil {
		return nil, fmt.Errorf("unknown enemy kind %q", kind)
	}

	pos := model.Vec2{
		X: p.pos.X + m.rng.Float64()*2*m.radius - m.radius,
		Y: p.pos.Y + m.rng.Float64()*2*m.radius - m.radius,
	}

	enemy := model.NewEnemy(m.world.IDs().NextEnemyID(), tpl, pos, i)
	m.world.AddEnemy(enemy)
	p.live++

	m.aiManager.Register(enemy.ID(), m.build(enemy))

	slog.Debug("enemy spawned",
		"id", enemy.ID(),
		"kind", kind,
		"point", i,
		"pos", pos)
	return enemy, nil
}

// SpawnManual places a single enemy outside any spawn point. It counts
// toward the world, not a point, and never respawns.
func (m *Manager) SpawnManual(kind string, pos model.Vec2) (*model.Enemy, error) {
	tpl := m.reg.Enemy(kind)
	if tpl == nil {
		return nil, fmt.Errorf("unknown enemy kind %q", kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	enemy := model.NewEnemy(m.world.IDs().NextEnemyID(), tpl, pos, model.ManualSpawn)
	m.world.AddEnemy(enemy)
	m.aiManager.Register(enemy.ID(), m.build(enemy))

	slog.Debug("enemy placed", "id", enemy.ID(), "kind", kind, "pos", pos)
	return enemy, nil
}

func (m *Manager) playerNear(pos model.Vec2) bool {
	if m.minPlayerDist <= 0 {
		return false
	}
	return m.world.NearestCharacter(pos, m.minPlayerDist) != nil
}

// PointLive returns how many of point i's enemies are currently alive.
func (m *Manager) PointLive(i int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.points[i].live
}

// PointCount returns the number of configured spawn points.
func (m *Manager) PointCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points)
}

// PendingRespawns returns the number of scheduled refill tasks.
func (m *Manager) PendingRespawns() int {
	return m.queue.TaskCount()
}

// Run drives Update from a one-second wall-clock ticker until the
// context is canceled or Stop is called.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	slog.Info("spawn manager started",
		"points", len(m.points),
		"interval", m.interval,
		"maxEnemies", m.maxEnemies)

	for {
		select {
		case <-ctx.Done():
			slog.Info("spawn manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("spawn manager stopped")
			return nil

		case <-ticker.C:
			m.Update(1.0)
		}
	}
}

// Stop stops the Run loop.
func (m *Manager) Stop() {
	close(m.stopCh)
}
