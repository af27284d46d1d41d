package ai

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultTickInterval is the live-mode tick cadence.
const DefaultTickInterval = 200 * time.Millisecond

// TickManager steps every registered controller at a fixed cadence.
// Controllers are stepped in id order so a seeded run replays the same
// sequence of decisions; Step is also exposed directly for drivers
// that advance simulated time themselves.
type TickManager struct {
	interval time.Duration
	stopCh   chan struct{}

	mu          sync.RWMutex
	controllers map[uint64]Controller
}

// NewTickManager creates a tick manager. A non-positive interval falls
// back to the default.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval:    interval,
		stopCh:      make(chan struct{}),
		controllers: make(map[uint64]Controller),
	}
}

// Register adds a controller under the entity's id and starts it.
func (m *TickManager) Register(id uint64, controller Controller) {
	m.mu.Lock()
	m.controllers[id] = controller
	m.mu.Unlock()

	controller.Start()

	slog.Debug("AI controller registered", "id", id, "state", controller.State())
}

// Unregister stops and removes the controller, if present.
func (m *TickManager) Unregister(id uint64) {
	m.mu.Lock()
	controller, ok := m.controllers[id]
	delete(m.controllers, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	controller.Stop()

	slog.Debug("AI controller unregistered", "id", id)
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.controllers)
}

// Controller returns the controller registered under id.
func (m *TickManager) Controller(id uint64) (Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	controller, ok := m.controllers[id]
	if !ok {
		return nil, fmt.Errorf("no controller for id %d", id)
	}
	return controller, nil
}

// Step advances every controller by dt seconds, in id order.
func (m *TickManager) Step(dt float64) {
	m.mu.RLock()
	ids := slices.Sorted(maps.Keys(m.controllers))
	ordered := make([]Controller, len(ids))
	for i, id := range ids {
		ordered[i] = m.controllers[id]
	}
	m.mu.RUnlock()

	// Outside the lock: a tick may unregister controllers.
	for _, controller := range ordered {
		controller.Tick(dt)
	}

	if len(ordered) > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", len(ordered))
	}
}

// Start runs the tick loop until the context is canceled or Stop is
// called.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	dt := m.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case <-ticker.C:
			m.Step(dt)
		}
	}
}

// Stop stops the tick loop.
func (m *TickManager) Stop() {
	close(m.stopCh)
}
