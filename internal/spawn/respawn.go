package spawn

import (
	"slices"
	"sync"
)

// respawnTask counts down to one point refill attempt.
type respawnTask struct {
	point     int
	remaining float64
}

// RespawnQueue holds pending point refills in simulated seconds. Tasks
// fire in schedule order, so a seeded run replays identically.
type RespawnQueue struct {
	mu    sync.Mutex
	tasks []respawnTask
}

// NewRespawnQueue creates an empty queue.
func NewRespawnQueue() *RespawnQueue {
	return &RespawnQueue{}
}

// Schedule queues a refill attempt for the point after delay seconds.
func (q *RespawnQueue) Schedule(point int, delay float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, respawnTask{point: point, remaining: delay})
}

// Cancel drops every pending task for the point.
func (q *RespawnQueue) Cancel(point int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = slices.DeleteFunc(q.tasks, func(t respawnTask) bool {
		return t.point == point
	})
}

// TaskCount returns the number of pending tasks.
func (q *RespawnQueue) TaskCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Advance subtracts dt from every task and returns the points whose
// tasks came due, in schedule order.
func (q *RespawnQueue) Advance(dt float64) []int {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []int
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t.point)
			continue
		}
		kept = append(kept, t)
	}
	q.tasks = kept
	return due
}
