package spawn

import (
	"slices"
	"testing"
)

func TestRespawnQueueAdvance(t *testing.T) {
	q := NewRespawnQueue()

	q.Schedule(0, 5)
	if got := q.TaskCount(); got != 1 {
		t.Fatalf("TaskCount() after schedule = %d, want 1", got)
	}

	if due := q.Advance(4); len(due) != 0 {
		t.Fatalf("Advance(4) = %v, want nothing due", due)
	}
	if due := q.Advance(1); !slices.Equal(due, []int{0}) {
		t.Fatalf("Advance(1) = %v, want [0]", due)
	}
	if got := q.TaskCount(); got != 0 {
		t.Errorf("TaskCount() after firing = %d, want 0", got)
	}
}

func TestRespawnQueuePartial(t *testing.T) {
	q := NewRespawnQueue()

	q.Schedule(0, 3)
	q.Schedule(1, 6)

	if due := q.Advance(3); !slices.Equal(due, []int{0}) {
		t.Fatalf("Advance(3) = %v, want [0]", due)
	}
	if got := q.TaskCount(); got != 1 {
		t.Fatalf("TaskCount() = %d, want 1", got)
	}
	if due := q.Advance(3); !slices.Equal(due, []int{1}) {
		t.Fatalf("second Advance(3) = %v, want [1]", due)
	}
}

func TestRespawnQueueScheduleOrder(t *testing.T) {
	q := NewRespawnQueue()

	q.Schedule(3, 5)
	q.Schedule(1, 5)
	q.Schedule(2, 3)

	// Tasks due in the same step fire in schedule order.
	if due := q.Advance(5); !slices.Equal(due, []int{3, 1, 2}) {
		t.Fatalf("Advance(5) = %v, want [3 1 2]", due)
	}
}

func TestRespawnQueueCancel(t *testing.T) {
	q := NewRespawnQueue()

	q.Schedule(1, 5)
	q.Schedule(1, 8)
	q.Schedule(2, 5)

	q.Cancel(1)
	if got := q.TaskCount(); got != 1 {
		t.Fatalf("TaskCount() after cancel = %d, want 1", got)
	}
	if due := q.Advance(10); !slices.Equal(due, []int{2}) {
		t.Fatalf("Advance(10) = %v, want [2]", due)
	}
}
