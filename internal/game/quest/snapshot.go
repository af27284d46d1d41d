package quest

import (
	"maps"
	"slices"

	"github.com/skillmine/core/internal/data"
)

// ObjectiveCount is saved progress for one objective.
type ObjectiveCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// ActiveSnapshot is saved progress for one active quest.
type ActiveSnapshot struct {
	QuestID    string           `json:"quest_id"`
	Objectives []ObjectiveCount `json:"objectives,omitempty"`
}

// Snapshot is the persistent form of a quest log. Field order inside
// each slice is sorted so equal logs serialize identically.
type Snapshot struct {
	Active    []ActiveSnapshot `json:"active,omitempty"`
	Completed []string         `json:"completed,omitempty"`
	Unlocked  []string         `json:"unlocked,omitempty"`
}

// Snapshot captures the log's persistent state.
func (l *Log) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var snap Snapshot
	for _, questID := range slices.Sorted(maps.Keys(l.progress)) {
		active := ActiveSnapshot{QuestID: questID}
		prog := l.progress[questID]
		for _, objID := range slices.Sorted(maps.Keys(prog)) {
			active.Objectives = append(active.Objectives, ObjectiveCount{ID: objID, Count: prog[objID]})
		}
		snap.Active = append(snap.Active, active)
	}
	snap.Completed = slices.Sorted(maps.Keys(l.completed))
	snap.Unlocked = slices.Sorted(maps.Keys(l.unlocked))
	return snap
}

// RestoreLog rebuilds a quest log from saved state. Quests and
// objectives that no longer exist in the definitions are skipped, and
// counts are clamped to each objective's requirement, so stale saves
// load cleanly after data changes. The restored log starts clean.
func RestoreLog(quests map[string]*data.QuestTemplate, snap Snapshot) *Log {
	l := NewLog(quests)
	for _, id := range snap.Completed {
		if _, ok := quests[id]; ok {
			l.completed[id] = true
		}
	}
	for _, id := range snap.Unlocked {
		if l.chainGated[id] {
			l.unlocked[id] = true
		}
	}
	for _, active := range snap.Active {
		tpl, ok := quests[active.QuestID]
		if !ok {
			continue
		}
		prog := make(map[string]int, len(tpl.Objectives))
		for _, oc := range active.Objectives {
			obj, ok := tpl.Objective(oc.ID)
			if !ok {
				continue
			}
			prog[obj.ID] = max(0, min(oc.Count, obj.Count))
		}
		l.progress[active.QuestID] = prog
	}
	return l
}
