// Package quest tracks one character's quest log: which quests are
// available, active progress per objective, turn-ins and chain unlocks.
// Definitions come from the data registry; the log only holds state.
package quest

import "github.com/skillmine/core/internal/data"

// Status is the derived state of one quest for one character.
type Status int

const (
	// StatusLocked marks a quest gated behind a chain unlock that has
	// not happened yet.
	StatusLocked Status = iota
	// StatusAvailable means the quest can be accepted (gates permitting).
	StatusAvailable
	// StatusActive means the quest is in the log with objectives open.
	StatusActive
	// StatusComplete means every required objective is done and the
	// quest is waiting to be turned in.
	StatusComplete
	// StatusTurnedIn means the quest was handed in. Repeatable quests
	// become available again from here.
	StatusTurnedIn
)

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusAvailable:
		return "available"
	case StatusActive:
		return "active"
	case StatusComplete:
		return "complete"
	case StatusTurnedIn:
		return "turned_in"
	default:
		return "unknown"
	}
}

// EventType identifies the kind of quest event.
type EventType int

const (
	EventAccepted EventType = iota
	EventProgress
	EventObjectiveComplete
	EventQuestComplete
	EventTurnedIn
	EventAbandoned
)

// Event carries quest progress notifications to the observer.
// ObjectiveID, Count and Required are set for objective-level events.
type Event struct {
	Type        EventType
	QuestID     string
	ObjectiveID string
	Count       int
	Required    int
}

// ObjectiveView is a read-only snapshot of one objective's progress.
type ObjectiveView struct {
	Objective data.QuestObjective
	Count     int
	Done      bool
}

// QuestView is a read-only snapshot of one active quest.
type QuestView struct {
	Template   *data.QuestTemplate
	Objectives []ObjectiveView
	Complete   bool
}

// objectiveDone reports whether an objective count meets its requirement.
func objectiveDone(obj data.QuestObjective, count int) bool {
	return count >= obj.Count
}

// questComplete reports whether every required objective is done.
// Optional objectives never block completion.
func questComplete(tpl *data.QuestTemplate, progress map[string]int) bool {
	for _, obj := range tpl.Objectives {
		if obj.Optional {
			continue
		}
		if !objectiveDone(obj, progress[obj.ID]) {
			return false
		}
	}
	return true
}
