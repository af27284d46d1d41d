package quest

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/skillmine/core/internal/data"
)

var (
	ErrUnknownQuest      = errors.New("unknown quest")
	ErrAlreadyActive     = errors.New("quest already active")
	ErrNotAvailable      = errors.New("quest not available")
	ErrLevelTooLow       = errors.New("level requirement not met")
	ErrPrereqsIncomplete = errors.New("prerequisite quests not completed")
	ErrNotActive         = errors.New("quest not active")
	ErrNotComplete       = errors.New("quest objectives not complete")
)

// Log is one character's quest state over a fixed quest set: per-objective
// progress for active quests, the turned-in set, and chain unlocks. All
// methods are safe for concurrent use. The log never touches the character
// itself; turn-in returns the reward and applying it is the caller's job.
type Log struct {
	mu sync.RWMutex

	quests     map[string]*data.QuestTemplate
	chainGated map[string]bool // referenced by some UnlockQuest, locked until unlocked

	progress  map[string]map[string]int // active quest -> objective -> count
	completed map[string]bool           // turned in at least once
	unlocked  map[string]bool           // chain unlocks granted

	observer func(Event)
	dirty    bool // modified since last save
}

// NewLog builds an empty quest log over the given definitions. Quests
// referenced by another quest's UnlockQuest start locked; everything
// else starts available.
func NewLog(quests map[string]*data.QuestTemplate) *Log {
	gated := make(map[string]bool)
	for _, tpl := range quests {
		if tpl.Rewards.UnlockQuest != "" {
			gated[tpl.Rewards.UnlockQuest] = true
		}
	}
	return &Log{
		quests:     quests,
		chainGated: gated,
		progress:   make(map[string]map[string]int),
		completed:  make(map[string]bool),
		unlocked:   make(map[string]bool),
	}
}

// SetObserver sets a callback for quest events (nil to disable). The
// callback runs outside the log's lock and may call back into the log.
func (l *Log) SetObserver(fn func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer = fn
}

func (l *Log) emit(events []Event) {
	l.mu.RLock()
	fn := l.observer
	l.mu.RUnlock()
	if fn == nil {
		return
	}
	for _, ev := range events {
		fn(ev)
	}
}

// Status derives the quest's current state for this character.
func (l *Log) Status(questID string) Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.statusLocked(questID)
}

func (l *Log) statusLocked(questID string) Status {
	if prog, ok := l.progress[questID]; ok {
		if questComplete(l.quests[questID], prog) {
			return StatusComplete
		}
		return StatusActive
	}
	if l.completed[questID] {
		return StatusTurnedIn
	}
	if l.chainGated[questID] && !l.unlocked[questID] {
		return StatusLocked
	}
	return StatusAvailable
}

func (l *Log) acceptableLocked(tpl *data.QuestTemplate, level int) error {
	switch l.statusLocked(tpl.ID) {
	case StatusActive, StatusComplete:
		return ErrAlreadyActive
	case StatusLocked:
		return ErrNotAvailable
	case StatusTurnedIn:
		if !tpl.Repeatable {
			return ErrNotAvailable
		}
	}
	if level < tpl.LevelRequirement {
		return ErrLevelTooLow
	}
	for _, pre := range tpl.Prereqs {
		if !l.completed[pre] {
			return ErrPrereqsIncomplete
		}
	}
	return nil
}

// Available lists quests the character could accept at the given level,
// sorted by id.
func (l *Log) Available(level int) []*data.QuestTemplate {
	return l.AvailableFrom("", level)
}

// AvailableFrom is Available filtered to one quest giver. An empty
// giver matches everyone.
func (l *Log) AvailableFrom(giver string, level int) []*data.QuestTemplate {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*data.QuestTemplate
	for _, tpl := range l.quests {
		if giver != "" && tpl.Giver != giver {
			continue
		}
		if l.acceptableLocked(tpl, level) != nil {
			continue
		}
		out = append(out, tpl)
	}
	slices.SortFunc(out, func(a, b *data.QuestTemplate) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Accept puts the quest in the log with fresh objective progress.
// Re-accepting a turned-in repeatable quest starts it over.
func (l *Log) Accept(questID string, level int) error {
	l.mu.Lock()
	tpl, ok := l.quests[questID]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownQuest, questID)
	}
	if err := l.acceptableLocked(tpl, level); err != nil {
		l.mu.Unlock()
		return err
	}

	l.progress[questID] = make(map[string]int, len(tpl.Objectives))
	l.dirty = true
	l.mu.Unlock()

	l.emit([]Event{{Type: EventAccepted, QuestID: questID}})
	return nil
}

// OnKill advances kill objectives across every active quest. The
// wildcard target matches any kind.
func (l *Log) OnKill(enemyKind string) {
	l.emit(l.applyProgress(data.ObjectiveKill, enemyKind, 1, true))
}

// OnCollect advances collect objectives across every active quest.
// Collection is event-based: progress moves when items are gained and
// never regresses when they are spent or dropped.
func (l *Log) OnCollect(itemID string, count int) {
	if count <= 0 {
		return
	}
	l.emit(l.applyProgress(data.ObjectiveCollect, itemID, count, false))
}

func (l *Log) applyProgress(objType, target string, amount int, wildcard bool) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Sorted so multi-quest progress always emits events in the same order.
	var events []Event
	for _, questID := range slices.Sorted(maps.Keys(l.progress)) {
		prog := l.progress[questID]
		tpl := l.quests[questID]
		wasComplete := questComplete(tpl, prog)

		for _, obj := range tpl.Objectives {
			if obj.Type != objType {
				continue
			}
			if obj.Target != target && !(wildcard && obj.Target == data.TargetAny) {
				continue
			}
			old := prog[obj.ID]
			if old >= obj.Count {
				continue
			}
			now := min(old+amount, obj.Count)
			prog[obj.ID] = now
			l.dirty = true

			ev := Event{Type: EventProgress, QuestID: questID, ObjectiveID: obj.ID, Count: now, Required: obj.Count}
			if now >= obj.Count {
				ev.Type = EventObjectiveComplete
			}
			events = append(events, ev)
		}

		if !wasComplete && questComplete(tpl, prog) {
			events = append(events, Event{Type: EventQuestComplete, QuestID: questID})
		}
	}
	return events
}

// IsComplete reports whether the quest is active with every required
// objective done.
func (l *Log) IsComplete(questID string) bool {
	return l.Status(questID) == StatusComplete
}

// TurnIn hands in a completed quest and returns its reward. The reward
// is a copy; granting XP, gold, items, skill points and ability unlocks
// to the character is the caller's job. Turning in unlocks the quest's
// chain follow-up when it has one.
func (l *Log) TurnIn(questID string) (data.QuestReward, error) {
	l.mu.Lock()
	tpl, ok := l.quests[questID]
	if !ok {
		l.mu.Unlock()
		return data.QuestReward{}, fmt.Errorf("%w: %q", ErrUnknownQuest, questID)
	}
	prog, active := l.progress[questID]
	if !active {
		l.mu.Unlock()
		return data.QuestReward{}, ErrNotActive
	}
	if !questComplete(tpl, prog) {
		l.mu.Unlock()
		return data.QuestReward{}, ErrNotComplete
	}

	delete(l.progress, questID)
	l.completed[questID] = true
	if tpl.Rewards.UnlockQuest != "" {
		l.unlocked[tpl.Rewards.UnlockQuest] = true
	}
	l.dirty = true
	l.mu.Unlock()

	l.emit([]Event{{Type: EventTurnedIn, QuestID: questID}})
	reward := tpl.Rewards
	reward.Items = slices.Clone(tpl.Rewards.Items)
	return reward, nil
}

// Abandon drops an active quest, losing all its progress.
func (l *Log) Abandon(questID string) error {
	l.mu.Lock()
	if _, active := l.progress[questID]; !active {
		l.mu.Unlock()
		return ErrNotActive
	}
	delete(l.progress, questID)
	l.dirty = true
	l.mu.Unlock()

	l.emit([]Event{{Type: EventAbandoned, QuestID: questID}})
	return nil
}

// View returns a snapshot of one active quest.
func (l *Log) View(questID string) (QuestView, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	prog, ok := l.progress[questID]
	if !ok {
		return QuestView{}, false
	}
	return l.viewLocked(questID, prog), true
}

// Active returns snapshots of every active quest, sorted by id.
func (l *Log) Active() []QuestView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(l.progress))
	out := make([]QuestView, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.viewLocked(id, l.progress[id]))
	}
	return out
}

func (l *Log) viewLocked(questID string, prog map[string]int) QuestView {
	tpl := l.quests[questID]
	view := QuestView{
		Template:   tpl,
		Objectives: make([]ObjectiveView, 0, len(tpl.Objectives)),
		Complete:   questComplete(tpl, prog),
	}
	for _, obj := range tpl.Objectives {
		view.Objectives = append(view.Objectives, ObjectiveView{
			Objective: obj,
			Count:     prog[obj.ID],
			Done:      objectiveDone(obj, prog[obj.ID]),
		})
	}
	return view
}

// Text renders the quest log as display text.
func (l *Log) Text() string {
	active := l.Active()
	if len(active) == 0 {
		return "No active quests."
	}

	var b strings.Builder
	b.WriteString("=== QUEST LOG ===\n")
	for _, view := range active {
		kind := "[SIDE]"
		if view.Template.Main {
			kind = "[MAIN]"
		}
		b.WriteString("\n")
		b.WriteString(kind)
		b.WriteString(" ")
		b.WriteString(view.Template.Name)
		if view.Complete {
			b.WriteString(" [COMPLETE]")
		}
		b.WriteString("\n  ")
		b.WriteString(view.Template.Description)
		b.WriteString("\n")
		for _, obj := range view.Objectives {
			check := "[ ]"
			if obj.Done {
				check = "[x]"
			}
			optional := ""
			if obj.Objective.Optional {
				optional = "(Optional) "
			}
			fmt.Fprintf(&b, "  %s %s%s: %d/%d\n", check, optional, obj.Objective.Description, obj.Count, obj.Objective.Count)
		}
	}
	return b.String()
}

// Dirty reports whether the log changed since the last ClearDirty.
func (l *Log) Dirty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dirty
}

// ClearDirty resets the dirty flag after a successful save.
func (l *Log) ClearDirty() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirty = false
}
