package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/game/quest"
)

// Quest state is stored as variable rows: one row per fact about one
// quest, keyed (quest_id, variable). A repeatable quest can carry both
// an "active" and a "done" row at the same time.
const (
	questVarActive   = "active"
	questVarDone     = "done"
	questVarUnlocked = "unlocked"

	questObjectivePrefix = "objective:"
)

// QuestRepository stores quest-log snapshots as variable rows.
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository.
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// SaveAllTx replaces the character's quest rows inside tx.
func (r *QuestRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, characterID int64, snap quest.Snapshot) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM character_quests WHERE character_id = $1`, characterID,
	); err != nil {
		return fmt.Errorf("clearing quests for character %d: %w", characterID, err)
	}

	var rows [][]any
	for _, active := range snap.Active {
		rows = append(rows, []any{characterID, active.QuestID, questVarActive, "1"})
		for _, obj := range active.Objectives {
			rows = append(rows, []any{characterID, active.QuestID, questObjectivePrefix + obj.ID, strconv.Itoa(obj.Count)})
		}
	}
	for _, id := range snap.Completed {
		rows = append(rows, []any{characterID, id, questVarDone, "1"})
	}
	for _, id := range snap.Unlocked {
		rows = append(rows, []any{characterID, id, questVarUnlocked, "1"})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"character_quests"},
		[]string{"character_id", "quest_id", "variable", "value"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying quest vars for character %d: %w", characterID, err)
	}
	return nil
}

// Load rebuilds a quest snapshot from the stored variable rows. The
// ORDER BY matches the snapshot's sorted layout, and within one quest
// "active" sorts before its "objective:" rows, so assembly is a single
// pass.
func (r *QuestRepository) Load(ctx context.Context, characterID int64) (quest.Snapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT quest_id, variable, value
		FROM character_quests
		WHERE character_id = $1
		ORDER BY quest_id, variable`, characterID)
	if err != nil {
		return quest.Snapshot{}, fmt.Errorf("querying quests for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var snap quest.Snapshot
	var current *quest.ActiveSnapshot
	for rows.Next() {
		var questID, variable, value string
		if err := rows.Scan(&questID, &variable, &value); err != nil {
			return quest.Snapshot{}, fmt.Errorf("scanning quest var row: %w", err)
		}
		switch {
		case variable == questVarActive:
			snap.Active = append(snap.Active, quest.ActiveSnapshot{QuestID: questID})
			current = &snap.Active[len(snap.Active)-1]
		case variable == questVarDone:
			snap.Completed = append(snap.Completed, questID)
		case variable == questVarUnlocked:
			snap.Unlocked = append(snap.Unlocked, questID)
		case strings.HasPrefix(variable, questObjectivePrefix):
			if current == nil || current.QuestID != questID {
				continue // objective row without an active marker
			}
			count, err := strconv.Atoi(value)
			if err != nil {
				return quest.Snapshot{}, fmt.Errorf("quest %s %s for character %d: bad count %q", questID, variable, characterID, value)
			}
			current.Objectives = append(current.Objectives, quest.ObjectiveCount{
				ID:    strings.TrimPrefix(variable, questObjectivePrefix),
				Count: count,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return quest.Snapshot{}, fmt.Errorf("iterating quest var rows: %w", err)
	}
	return snap, nil
}
