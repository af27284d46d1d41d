package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/game/skilltree"
)

// SkillRepository stores skill-graph unlocks and learned ability ids.
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

// SaveAllTx replaces the character's progression rows inside tx.
func (r *SkillRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, characterID int64, nodes []skilltree.NodeID, abilities []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM character_skills WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing skills for character %d: %w", characterID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM character_abilities WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing abilities for character %d: %w", characterID, err)
	}

	if len(nodes) > 0 {
		rows := make([][]any, 0, len(nodes))
		for _, id := range nodes {
			rows = append(rows, []any{characterID, string(id)})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"character_skills"},
			[]string{"character_id", "node_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("copying skills for character %d: %w", characterID, err)
		}
	}

	if len(abilities) > 0 {
		rows := make([][]any, 0, len(abilities))
		for _, id := range abilities {
			rows = append(rows, []any{characterID, id})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"character_abilities"},
			[]string{"character_id", "ability_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("copying abilities for character %d: %w", characterID, err)
		}
	}
	return nil
}

// Load returns unlocked node ids and known ability ids, both sorted.
func (r *SkillRepository) Load(ctx context.Context, characterID int64) ([]skilltree.NodeID, []string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT node_id FROM character_skills
		WHERE character_id = $1
		ORDER BY node_id`, characterID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying skills for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var nodes []skilltree.NodeID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("scanning skill row: %w", err)
		}
		nodes = append(nodes, skilltree.NodeID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating skill rows: %w", err)
	}

	abilityRows, err := r.db.Query(ctx, `
		SELECT ability_id FROM character_abilities
		WHERE character_id = $1
		ORDER BY ability_id`, characterID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying abilities for character %d: %w", characterID, err)
	}
	defer abilityRows.Close()

	var abilities []string
	for abilityRows.Next() {
		var id string
		if err := abilityRows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("scanning ability row: %w", err)
		}
		abilities = append(abilities, id)
	}
	if err := abilityRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating ability rows: %w", err)
	}
	return nodes, abilities, nil
}
