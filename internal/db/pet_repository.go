package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/model"
)

// PetRepository stores each character's companion. A character has at
// most one.
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a new PetRepository.
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

// SaveTx upserts the companion row inside tx. A nil snapshot removes
// the stored companion.
func (r *PetRepository) SaveTx(ctx context.Context, tx pgx.Tx, characterID int64, snap *model.PetSnapshot) error {
	if snap == nil {
		if _, err := tx.Exec(ctx, `DELETE FROM character_pets WHERE character_id = $1`, characterID); err != nil {
			return fmt.Errorf("clearing pet for character %d: %w", characterID, err)
		}
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO character_pets (character_id, template_id, nickname, level, experience, bond, happiness)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (character_id) DO UPDATE SET
			template_id = EXCLUDED.template_id,
			nickname    = EXCLUDED.nickname,
			level       = EXCLUDED.level,
			experience  = EXCLUDED.experience,
			bond        = EXCLUDED.bond,
			happiness   = EXCLUDED.happiness`,
		characterID, snap.TemplateID, snap.Nickname, snap.Level, snap.Experience, snap.Bond, snap.Happiness,
	)
	if err != nil {
		return fmt.Errorf("saving pet for character %d: %w", characterID, err)
	}
	return nil
}

// Load returns the companion snapshot.
// Returns nil, nil if the character has none.
func (r *PetRepository) Load(ctx context.Context, characterID int64) (*model.PetSnapshot, error) {
	var snap model.PetSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT template_id, nickname, level, experience, bond, happiness
		FROM character_pets WHERE character_id = $1`, characterID,
	).Scan(&snap.TemplateID, &snap.Nickname, &snap.Level, &snap.Experience, &snap.Bond, &snap.Happiness)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying pet for character %d: %w", characterID, err)
	}
	return &snap, nil
}
