package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/model"
)

// Where a stored item sits on the character.
const (
	itemLocationInventory = "inventory"
	itemLocationEquipped  = "equipped"
)

// ItemRepository stores carried and equipped items per character.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// SaveAllTx replaces the character's stored items inside tx. Carried
// slots keep their slot index; equipped ids keep their order.
func (r *ItemRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, characterID int64, items []model.ItemSnapshot, equipment []string) error {
	_, err := tx.Exec(ctx, `DELETE FROM character_items WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("clearing items for character %d: %w", characterID, err)
	}

	rows := make([][]any, 0, len(items)+len(equipment))
	for _, it := range items {
		rows = append(rows, []any{characterID, itemLocationInventory, it.Slot, it.ItemID, it.Quantity})
	}
	for i, itemID := range equipment {
		rows = append(rows, []any{characterID, itemLocationEquipped, i, itemID, 1})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"character_items"},
		[]string{"character_id", "location", "slot", "item_id", "quantity"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying items for character %d: %w", characterID, err)
	}
	return nil
}

// Load returns the carried slots ordered by slot index and the
// equipped template ids in their stored order.
func (r *ItemRepository) Load(ctx context.Context, characterID int64) ([]model.ItemSnapshot, []string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT location, slot, item_id, quantity
		FROM character_items
		WHERE character_id = $1
		ORDER BY location, slot`, characterID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying items for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var items []model.ItemSnapshot
	var equipment []string
	for rows.Next() {
		var location, itemID string
		var slot, quantity int
		if err := rows.Scan(&location, &slot, &itemID, &quantity); err != nil {
			return nil, nil, fmt.Errorf("scanning item row: %w", err)
		}
		switch location {
		case itemLocationEquipped:
			equipment = append(equipment, itemID)
		default:
			items = append(items, model.ItemSnapshot{Slot: slot, ItemID: itemID, Quantity: quantity})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, equipment, nil
}
