package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/model"
)

// CharacterRepository stores the characters table rows. Items, skills,
// quests and the companion live in their own repositories; the slices
// on a loaded snapshot are filled in by PersistenceService.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CharacterRow is one characters-table row: the snapshot plus its keys.
type CharacterRow struct {
	ID       int64
	Account  string
	Snapshot model.CharacterSnapshot
}

// CharacterRef identifies one character on an account's selection list.
type CharacterRef struct {
	ID      int64
	Name    string
	Level   int
	ClassID string
}

const insertCharacterSQL = `
	INSERT INTO characters (account_name, name, class_id, race_id,
	                        level, xp, stat_points, skill_points,
	                        strength, agility, intelligence, vitality,
	                        health, mana, stamina, gold, x, y)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	RETURNING character_id
`

const updateCharacterSQL = `
	UPDATE characters
	SET class_id = $2, race_id = $3,
	    level = $4, xp = $5, stat_points = $6, skill_points = $7,
	    strength = $8, agility = $9, intelligence = $10, vitality = $11,
	    health = $12, mana = $13, stamina = $14, gold = $15,
	    x = $16, y = $17,
	    last_saved = now()
	WHERE character_id = $1
`

const selectCharacterSQL = `
	SELECT character_id, account_name, name, class_id, race_id,
	       level, xp, stat_points, skill_points,
	       strength, agility, intelligence, vitality,
	       health, mana, stamina, gold, x, y
	FROM characters
`

// Create inserts a new character row for the account and returns the
// assigned id.
func (r *CharacterRepository) Create(ctx context.Context, account string, snap model.CharacterSnapshot) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, insertCharacterSQL, insertCharacterArgs(account, snap)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating character %q: %w", snap.Name, err)
	}
	return id, nil
}

// CreateTx is Create inside an existing transaction.
func (r *CharacterRepository) CreateTx(ctx context.Context, tx pgx.Tx, account string, snap model.CharacterSnapshot) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, insertCharacterSQL, insertCharacterArgs(account, snap)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating character %q: %w", snap.Name, err)
	}
	return id, nil
}

func insertCharacterArgs(account string, snap model.CharacterSnapshot) []any {
	return []any{
		account, snap.Name, snap.ClassID, snap.RaceID,
		snap.Level, snap.XP, snap.StatPoints, snap.SkillPoints,
		snap.Stats.Strength, snap.Stats.Agility, snap.Stats.Intelligence, snap.Stats.Vitality,
		snap.Health, snap.Mana, snap.Stamina, snap.Gold, snap.Pos.X, snap.Pos.Y,
	}
}

func updateCharacterArgs(id int64, snap model.CharacterSnapshot) []any {
	return []any{
		id, snap.ClassID, snap.RaceID,
		snap.Level, snap.XP, snap.StatPoints, snap.SkillPoints,
		snap.Stats.Strength, snap.Stats.Agility, snap.Stats.Intelligence, snap.Stats.Vitality,
		snap.Health, snap.Mana, snap.Stamina, snap.Gold, snap.Pos.X, snap.Pos.Y,
	}
}

// Update rewrites the character row. The name never changes on update.
func (r *CharacterRepository) Update(ctx context.Context, id int64, snap model.CharacterSnapshot) error {
	tag, err := r.db.Exec(ctx, updateCharacterSQL, updateCharacterArgs(id, snap)...)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating character %d: not found", id)
	}
	return nil
}

// UpdateTx is Update inside an existing transaction.
func (r *CharacterRepository) UpdateTx(ctx context.Context, tx pgx.Tx, id int64, snap model.CharacterSnapshot) error {
	tag, err := tx.Exec(ctx, updateCharacterSQL, updateCharacterArgs(id, snap)...)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating character %d: not found", id)
	}
	return nil
}

// Load fetches one character row by id.
// Returns nil, nil if the character does not exist.
func (r *CharacterRepository) Load(ctx context.Context, id int64) (*CharacterRow, error) {
	row, err := r.scanRow(r.db.QueryRow(ctx, selectCharacterSQL+`WHERE character_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("querying character %d: %w", id, err)
	}
	return row, nil
}

// LoadByName fetches one character row by character name.
// Returns nil, nil if the character does not exist.
func (r *CharacterRepository) LoadByName(ctx context.Context, name string) (*CharacterRow, error) {
	row, err := r.scanRow(r.db.QueryRow(ctx, selectCharacterSQL+`WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("querying character %q: %w", name, err)
	}
	return row, nil
}

func (r *CharacterRepository) scanRow(row pgx.Row) (*CharacterRow, error) {
	var c CharacterRow
	snap := &c.Snapshot
	err := row.Scan(
		&c.ID, &c.Account, &snap.Name, &snap.ClassID, &snap.RaceID,
		&snap.Level, &snap.XP, &snap.StatPoints, &snap.SkillPoints,
		&snap.Stats.Strength, &snap.Stats.Agility, &snap.Stats.Intelligence, &snap.Stats.Vitality,
		&snap.Health, &snap.Mana, &snap.Stamina, &snap.Gold, &snap.Pos.X, &snap.Pos.Y,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // not found is not an error
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByAccount returns the account's characters in creation order.
func (r *CharacterRepository) ListByAccount(ctx context.Context, account string) ([]CharacterRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT character_id, name, level, class_id
		FROM characters
		WHERE account_name = $1
		ORDER BY character_id ASC`, account)
	if err != nil {
		return nil, fmt.Errorf("querying characters for account %q: %w", account, err)
	}
	defer rows.Close()

	var refs []CharacterRef
	for rows.Next() {
		var ref CharacterRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Level, &ref.ClassID); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating character rows: %w", err)
	}
	return refs, nil
}

// NameExists reports whether a character name is already taken,
// case-insensitively.
func (r *CharacterRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM characters WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking character name %q: %w", name, err)
	}
	return exists, nil
}

// Delete removes the character row; satellite rows go with it through
// the foreign keys.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE character_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting character %d: not found", id)
	}
	return nil
}
