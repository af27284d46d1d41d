package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmine/core/internal/game/quest"
	"github.com/skillmine/core/internal/model"
)

// Profile bundles everything the database stores for one character.
type Profile struct {
	CharacterID int64 // zero until the first save assigns one
	Account     string
	Character   model.CharacterSnapshot
	Quests      quest.Snapshot
	Pet         *model.PetSnapshot // nil when the character has no companion
}

// PersistenceService saves and loads whole character profiles. Every
// save runs in a single transaction, so a crash never leaves a profile
// split across two states.
type PersistenceService struct {
	pool       *pgxpool.Pool
	characters *CharacterRepository
	items      *ItemRepository
	skills     *SkillRepository
	quests     *QuestRepository
	pets       *PetRepository
}

// NewPersistenceService wires the repositories over one pool.
func NewPersistenceService(pool *pgxpool.Pool) *PersistenceService {
	return &PersistenceService{
		pool:       pool,
		characters: NewCharacterRepository(pool),
		items:      NewItemRepository(pool),
		skills:     NewSkillRepository(pool),
		quests:     NewQuestRepository(pool),
		pets:       NewPetRepository(pool),
	}
}

// Characters exposes the character repository for row-level operations
// that fall outside whole-profile saves.
func (s *PersistenceService) Characters() *CharacterRepository {
	return s.characters
}

// CreateProfile inserts a brand-new character with all satellite rows
// in one transaction and stamps the assigned id on the profile.
func (s *PersistenceService) CreateProfile(ctx context.Context, profile *Profile) error {
	name := profile.Character.Name

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for character %q: %w", name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "character", name, "error", err)
		}
	}()

	id, err := s.characters.CreateTx(ctx, tx, profile.Account, profile.Character)
	if err != nil {
		return err
	}
	if err := s.saveSatellitesTx(ctx, tx, id, profile); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for character %q: %w", name, err)
	}

	profile.CharacterID = id
	slog.Info("character created", "character", name, "characterID", id, "account", profile.Account)
	return nil
}

// SaveProfile writes the whole profile in a single transaction.
// Ensures consistency: either all data is saved or none.
func (s *PersistenceService) SaveProfile(ctx context.Context, profile *Profile) error {
	id := profile.CharacterID
	if id == 0 {
		return fmt.Errorf("saving character %q: profile has no character id", profile.Character.Name)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for character %d: %w", id, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "characterID", id, "error", err)
		}
	}()

	if err := s.characters.UpdateTx(ctx, tx, id, profile.Character); err != nil {
		return err
	}
	if err := s.saveSatellitesTx(ctx, tx, id, profile); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for character %d: %w", id, err)
	}

	slog.Info("profile saved",
		"characterID", id,
		"character", profile.Character.Name,
		"level", profile.Character.Level,
		"items", len(profile.Character.Items),
		"activeQuests", len(profile.Quests.Active))
	return nil
}

func (s *PersistenceService) saveSatellitesTx(ctx context.Context, tx pgx.Tx, id int64, profile *Profile) error {
	if err := s.items.SaveAllTx(ctx, tx, id, profile.Character.Items, profile.Character.Equipment); err != nil {
		return err
	}
	if err := s.skills.SaveAllTx(ctx, tx, id, profile.Character.UnlockedNodes, profile.Character.KnownAbilities); err != nil {
		return err
	}
	if err := s.quests.SaveAllTx(ctx, tx, id, profile.Quests); err != nil {
		return err
	}
	return s.pets.SaveTx(ctx, tx, id, profile.Pet)
}

// LoadProfile assembles the full profile for a character id.
// Returns nil, nil if the character does not exist.
func (s *PersistenceService) LoadProfile(ctx context.Context, characterID int64) (*Profile, error) {
	row, err := s.characters.Load(ctx, characterID)
	if err != nil || row == nil {
		return nil, err
	}
	return s.assemble(ctx, row)
}

// FindProfile assembles the full profile for a character name.
// Returns nil, nil if the character does not exist.
func (s *PersistenceService) FindProfile(ctx context.Context, name string) (*Profile, error) {
	row, err := s.characters.LoadByName(ctx, name)
	if err != nil || row == nil {
		return nil, err
	}
	return s.assemble(ctx, row)
}

func (s *PersistenceService) assemble(ctx context.Context, row *CharacterRow) (*Profile, error) {
	snap := row.Snapshot
	var err error
	snap.Items, snap.Equipment, err = s.items.Load(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	snap.UnlockedNodes, snap.KnownAbilities, err = s.skills.Load(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	quests, err := s.quests.Load(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	pet, err := s.pets.Load(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		CharacterID: row.ID,
		Account:     row.Account,
		Character:   snap,
		Quests:      quests,
		Pet:         pet,
	}, nil
}

// DeleteProfile removes the character and everything hanging off it.
func (s *PersistenceService) DeleteProfile(ctx context.Context, characterID int64) error {
	return s.characters.Delete(ctx, characterID)
}
