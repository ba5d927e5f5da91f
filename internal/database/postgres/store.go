// Package postgres implements the repository interfaces on PostgreSQL.
// Transactions hold row locks taken with SELECT ... FOR UPDATE until they end.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

// Store implements repository.Character, repository.Inventory and repository.Catalog
type Store struct {
	db *pgxpool.Pool
}

var (
	_ repository.Character = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Catalog   = (*Store)(nil)
)

// NewStore creates a store on an open pool
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BeginTx starts a unit of work
func (s *Store) BeginTx(ctx context.Context) (repository.GameTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &gameTx{tx: tx}, nil
}

// ---- Characters ----

func (s *Store) GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error) {
	return getOne[domain.Character](ctx, s.db, domain.ErrCharacterNotFound, ErrMsgFailedToGetCharacter, queryGetCharacter, characterID)
}

func (s *Store) ListCharacters(ctx context.Context, userID uuid.UUID) ([]domain.Character, error) {
	return getAll[domain.Character](ctx, s.db, ErrMsgFailedToListCharacters, queryListCharacters, userID)
}

func (s *Store) GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error) {
	return getAttributes(ctx, s.db, characterID)
}

func (s *Store) GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error) {
	return getCooldown(ctx, s.db, characterID, cooldownType)
}

func (s *Store) DeleteCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) error {
	if _, err := s.db.Exec(ctx, queryDeleteCooldown, characterID, string(cooldownType)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCooldown, err)
	}
	return nil
}

func (s *Store) GetCharacterLocation(ctx context.Context, characterID int64) (*domain.CharacterLocation, error) {
	return getOne[domain.CharacterLocation](ctx, s.db, nil, ErrMsgFailedToGetLocation, queryGetCharacterLocation, characterID)
}

func (s *Store) SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error {
	return setCharacterLocation(ctx, s.db, loc)
}

// ---- Inventory ----

func (s *Store) GetInventoryByCharacter(ctx context.Context, characterID int64) (*domain.Inventory, error) {
	return getOne[domain.Inventory](ctx, s.db, domain.ErrInventoryNotFound, ErrMsgFailedToGetInventory, queryGetInventoryByCharacter, characterID)
}

func (s *Store) ListItems(ctx context.Context, inventoryID int64) ([]domain.Item, error) {
	return getAll[domain.Item](ctx, s.db, ErrMsgFailedToListItems, queryListItems, inventoryID)
}

func (s *Store) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	return getOne[domain.Item](ctx, s.db, domain.ErrItemNotFound, ErrMsgFailedToGetItem, queryGetItem, itemID)
}

// ---- Catalog ----

func (s *Store) ListBlueprints(ctx context.Context) ([]domain.ItemBlueprint, error) {
	return getAll[domain.ItemBlueprint](ctx, s.db, ErrMsgFailedToListBlueprints, queryListBlueprints)
}

func (s *Store) GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error) {
	return getBlueprint(ctx, s.db, blueprintID)
}

// UpsertBlueprint inserts or updates a blueprint by its unique name
func (s *Store) UpsertBlueprint(ctx context.Context, bp *domain.ItemBlueprint) error {
	err := s.db.QueryRow(ctx, queryUpsertBlueprint,
		bp.Name, string(bp.ItemType), string(bp.SlotType),
		bp.IsConsumable, bp.IsStackable, bp.IsDroppable, bp.BaseCost,
	).Scan(&bp.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertBlueprint, err)
	}
	return nil
}

func (s *Store) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return getAll[domain.Location](ctx, s.db, ErrMsgFailedToListLocations, queryListLocations)
}

func (s *Store) GetLocation(ctx context.Context, locationID int64) (*domain.Location, error) {
	return getOne[domain.Location](ctx, s.db, domain.ErrLocationNotFound, ErrMsgFailedToGetLocation, queryGetLocation, locationID)
}

// UpsertLocation inserts or updates a location by its unique name
func (s *Store) UpsertLocation(ctx context.Context, loc *domain.Location) error {
	err := s.db.QueryRow(ctx, queryUpsertLocation, loc.Name, loc.MinLevel, string(loc.Type), loc.IsActive).Scan(&loc.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertLocation, err)
	}
	return nil
}

func (s *Store) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	return getOne[domain.SyncMetadata](ctx, s.db, nil, ErrMsgFailedToGetSyncMetadata, queryGetSyncMetadata, configName)
}

func (s *Store) UpsertSyncMetadata(ctx context.Context, md *domain.SyncMetadata) error {
	if _, err := s.db.Exec(ctx, queryUpsertSyncMetadata, md.ConfigName, md.LastSyncTime, md.FileHash); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSyncMetadata, err)
	}
	return nil
}
