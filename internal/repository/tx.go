package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
)

var (
	// ErrTxClosed is returned by non-database stores when a finished tx is used again
	ErrTxClosed = errors.New("tx is closed")

	// ErrUniqueViolation is returned when a write collides with a unique key
	// that has no more specific domain error
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// Tx defines the lifecycle of a unit of work
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// GameTx defines the reads and writes the engine performs atomically.
// Rows fetched with a ForUpdate method stay locked until Commit or Rollback,
// which serializes read-modify-write on the same character or inventory.
//
// Lookups of optional rows (attributes, cooldowns, merged items) return
// (nil, nil) when the row does not exist. ForUpdate lookups return the
// matching domain not-found error instead.
type GameTx interface {
	Tx

	InsertCharacter(ctx context.Context, character *domain.Character) error
	GetCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Character, error)
	UpdateCharacterLevel(ctx context.Context, characterID int64, level int, updatedAt time.Time) error

	GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error)
	SaveAttributes(ctx context.Context, attrs domain.CharacterAttributes) error

	GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error)
	UpsertCooldown(ctx context.Context, cooldown domain.CharacterCooldown) error

	SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error

	InsertInventory(ctx context.Context, inventory *domain.Inventory) error
	GetInventoryForUpdate(ctx context.Context, inventoryID int64) (*domain.Inventory, error)
	GetInventoryByCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Inventory, error)
	UpdateInventorySpace(ctx context.Context, inventoryID int64, maxSpace int) error
	CountItems(ctx context.Context, inventoryID int64) (int, error)

	GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error)
	GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error)
	FindMergedItem(ctx context.Context, inventoryID, blueprintID int64) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item domain.Item) error
}

// SafeRollback rolls back a transaction and logs any error other than the tx
// already being closed. Meant for defer right after BeginTx.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
