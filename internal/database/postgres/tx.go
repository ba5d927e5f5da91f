package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

// gameTx implements repository.GameTx on a pgx transaction
type gameTx struct {
	tx pgx.Tx
}

var _ repository.GameTx = (*gameTx)(nil)

func (t *gameTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *gameTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ---- Characters ----

func (t *gameTx) InsertCharacter(ctx context.Context, c *domain.Character) error {
	err := t.tx.QueryRow(ctx, queryInsertCharacter, c.UserID, c.Name, c.Level, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		if pgErr, ok := asPgError(err, PgErrorCodeUniqueViolation); ok && pgErr.ConstraintName == ConstraintCharacterName {
			return domain.ErrCharacterNameTaken
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertCharacter, err)
	}
	return nil
}

func (t *gameTx) GetCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Character, error) {
	return getOne[domain.Character](ctx, t.tx, domain.ErrCharacterNotFound, ErrMsgFailedToGetCharacter, queryGetCharacterForUpdate, characterID)
}

func (t *gameTx) UpdateCharacterLevel(ctx context.Context, characterID int64, level int, updatedAt time.Time) error {
	return execOne(ctx, t.tx, domain.ErrCharacterNotFound, ErrMsgFailedToUpdateCharacter, queryUpdateCharacterLevel, characterID, level, updatedAt)
}

func (t *gameTx) GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error) {
	return getAttributes(ctx, t.tx, characterID)
}

func (t *gameTx) SaveAttributes(ctx context.Context, a domain.CharacterAttributes) error {
	_, err := t.tx.Exec(ctx, querySaveAttributes, a.CharacterID, a.MaxHP, a.HP, a.Dmg, a.Luck)
	if err != nil {
		if _, ok := asPgError(err, PgErrorCodeForeignKeyViolation); ok {
			return domain.ErrCharacterNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveAttributes, err)
	}
	return nil
}

func (t *gameTx) GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error) {
	return getCooldown(ctx, t.tx, characterID, cooldownType)
}

func (t *gameTx) UpsertCooldown(ctx context.Context, cd domain.CharacterCooldown) error {
	if !cd.Type.Valid() {
		return fmt.Errorf("%w: cooldown type %q", domain.ErrInvalidInput, cd.Type)
	}
	if _, err := t.tx.Exec(ctx, queryUpsertCooldown, cd.CharacterID, string(cd.Type), cd.Until); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertCooldown, err)
	}
	return nil
}

func (t *gameTx) SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error {
	return setCharacterLocation(ctx, t.tx, loc)
}

// ---- Inventory ----

func (t *gameTx) InsertInventory(ctx context.Context, inv *domain.Inventory) error {
	if err := t.tx.QueryRow(ctx, queryInsertInventory, inv.CharacterID, inv.MaxSpace).Scan(&inv.ID); err != nil {
		return uniqueViolation(err, ErrMsgFailedToInsertInventory)
	}
	return nil
}

func (t *gameTx) GetInventoryForUpdate(ctx context.Context, inventoryID int64) (*domain.Inventory, error) {
	return getOne[domain.Inventory](ctx, t.tx, domain.ErrInventoryNotFound, ErrMsgFailedToGetInventory, queryGetInventoryForUpdate, inventoryID)
}

func (t *gameTx) GetInventoryByCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Inventory, error) {
	return getOne[domain.Inventory](ctx, t.tx, domain.ErrInventoryNotFound, ErrMsgFailedToGetInventory, queryGetInventoryByCharacterForUpdate, characterID)
}

func (t *gameTx) UpdateInventorySpace(ctx context.Context, inventoryID int64, maxSpace int) error {
	return execOne(ctx, t.tx, domain.ErrInventoryNotFound, ErrMsgFailedToUpdateInventory, queryUpdateInventorySpace, inventoryID, maxSpace)
}

func (t *gameTx) CountItems(ctx context.Context, inventoryID int64) (int, error) {
	var count int
	if err := t.tx.QueryRow(ctx, queryCountItems, inventoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountItems, err)
	}
	return count, nil
}

// ---- Items ----

func (t *gameTx) GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error) {
	return getBlueprint(ctx, t.tx, blueprintID)
}

func (t *gameTx) GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error) {
	return getOne[domain.Item](ctx, t.tx, domain.ErrItemNotFound, ErrMsgFailedToGetItem, queryGetItemForUpdate, itemID)
}

func (t *gameTx) FindMergedItem(ctx context.Context, inventoryID, blueprintID int64) (*domain.Item, error) {
	return getOne[domain.Item](ctx, t.tx, nil, ErrMsgFailedToGetItem, queryFindMergedItem, inventoryID, blueprintID)
}

func (t *gameTx) InsertItem(ctx context.Context, item *domain.Item) error {
	err := t.tx.QueryRow(ctx, queryInsertItem,
		item.BlueprintID, item.InventoryID, item.Name, item.Level, item.Amount, int(item.Rarity),
		item.MinDamage, item.MaxDamage, item.Defense, item.Health, item.Cost, item.MergeKey,
	).Scan(&item.ID)
	if err != nil {
		return uniqueViolation(err, ErrMsgFailedToInsertItem)
	}
	return nil
}

func (t *gameTx) UpdateItem(ctx context.Context, item domain.Item) error {
	return execOne(ctx, t.tx, domain.ErrItemNotFound, ErrMsgFailedToUpdateItem, queryUpdateItem,
		item.ID, item.InventoryID, item.Name, item.Level, item.Amount, int(item.Rarity),
		item.MinDamage, item.MaxDamage, item.Defense, item.Health, item.Cost,
	)
}
