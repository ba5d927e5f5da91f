// Package inventory enforces the capacity invariant of character inventories
// and handles dropping items. Capacity is counted in item rows: a stack of
// gold is one row regardless of its amount.
package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/repository"
)

// BlueprintLookup resolves catalog entries by id
type BlueprintLookup interface {
	GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error)
}

// Service manages inventory capacity and item removal
type Service interface {
	// CheckCapacity reports whether one more item row fits. It must run in
	// the same tx as the insert it guards, after the inventory row is locked.
	CheckCapacity(ctx context.Context, tx repository.GameTx, inv domain.Inventory) (bool, error)

	// EnsureCapacity is CheckCapacity returning domain.ErrInventoryFull
	EnsureCapacity(ctx context.Context, tx repository.GameTx, inv domain.Inventory) error

	// GrowCapacity adds one slot inside a level-up transaction
	GrowCapacity(ctx context.Context, tx repository.GameTx, inv *domain.Inventory) error

	// Drop removes one unit of a stacked item, or detaches the item row
	// entirely when its amount is 1 or dropAll is set
	Drop(ctx context.Context, characterID, itemID int64, dropAll bool) (*domain.Item, error)

	// List returns the character's attached items with their blueprints
	List(ctx context.Context, characterID int64) (*domain.InventoryView, error)
}

type service struct {
	repo       repository.Inventory
	blueprints BlueprintLookup
}

// NewService creates an inventory service
func NewService(repo repository.Inventory, blueprints BlueprintLookup) Service {
	return &service{repo: repo, blueprints: blueprints}
}

func (s *service) CheckCapacity(ctx context.Context, tx repository.GameTx, inv domain.Inventory) (bool, error) {
	count, err := tx.CountItems(ctx, inv.ID)
	if err != nil {
		return false, fmt.Errorf(ErrMsgCountItemsFailed, err)
	}
	return inv.HasSpace(count), nil
}

func (s *service) EnsureCapacity(ctx context.Context, tx repository.GameTx, inv domain.Inventory) error {
	ok, err := s.CheckCapacity(ctx, tx, inv)
	if err != nil {
		return err
	}
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgInventoryFull, "inventoryID", inv.ID, "maxSpace", inv.MaxSpace)
		return domain.ErrInventoryFull
	}
	return nil
}

func (s *service) GrowCapacity(ctx context.Context, tx repository.GameTx, inv *domain.Inventory) error {
	newSpace := inv.MaxSpace + domain.CapacityGrowthPerLevel
	if err := tx.UpdateInventorySpace(ctx, inv.ID, newSpace); err != nil {
		return fmt.Errorf(ErrMsgGrowCapacityFailed, err)
	}
	inv.MaxSpace = newSpace

	logger.FromContext(ctx).Debug(LogMsgCapacityGrown, "inventoryID", inv.ID, "maxSpace", newSpace)
	return nil
}

func (s *service) Drop(ctx context.Context, characterID, itemID int64, dropAll bool) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryByCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}

	item, err := tx.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if !item.Attached() {
		return nil, fmt.Errorf(ErrMsgItemNotInInventory, domain.ErrItemNotInInventory, itemID)
	}
	if *item.InventoryID != inv.ID {
		return nil, fmt.Errorf(ErrMsgItemNotOwned, domain.ErrItemNotFound, itemID, characterID)
	}

	bp, err := tx.GetBlueprint(ctx, item.BlueprintID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetBlueprintFailed, err)
	}
	if !bp.IsDroppable {
		log.Warn(LogMsgDropRejected, "itemID", itemID, "blueprint", bp.Name)
		return nil, fmt.Errorf(ErrMsgNotDroppable, domain.ErrNotDroppable, bp.Name)
	}

	applyDrop(item, dropAll)

	if err := tx.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateItemFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.RecordDrop(dropAll)
	if item.Attached() {
		log.Info(LogMsgItemDropped, "itemID", itemID, "amount", item.Amount)
	} else {
		log.Info(LogMsgItemDetached, "itemID", itemID)
	}
	return item, nil
}

// applyDrop decrements a stack by one or clears the inventory reference.
// The row itself is never deleted.
func applyDrop(item *domain.Item, dropAll bool) {
	if item.Amount > 1 && !dropAll {
		item.Amount--
		return
	}
	item.InventoryID = nil
}

func (s *service) List(ctx context.Context, characterID int64) (*domain.InventoryView, error) {
	inv, err := s.repo.GetInventoryByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}

	items, err := s.repo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}

	view := &domain.InventoryView{Inventory: *inv, Entries: make([]domain.InventoryEntry, 0, len(items))}
	for _, item := range items {
		bp, err := s.blueprints.GetBlueprint(ctx, item.BlueprintID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetBlueprintFailed, err)
		}
		view.Entries = append(view.Entries, domain.InventoryEntry{Item: item, Blueprint: *bp})
	}
	return view, nil
}
