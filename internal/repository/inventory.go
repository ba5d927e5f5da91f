package repository

import (
	"context"

	"github.com/osse101/wwwhero/internal/domain"
)

// Inventory defines the interface for inventory and item persistence
type Inventory interface {
	BeginTx(ctx context.Context) (GameTx, error)

	GetInventoryByCharacter(ctx context.Context, characterID int64) (*domain.Inventory, error)
	ListItems(ctx context.Context, inventoryID int64) ([]domain.Item, error)
	GetItem(ctx context.Context, itemID int64) (*domain.Item, error)
}
