// Package fixtures seeds an in-memory store with characters, catalog rows
// and items for service tests.
package fixtures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/osse101/wwwhero/internal/database/memory"
	"github.com/osse101/wwwhero/internal/domain"
)

// World is a memory store plus helpers to populate it
type World struct {
	t     testing.TB
	Store *memory.Store
	Now   time.Time
}

// NewWorld creates an empty world with a fixed clock
func NewWorld(t testing.TB) *World {
	t.Helper()
	return &World{
		t:     t,
		Store: memory.NewStore(),
		Now:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Hero is a seeded character with its inventory
type Hero struct {
	Character domain.Character
	Inventory domain.Inventory
}

// AddHero inserts a character at level with a default-sized inventory
func (w *World) AddHero(name string, level int) Hero {
	w.t.Helper()
	return w.AddHeroWithSpace(name, level, domain.DefaultInventorySpace)
}

// AddHeroWithSpace inserts a character at level whose inventory holds maxSpace rows
func (w *World) AddHeroWithSpace(name string, level, maxSpace int) Hero {
	w.t.Helper()
	ctx := context.Background()

	tx, err := w.Store.BeginTx(ctx)
	require.NoError(w.t, err)

	c := &domain.Character{
		UserID:    uuid.New(),
		Name:      name,
		Level:     level,
		CreatedAt: w.Now,
		UpdatedAt: w.Now,
	}
	require.NoError(w.t, tx.InsertCharacter(ctx, c))

	inv := &domain.Inventory{CharacterID: c.ID, MaxSpace: maxSpace}
	require.NoError(w.t, tx.InsertInventory(ctx, inv))
	require.NoError(w.t, tx.Commit(ctx))

	return Hero{Character: *c, Inventory: *inv}
}

// AddBlueprint inserts a catalog entry
func (w *World) AddBlueprint(bp domain.ItemBlueprint) domain.ItemBlueprint {
	w.t.Helper()
	if bp.SlotType == "" {
		bp.SlotType = domain.SlotNone
	}
	require.NoError(w.t, w.Store.UpsertBlueprint(context.Background(), &bp))
	return bp
}

// AddLocation inserts an active location
func (w *World) AddLocation(name string, minLevel int, locType domain.LocationType) domain.Location {
	w.t.Helper()
	loc := domain.Location{Name: name, MinLevel: minLevel, Type: locType, IsActive: true}
	require.NoError(w.t, w.Store.UpsertLocation(context.Background(), &loc))
	return loc
}

// AddItem attaches a fresh item row for bp to the hero's inventory
func (w *World) AddItem(h Hero, bp domain.ItemBlueprint, amount int) domain.Item {
	w.t.Helper()
	ctx := context.Background()

	tx, err := w.Store.BeginTx(ctx)
	require.NoError(w.t, err)

	invID := h.Inventory.ID
	item := &domain.Item{
		BlueprintID: bp.ID,
		InventoryID: &invID,
		Name:        bp.Name,
		Level:       1,
		Amount:      amount,
		Rarity:      domain.RarityCommon,
		MergeKey:    bp.MergeKeyed(),
	}
	require.NoError(w.t, tx.InsertItem(ctx, item))
	require.NoError(w.t, tx.Commit(ctx))
	return *item
}

// FillInventory attaches count junk items to the hero's inventory
func (w *World) FillInventory(h Hero, count int) {
	w.t.Helper()
	for i := 0; i < count; i++ {
		bp := w.AddBlueprint(domain.ItemBlueprint{
			Name:        fmt.Sprintf("filler-%d-%d", h.Inventory.ID, i),
			ItemType:    domain.ItemTypeJunk,
			IsDroppable: true,
			BaseCost:    1,
		})
		w.AddItem(h, bp, 1)
	}
}

// Items lists the hero's attached items
func (w *World) Items(h Hero) []domain.Item {
	w.t.Helper()
	items, err := w.Store.ListItems(context.Background(), h.Inventory.ID)
	require.NoError(w.t, err)
	return items
}

// Inventory re-reads the hero's inventory
func (w *World) Inventory(h Hero) domain.Inventory {
	w.t.Helper()
	inv, err := w.Store.GetInventoryByCharacter(context.Background(), h.Character.ID)
	require.NoError(w.t, err)
	return *inv
}

// Character re-reads the hero's character row
func (w *World) Character(h Hero) domain.Character {
	w.t.Helper()
	c, err := w.Store.GetCharacter(context.Background(), h.Character.ID)
	require.NoError(w.t, err)
	return *c
}

// Standard catalog entries used across tests
var (
	Gold   = domain.ItemBlueprint{Name: "Gold", ItemType: domain.ItemTypeGold, IsDroppable: true, BaseCost: 1}
	Sword  = domain.ItemBlueprint{Name: "Sword", ItemType: domain.ItemTypeWeapon, SlotType: domain.SlotMainHand, IsDroppable: true, BaseCost: 10}
	Helmet = domain.ItemBlueprint{Name: "Helmet", ItemType: domain.ItemTypeArmor, SlotType: domain.SlotHead, IsDroppable: true, BaseCost: 8}
	Bone   = domain.ItemBlueprint{Name: "Bone", ItemType: domain.ItemTypeJunk, IsStackable: true, IsDroppable: true, BaseCost: 2}
	Relic  = domain.ItemBlueprint{Name: "Relic", ItemType: domain.ItemTypeQuest, BaseCost: 50}
)
