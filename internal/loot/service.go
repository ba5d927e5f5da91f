// Package loot generates procedural items into character inventories.
package loot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/repository"
)

// Namer produces display names for newly created items
type Namer interface {
	DisplayName(bp domain.ItemBlueprint, rarity domain.Rarity, now time.Time) string
}

// CatalogSource supplies read-only reference data
type CatalogSource interface {
	ListBlueprints(ctx context.Context) ([]domain.ItemBlueprint, error)
	GetLocation(ctx context.Context, locationID int64) (*domain.Location, error)
}

// Request carries the already resolved context of a loot roll
type Request struct {
	Character domain.Character
	Inventory domain.Inventory
	Location  domain.Location
	Catalog   []domain.ItemBlueprint
	Now       time.Time
}

// Drop is the outcome of a loot roll
type Drop struct {
	Item      domain.Item          `json:"item"`
	Blueprint domain.ItemBlueprint `json:"blueprint"`
	// Quantity gained: the gold delta for gold, otherwise 1
	Quantity int `json:"quantity"`
	// Merged is true when an existing row absorbed the drop
	Merged bool `json:"merged"`
}

// Service defines loot generation
type Service interface {
	// GenerateLoot rolls one blueprint from req.Catalog into req.Inventory
	GenerateLoot(ctx context.Context, req Request) (*Drop, error)

	// Search resolves the character's inventory, location and the catalog,
	// then generates loot
	Search(ctx context.Context, characterID int64, now time.Time) (*Drop, error)
}

type service struct {
	characters  repository.Character
	repo        repository.Inventory
	catalog     CatalogSource
	inventories inventory.Service
	roller      random.Source
	namer       Namer
}

// NewService creates a loot service. A nil namer uses blueprint names.
func NewService(characters repository.Character, repo repository.Inventory, catalog CatalogSource, inventories inventory.Service, roller random.Source, namer Namer) Service {
	return &service{
		characters:  characters,
		repo:        repo,
		catalog:     catalog,
		inventories: inventories,
		roller:      roller,
		namer:       namer,
	}
}

func (s *service) Search(ctx context.Context, characterID int64, now time.Time) (*Drop, error) {
	character, err := s.characters.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	inv, err := s.repo.GetInventoryByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}

	charLoc, err := s.characters.GetCharacterLocation(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLocationFailed, err)
	}
	if charLoc == nil {
		return nil, domain.ErrNoLocation
	}
	location, err := s.catalog.GetLocation(ctx, charLoc.LocationID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLocationFailed, err)
	}

	blueprints, err := s.catalog.ListBlueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCatalogFailed, err)
	}

	return s.GenerateLoot(ctx, Request{
		Character: *character,
		Inventory: *inv,
		Location:  *location,
		Catalog:   blueprints,
		Now:       now,
	})
}

func (s *service) GenerateLoot(ctx context.Context, req Request) (*Drop, error) {
	log := logger.FromContext(ctx)

	drop, err := s.generate(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInventoryFull) || errors.Is(err, domain.ErrNoBlueprint) {
			log.Warn(LogMsgLootRejected, "characterID", req.Character.ID, "inventoryID", req.Inventory.ID, "error", err)
		}
		metrics.RecordLootRejected(err)
		return nil, err
	}

	metrics.RecordLoot(drop.Blueprint, drop.Item, drop.Quantity)
	log.Info(LogMsgLootGenerated,
		"characterID", req.Character.ID,
		"item", drop.Item.Name,
		"type", drop.Blueprint.ItemType,
		"rarity", drop.Item.Rarity,
		"quantity", drop.Quantity,
		"merged", drop.Merged,
		"at", req.Now)
	return drop, nil
}

func (s *service) generate(ctx context.Context, req Request) (*Drop, error) {
	if req.Inventory.CharacterID != req.Character.ID {
		return nil, fmt.Errorf(ErrMsgInventoryMismatch, domain.ErrInvalidInput, req.Inventory.ID, req.Character.ID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock the inventory so the capacity check and the insert are one step
	inv, err := tx.GetInventoryForUpdate(ctx, req.Inventory.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	if err := s.inventories.EnsureCapacity(ctx, tx, *inv); err != nil {
		return nil, err
	}

	if len(req.Catalog) == 0 {
		return nil, domain.ErrNoBlueprint
	}
	bp := selectBlueprint(s.roller, req.Catalog)

	var drop *Drop
	switch bp.ItemType {
	case domain.ItemTypeGold:
		drop, err = s.awardGold(ctx, tx, inv.ID, bp, req.Character.Level, req.Now)
	case domain.ItemTypeQuest:
		drop, err = s.awardQuestItem(ctx, tx, inv.ID, bp, req)
	default:
		drop, err = s.awardItem(ctx, tx, inv.ID, bp, req.Location, req.Now)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return drop, nil
}

// awardGold adds a level-scaled delta to the inventory's single gold row
func (s *service) awardGold(ctx context.Context, tx repository.GameTx, inventoryID int64, bp domain.ItemBlueprint, level int, now time.Time) (*Drop, error) {
	item, merged, err := s.findOrNewMerged(ctx, tx, inventoryID, bp, now, func(item *domain.Item) {
		item.Level = MinItemLevel
		item.Amount = 0
		item.Rarity = domain.RarityCommon
	})
	if err != nil {
		return nil, err
	}

	delta := rollGold(s.roller, level)
	item.Amount += delta

	if err := s.save(ctx, tx, item, merged); err != nil {
		return nil, err
	}
	return &Drop{Item: *item, Blueprint: bp, Quantity: delta, Merged: merged}, nil
}

// awardQuestItem grants a LEGENDARY quest item once per inventory; a repeat
// roll of the same quest blueprint pays out gold instead
func (s *service) awardQuestItem(ctx context.Context, tx repository.GameTx, inventoryID int64, bp domain.ItemBlueprint, req Request) (*Drop, error) {
	existing, err := tx.FindMergedItem(ctx, inventoryID, bp.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindMergedFailed, err)
	}
	if existing != nil {
		logger.FromContext(ctx).Debug(LogMsgQuestFallback, "inventoryID", inventoryID, "blueprint", bp.Name)
		gold, ok := findGoldBlueprint(req.Catalog)
		if !ok {
			return nil, fmt.Errorf(ErrMsgNoGoldBlueprint, domain.ErrNoBlueprint)
		}
		return s.awardGold(ctx, tx, inventoryID, gold, req.Character.Level, req.Now)
	}

	item := s.newItem(inventoryID, bp, domain.RarityLegendary, req.Now)
	item.Level = QuestItemLevel
	item.Amount = 1
	item.Cost = bp.BaseCost

	if err := s.save(ctx, tx, item, false); err != nil {
		return nil, err
	}
	return &Drop{Item: *item, Blueprint: bp, Quantity: 1}, nil
}

// awardItem rolls stats for ARMOR, WEAPON or JUNK. Stackable blueprints
// restack onto their existing row without re-rolling. A new stack is COMMON
// at the rolled level, priced as COMMON and without damage.
func (s *service) awardItem(ctx context.Context, tx repository.GameTx, inventoryID int64, bp domain.ItemBlueprint, location domain.Location, now time.Time) (*Drop, error) {
	st := rollStats(s.roller, bp, location)

	if bp.IsStackable {
		item, merged, err := s.findOrNewMerged(ctx, tx, inventoryID, bp, now, func(item *domain.Item) {
			item.Level = st.level
			item.Cost = itemCost(st.level, domain.RarityCommon, bp)
			item.Amount = 0
		})
		if err != nil {
			return nil, err
		}
		item.Amount++
		if err := s.save(ctx, tx, item, merged); err != nil {
			return nil, err
		}
		return &Drop{Item: *item, Blueprint: bp, Quantity: 1, Merged: merged}, nil
	}

	item := s.newItem(inventoryID, bp, st.rarity, now)
	applyStats(item, st)
	item.Amount = 1

	if err := s.save(ctx, tx, item, false); err != nil {
		return nil, err
	}
	return &Drop{Item: *item, Blueprint: bp, Quantity: 1}, nil
}

// findOrNewMerged returns the inventory's row for bp, or a new unsaved row
// initialized by init. merged reports which.
func (s *service) findOrNewMerged(ctx context.Context, tx repository.GameTx, inventoryID int64, bp domain.ItemBlueprint, now time.Time, init func(*domain.Item)) (*domain.Item, bool, error) {
	existing, err := tx.FindMergedItem(ctx, inventoryID, bp.ID)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgFindMergedFailed, err)
	}
	if existing != nil {
		return existing, true, nil
	}

	item := s.newItem(inventoryID, bp, domain.RarityCommon, now)
	init(item)
	return item, false, nil
}

func (s *service) newItem(inventoryID int64, bp domain.ItemBlueprint, rarity domain.Rarity, now time.Time) *domain.Item {
	invID := inventoryID
	name := bp.Name
	if s.namer != nil {
		name = s.namer.DisplayName(bp, rarity, now)
	}
	return &domain.Item{
		BlueprintID: bp.ID,
		InventoryID: &invID,
		Name:        name,
		Rarity:      rarity,
		MergeKey:    bp.MergeKeyed(),
	}
}

func (s *service) save(ctx context.Context, tx repository.GameTx, item *domain.Item, exists bool) error {
	if exists {
		if err := tx.UpdateItem(ctx, *item); err != nil {
			return fmt.Errorf(ErrMsgUpdateItemFailed, err)
		}
		return nil
	}
	if err := tx.InsertItem(ctx, item); err != nil {
		return fmt.Errorf(ErrMsgInsertItemFailed, err)
	}
	return nil
}

func applyStats(item *domain.Item, st stats) {
	item.Level = st.level
	item.MinDamage = st.minDamage
	item.MaxDamage = st.maxDamage
	item.Cost = st.cost
}

func findGoldBlueprint(catalog []domain.ItemBlueprint) (domain.ItemBlueprint, bool) {
	for _, bp := range catalog {
		if bp.ItemType == domain.ItemTypeGold {
			return bp, true
		}
	}
	return domain.ItemBlueprint{}, false
}
