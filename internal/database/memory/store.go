// Package memory is an in-process store implementing the repository
// interfaces. Entities live in id-keyed tables with explicit reference
// fields; transactions stage writes and take per-entity locks so that
// concurrent units of work on the same character or inventory serialize.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/osse101/wwwhero/internal/concurrency"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

type cooldownKey struct {
	characterID  int64
	cooldownType domain.CooldownType
}

// Store implements repository.Character, repository.Inventory and repository.Catalog
type Store struct {
	mu    sync.RWMutex
	locks *concurrency.LockManager

	characterSeq atomic.Int64
	inventorySeq atomic.Int64
	itemSeq      atomic.Int64
	blueprintSeq atomic.Int64
	locationSeq  atomic.Int64

	characters    map[int64]domain.Character
	attributes    map[int64]domain.CharacterAttributes
	cooldowns     map[cooldownKey]domain.CharacterCooldown
	charLocations map[int64]domain.CharacterLocation
	inventories   map[int64]domain.Inventory
	items         map[int64]domain.Item
	blueprints    map[int64]domain.ItemBlueprint
	locations     map[int64]domain.Location
	syncMetadata  map[string]domain.SyncMetadata
}

var (
	_ repository.Character = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Catalog   = (*Store)(nil)
)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		locks:         concurrency.NewLockManager(),
		characters:    make(map[int64]domain.Character),
		attributes:    make(map[int64]domain.CharacterAttributes),
		cooldowns:     make(map[cooldownKey]domain.CharacterCooldown),
		charLocations: make(map[int64]domain.CharacterLocation),
		inventories:   make(map[int64]domain.Inventory),
		items:         make(map[int64]domain.Item),
		blueprints:    make(map[int64]domain.ItemBlueprint),
		locations:     make(map[int64]domain.Location),
		syncMetadata:  make(map[string]domain.SyncMetadata),
	}
}

// BeginTx starts a unit of work
func (s *Store) BeginTx(ctx context.Context) (repository.GameTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newTx(s), nil
}

// ---- Characters ----

func (s *Store) GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[characterID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (s *Store) ListCharacters(ctx context.Context, userID uuid.UUID) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Character
	for _, c := range s.characters {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attributes[characterID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *Store) GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cd, ok := s.cooldowns[cooldownKey{characterID, cooldownType}]
	if !ok {
		return nil, nil
	}
	return &cd, nil
}

func (s *Store) DeleteCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cooldowns, cooldownKey{characterID, cooldownType})
	return nil
}

func (s *Store) GetCharacterLocation(ctx context.Context, characterID int64) (*domain.CharacterLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.charLocations[characterID]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (s *Store) SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[loc.CharacterID]; !ok {
		return domain.ErrCharacterNotFound
	}
	if _, ok := s.locations[loc.LocationID]; !ok {
		return domain.ErrLocationNotFound
	}
	s.charLocations[loc.CharacterID] = loc
	return nil
}

// ---- Inventory ----

func (s *Store) GetInventoryByCharacter(ctx context.Context, characterID int64) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.inventories {
		if inv.CharacterID == characterID {
			return &inv, nil
		}
	}
	return nil, domain.ErrInventoryNotFound
}

func (s *Store) ListItems(ctx context.Context, inventoryID int64) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Item
	for _, item := range s.items {
		if item.InventoryID != nil && *item.InventoryID == inventoryID {
			out = append(out, cloneItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	c := cloneItem(item)
	return &c, nil
}

// ---- Catalog ----

func (s *Store) ListBlueprints(ctx context.Context) ([]domain.ItemBlueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ItemBlueprint, 0, len(s.blueprints))
	for _, bp := range s.blueprints {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bp, ok := s.blueprints[blueprintID]
	if !ok {
		return nil, domain.ErrBlueprintNotFound
	}
	return &bp, nil
}

// UpsertBlueprint inserts or updates a blueprint by its unique name
func (s *Store) UpsertBlueprint(ctx context.Context, blueprint *domain.ItemBlueprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.blueprints {
		if strings.EqualFold(existing.Name, blueprint.Name) {
			blueprint.ID = id
			s.blueprints[id] = *blueprint
			return nil
		}
	}
	blueprint.ID = s.blueprintSeq.Add(1)
	s.blueprints[blueprint.ID] = *blueprint
	return nil
}

func (s *Store) ListLocations(ctx context.Context) ([]domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MinLevel == out[j].MinLevel {
			return out[i].ID < out[j].ID
		}
		return out[i].MinLevel < out[j].MinLevel
	})
	return out, nil
}

func (s *Store) GetLocation(ctx context.Context, locationID int64) (*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[locationID]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	return &loc, nil
}

// UpsertLocation inserts or updates a location by its unique name
func (s *Store) UpsertLocation(ctx context.Context, location *domain.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.locations {
		if strings.EqualFold(existing.Name, location.Name) {
			location.ID = id
			s.locations[id] = *location
			return nil
		}
	}
	location.ID = s.locationSeq.Add(1)
	s.locations[location.ID] = *location
	return nil
}

func (s *Store) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	md, ok := s.syncMetadata[configName]
	if !ok {
		return nil, nil
	}
	return &md, nil
}

func (s *Store) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncMetadata[metadata.ConfigName] = *metadata
	return nil
}

func cloneItem(item domain.Item) domain.Item {
	if item.InventoryID != nil {
		id := *item.InventoryID
		item.InventoryID = &id
	}
	return item
}
