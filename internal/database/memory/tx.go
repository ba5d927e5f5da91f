package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/wwwhero/internal/concurrency"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

var (
	// ErrTxClosed is returned when a committed or rolled back tx is used again
	ErrTxClosed = repository.ErrTxClosed

	// ErrUniqueViolation mirrors a unique-constraint failure in a real database
	ErrUniqueViolation = repository.ErrUniqueViolation
)

// tx stages writes locally and applies them to the store on Commit.
// Entity locks taken through the session are held until Commit or Rollback.
type tx struct {
	s      *Store
	locks  *concurrency.Session
	closed bool

	characters    map[int64]domain.Character
	attributes    map[int64]domain.CharacterAttributes
	cooldowns     map[cooldownKey]domain.CharacterCooldown
	charLocations map[int64]domain.CharacterLocation
	inventories   map[int64]domain.Inventory
	items         map[int64]domain.Item
}

func newTx(s *Store) *tx {
	return &tx{
		s:             s,
		locks:         s.locks.NewSession(),
		characters:    make(map[int64]domain.Character),
		attributes:    make(map[int64]domain.CharacterAttributes),
		cooldowns:     make(map[cooldownKey]domain.CharacterCooldown),
		charLocations: make(map[int64]domain.CharacterLocation),
		inventories:   make(map[int64]domain.Inventory),
		items:         make(map[int64]domain.Item),
	}
}

func (t *tx) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true
	defer t.locks.ReleaseAll()

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for id, c := range t.characters {
		t.s.characters[id] = c
	}
	for id, a := range t.attributes {
		t.s.attributes[id] = a
	}
	for k, cd := range t.cooldowns {
		t.s.cooldowns[k] = cd
	}
	for id, loc := range t.charLocations {
		t.s.charLocations[id] = loc
	}
	for id, inv := range t.inventories {
		t.s.inventories[id] = inv
	}
	for id, item := range t.items {
		t.s.items[id] = item
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true
	t.locks.ReleaseAll()
	return nil
}

func (t *tx) check() error {
	if t.closed {
		return ErrTxClosed
	}
	return nil
}

// ---- Characters ----

func (t *tx) InsertCharacter(ctx context.Context, character *domain.Character) error {
	if err := t.check(); err != nil {
		return err
	}
	// serialize creations per user so the name check below is race-free
	t.locks.Acquire(concurrency.Key(concurrency.KindUser, character.UserID))

	t.s.mu.RLock()
	taken := false
	for _, c := range t.s.characters {
		if c.UserID == character.UserID && strings.EqualFold(c.Name, character.Name) {
			taken = true
			break
		}
	}
	t.s.mu.RUnlock()
	for _, c := range t.characters {
		if c.UserID == character.UserID && strings.EqualFold(c.Name, character.Name) {
			taken = true
		}
	}
	if taken {
		return domain.ErrCharacterNameTaken
	}

	character.ID = t.s.characterSeq.Add(1)
	t.locks.Acquire(concurrency.Key(concurrency.KindCharacter, character.ID))
	t.characters[character.ID] = *character
	return nil
}

func (t *tx) GetCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Character, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	t.locks.Acquire(concurrency.Key(concurrency.KindCharacter, characterID))
	return t.character(characterID)
}

func (t *tx) character(characterID int64) (*domain.Character, error) {
	if c, ok := t.characters[characterID]; ok {
		return &c, nil
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	c, ok := t.s.characters[characterID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (t *tx) UpdateCharacterLevel(ctx context.Context, characterID int64, level int, updatedAt time.Time) error {
	if err := t.check(); err != nil {
		return err
	}
	c, err := t.character(characterID)
	if err != nil {
		return err
	}
	c.Level = level
	c.UpdatedAt = updatedAt
	t.characters[characterID] = *c
	return nil
}

func (t *tx) GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if a, ok := t.attributes[characterID]; ok {
		return &a, nil
	}
	return t.s.GetAttributes(ctx, characterID)
}

func (t *tx) SaveAttributes(ctx context.Context, attrs domain.CharacterAttributes) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, err := t.character(attrs.CharacterID); err != nil {
		return err
	}
	t.attributes[attrs.CharacterID] = attrs
	return nil
}

func (t *tx) GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if cd, ok := t.cooldowns[cooldownKey{characterID, cooldownType}]; ok {
		return &cd, nil
	}
	return t.s.GetCooldown(ctx, characterID, cooldownType)
}

func (t *tx) UpsertCooldown(ctx context.Context, cooldown domain.CharacterCooldown) error {
	if err := t.check(); err != nil {
		return err
	}
	if !cooldown.Type.Valid() {
		return fmt.Errorf("%w: cooldown type %q", domain.ErrInvalidInput, cooldown.Type)
	}
	t.cooldowns[cooldownKey{cooldown.CharacterID, cooldown.Type}] = cooldown
	return nil
}

func (t *tx) SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, err := t.s.GetLocation(ctx, loc.LocationID); err != nil {
		return err
	}
	t.charLocations[loc.CharacterID] = loc
	return nil
}

// ---- Inventory ----

func (t *tx) InsertInventory(ctx context.Context, inventory *domain.Inventory) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, err := t.findInventoryByCharacter(inventory.CharacterID); err == nil {
		return fmt.Errorf("%w: inventory for character %d", ErrUniqueViolation, inventory.CharacterID)
	}
	inventory.ID = t.s.inventorySeq.Add(1)
	t.locks.Acquire(concurrency.Key(concurrency.KindInventory, inventory.ID))
	t.inventories[inventory.ID] = *inventory
	return nil
}

func (t *tx) GetInventoryForUpdate(ctx context.Context, inventoryID int64) (*domain.Inventory, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	t.locks.Acquire(concurrency.Key(concurrency.KindInventory, inventoryID))
	return t.inventory(inventoryID)
}

func (t *tx) GetInventoryByCharacterForUpdate(ctx context.Context, characterID int64) (*domain.Inventory, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	inv, err := t.findInventoryByCharacter(characterID)
	if err != nil {
		return nil, err
	}
	t.locks.Acquire(concurrency.Key(concurrency.KindInventory, inv.ID))
	return t.inventory(inv.ID)
}

func (t *tx) inventory(inventoryID int64) (*domain.Inventory, error) {
	if inv, ok := t.inventories[inventoryID]; ok {
		return &inv, nil
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	inv, ok := t.s.inventories[inventoryID]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}
	return &inv, nil
}

func (t *tx) findInventoryByCharacter(characterID int64) (*domain.Inventory, error) {
	for _, inv := range t.inventories {
		if inv.CharacterID == characterID {
			return &inv, nil
		}
	}
	return t.s.GetInventoryByCharacter(context.Background(), characterID)
}

func (t *tx) UpdateInventorySpace(ctx context.Context, inventoryID int64, maxSpace int) error {
	if err := t.check(); err != nil {
		return err
	}
	inv, err := t.inventory(inventoryID)
	if err != nil {
		return err
	}
	inv.MaxSpace = maxSpace
	t.inventories[inventoryID] = *inv
	return nil
}

func (t *tx) CountItems(ctx context.Context, inventoryID int64) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	count := 0
	for _, item := range t.itemView() {
		if item.InventoryID != nil && *item.InventoryID == inventoryID {
			count++
		}
	}
	return count, nil
}

// itemView is the store's items with this tx's staged writes applied
func (t *tx) itemView() map[int64]domain.Item {
	t.s.mu.RLock()
	view := make(map[int64]domain.Item, len(t.s.items)+len(t.items))
	for id, item := range t.s.items {
		view[id] = item
	}
	t.s.mu.RUnlock()

	for id, item := range t.items {
		view[id] = item
	}
	return view
}

// ---- Items ----

func (t *tx) GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.s.GetBlueprint(ctx, blueprintID)
}

func (t *tx) GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	t.locks.Acquire(concurrency.Key(concurrency.KindItem, itemID))
	if item, ok := t.items[itemID]; ok {
		c := cloneItem(item)
		return &c, nil
	}
	return t.s.GetItem(ctx, itemID)
}

func (t *tx) FindMergedItem(ctx context.Context, inventoryID, blueprintID int64) (*domain.Item, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	for _, item := range t.itemView() {
		if item.MergeKey && item.BlueprintID == blueprintID &&
			item.InventoryID != nil && *item.InventoryID == inventoryID {
			c := cloneItem(item)
			return &c, nil
		}
	}
	return nil, nil
}

func (t *tx) InsertItem(ctx context.Context, item *domain.Item) error {
	if err := t.check(); err != nil {
		return err
	}
	if item.MergeKey && item.InventoryID != nil {
		existing, err := t.FindMergedItem(ctx, *item.InventoryID, item.BlueprintID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: item (inventory %d, blueprint %d)", ErrUniqueViolation, *item.InventoryID, item.BlueprintID)
		}
	}
	item.ID = t.s.itemSeq.Add(1)
	t.items[item.ID] = cloneItem(*item)
	return nil
}

func (t *tx) UpdateItem(ctx context.Context, item domain.Item) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, ok := t.items[item.ID]; !ok {
		if _, err := t.s.GetItem(ctx, item.ID); err != nil {
			return err
		}
	}
	t.items[item.ID] = cloneItem(item)
	return nil
}
