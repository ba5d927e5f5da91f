package domain

import (
	"fmt"
	"strings"
)

// ItemType is the category of a blueprint
type ItemType string

const (
	ItemTypeArmor  ItemType = "ARMOR"
	ItemTypeJunk   ItemType = "JUNK"
	ItemTypeGold   ItemType = "GOLD"
	ItemTypeQuest  ItemType = "QUEST"
	ItemTypeWeapon ItemType = "WEAPON"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeArmor, ItemTypeJunk, ItemTypeGold, ItemTypeQuest, ItemTypeWeapon:
		return true
	}
	return false
}

// SlotType is the equipment slot a blueprint occupies
type SlotType string

const (
	SlotNone     SlotType = "NONE"
	SlotHead     SlotType = "HEAD"
	SlotChest    SlotType = "CHEST"
	SlotLegs     SlotType = "LEGS"
	SlotFeet     SlotType = "FEET"
	SlotHands    SlotType = "HANDS"
	SlotMainHand SlotType = "MAIN_HAND"
	SlotOffHand  SlotType = "OFF_HAND"
)

// Rarity is an ordinal from 1 (COMMON) to 5 (LEGENDARY).
// The ordinal value is used directly in stat scaling.
type Rarity int

const (
	RarityCommon Rarity = iota + 1
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "COMMON",
	RarityUncommon:  "UNCOMMON",
	RarityRare:      "RARE",
	RarityEpic:      "EPIC",
	RarityLegendary: "LEGENDARY",
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RARITY(%d)", int(r))
}

// Valid reports whether r is within COMMON..LEGENDARY
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityLegendary
}

// ParseRarity converts a rarity name into its ordinal
func ParseRarity(s string) (Rarity, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for r, name := range rarityNames {
		if name == upper {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, s)
}

// ItemBlueprint is a read-only catalog entry; many Items instance one blueprint
type ItemBlueprint struct {
	ID           int64    `json:"id" db:"blueprint_id"`
	Name         string   `json:"name" db:"name"`
	ItemType     ItemType `json:"item_type" db:"item_type"`
	SlotType     SlotType `json:"slot_type" db:"slot_type"`
	IsConsumable bool     `json:"is_consumable" db:"is_consumable"`
	IsStackable  bool     `json:"is_stackable" db:"is_stackable"`
	IsDroppable  bool     `json:"is_droppable" db:"is_droppable"`
	BaseCost     int      `json:"base_cost" db:"base_cost"`
}

// MergeKeyed reports whether an inventory holds at most one row for this
// blueprint, tracking quantity in Item.Amount instead.
func (b ItemBlueprint) MergeKeyed() bool {
	return b.IsStackable || b.ItemType == ItemTypeGold || b.ItemType == ItemTypeQuest
}

// Item is an instance of a blueprint. A nil InventoryID means the item was
// detached (dropped); the row is kept for history.
type Item struct {
	ID          int64  `json:"id" db:"item_id"`
	BlueprintID int64  `json:"blueprint_id" db:"blueprint_id"`
	InventoryID *int64 `json:"inventory_id,omitempty" db:"inventory_id"`
	Name        string `json:"name" db:"display_name"`
	Level       int    `json:"level" db:"level"`
	Amount      int    `json:"amount" db:"amount"`
	Rarity      Rarity `json:"rarity" db:"rarity"`
	MinDamage   int    `json:"min_damage" db:"min_damage"`
	MaxDamage   int    `json:"max_damage" db:"max_damage"`
	Defense     int    `json:"defense" db:"defense"`
	Health      int    `json:"health" db:"health"`
	Cost        int    `json:"cost" db:"cost"`
	MergeKey    bool   `json:"-" db:"merge_key"`
}

// Attached reports whether the item still counts toward an inventory
func (i Item) Attached() bool {
	return i.InventoryID != nil
}

func (i Item) String() string {
	if i.Amount > 1 {
		return fmt.Sprintf("%s x%d", i.Name, i.Amount)
	}
	return i.Name
}
