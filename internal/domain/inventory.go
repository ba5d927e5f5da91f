package domain

// Inventory is the capacity-limited container owned by one character
type Inventory struct {
	ID          int64 `json:"id" db:"inventory_id"`
	CharacterID int64 `json:"character_id" db:"character_id"`
	MaxSpace    int   `json:"max_space" db:"max_space"`
}

// HasSpace reports whether one more item row fits given the current count
func (inv Inventory) HasSpace(itemCount int) bool {
	return itemCount < inv.MaxSpace
}

// InventoryEntry pairs an attached item with its blueprint for display
type InventoryEntry struct {
	Item      Item          `json:"item"`
	Blueprint ItemBlueprint `json:"blueprint"`
}

// InventoryView is an inventory with its attached items
type InventoryView struct {
	Inventory Inventory        `json:"inventory"`
	Entries   []InventoryEntry `json:"entries"`
}

// Used is the number of item rows counting toward capacity
func (v InventoryView) Used() int {
	return len(v.Entries)
}
