package inventory

// Error message format constants
const (
	ErrMsgBeginTxFailed      = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed     = "failed to commit transaction: %w"
	ErrMsgCountItemsFailed   = "failed to count inventory items: %w"
	ErrMsgGrowCapacityFailed = "failed to grow inventory capacity: %w"
	ErrMsgGetItemFailed      = "failed to get item: %w"
	ErrMsgGetBlueprintFailed = "failed to get blueprint: %w"
	ErrMsgUpdateItemFailed   = "failed to update item: %w"
	ErrMsgGetInventoryFailed = "failed to get inventory: %w"
	ErrMsgListItemsFailed    = "failed to list items: %w"
	ErrMsgItemNotOwned       = "%w: item %d is not in character %d's inventory"
	ErrMsgItemNotInInventory = "%w: item %d"
	ErrMsgNotDroppable       = "%w: %s"
)

// Log message constants
const (
	LogMsgInventoryFull = "Inventory full"
	LogMsgCapacityGrown = "Inventory capacity grown"
	LogMsgItemDropped   = "Item dropped"
	LogMsgItemDetached  = "Item detached from inventory"
	LogMsgDropRejected  = "Drop rejected"
)
