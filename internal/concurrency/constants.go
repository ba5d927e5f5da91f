package concurrency

// KeySeparator joins the entity kind and id in a lock name
const KeySeparator = ":"

// Lock name kinds
const (
	KindCharacter = "character"
	KindInventory = "inventory"
	KindItem      = "item"
	KindUser      = "user"
)
