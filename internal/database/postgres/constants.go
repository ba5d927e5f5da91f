package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is the PostgreSQL error code for foreign key violations
	PgErrorCodeForeignKeyViolation = "23503"
)

// Constraint names from the init migration
const (
	ConstraintCharacterName     = "characters_user_name_key"
	ConstraintLocationCharacter = "character_locations_character_fkey"
	ConstraintLocationLocation  = "character_locations_location_fkey"
)

// Column lists, in the order of the domain struct db tags
const (
	characterColumns = "character_id, user_id, name, level, created_at, updated_at"
	attributeColumns = "character_id, max_hp, hp, dmg, luck"
	cooldownColumns  = "character_id, cooldown_type, until"
	locationColumns  = "location_id, name, min_level, location_type, is_active"
	blueprintColumns = "blueprint_id, name, item_type, slot_type, is_consumable, is_stackable, is_droppable, base_cost"
	inventoryColumns = "inventory_id, character_id, max_space"
	itemColumns      = "item_id, blueprint_id, inventory_id, display_name, level, amount, rarity, " +
		"min_damage, max_damage, defense, health, cost, merge_key"
	syncColumns = "config_name, last_sync_time, file_hash"
)

// Character queries
const (
	queryGetCharacter          = "SELECT " + characterColumns + " FROM characters WHERE character_id = $1"
	queryGetCharacterForUpdate = queryGetCharacter + " FOR UPDATE"
	queryListCharacters        = "SELECT " + characterColumns + " FROM characters WHERE user_id = $1 " +
		"ORDER BY updated_at DESC, character_id DESC"
	queryInsertCharacter = `INSERT INTO characters (user_id, name, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING character_id`
	queryUpdateCharacterLevel = "UPDATE characters SET level = $2, updated_at = $3 WHERE character_id = $1"

	queryGetAttributes  = "SELECT " + attributeColumns + " FROM character_attributes WHERE character_id = $1"
	querySaveAttributes = `INSERT INTO character_attributes (character_id, max_hp, hp, dmg, luck)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (character_id) DO UPDATE
		SET max_hp = EXCLUDED.max_hp, hp = EXCLUDED.hp, dmg = EXCLUDED.dmg, luck = EXCLUDED.luck`

	queryGetCooldown = "SELECT " + cooldownColumns + " FROM character_cooldowns " +
		"WHERE character_id = $1 AND cooldown_type = $2"
	queryUpsertCooldown = `INSERT INTO character_cooldowns (character_id, cooldown_type, until)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id, cooldown_type) DO UPDATE SET until = EXCLUDED.until`
	queryDeleteCooldown = "DELETE FROM character_cooldowns WHERE character_id = $1 AND cooldown_type = $2"

	queryGetCharacterLocation = "SELECT character_id, location_id FROM character_locations WHERE character_id = $1"
	querySetCharacterLocation = `INSERT INTO character_locations (character_id, location_id)
		VALUES ($1, $2)
		ON CONFLICT (character_id) DO UPDATE SET location_id = EXCLUDED.location_id`
)

// Inventory and item queries
const (
	queryInsertInventory                  = "INSERT INTO inventories (character_id, max_space) VALUES ($1, $2) RETURNING inventory_id"
	queryGetInventory                     = "SELECT " + inventoryColumns + " FROM inventories WHERE inventory_id = $1"
	queryGetInventoryForUpdate            = queryGetInventory + " FOR UPDATE"
	queryGetInventoryByCharacter          = "SELECT " + inventoryColumns + " FROM inventories WHERE character_id = $1"
	queryGetInventoryByCharacterForUpdate = queryGetInventoryByCharacter + " FOR UPDATE"
	queryUpdateInventorySpace             = "UPDATE inventories SET max_space = $2 WHERE inventory_id = $1"
	queryCountItems                       = "SELECT COUNT(*) FROM items WHERE inventory_id = $1"

	queryListItems        = "SELECT " + itemColumns + " FROM items WHERE inventory_id = $1 ORDER BY item_id"
	queryGetItem          = "SELECT " + itemColumns + " FROM items WHERE item_id = $1"
	queryGetItemForUpdate = queryGetItem + " FOR UPDATE"
	queryFindMergedItem   = "SELECT " + itemColumns + " FROM items " +
		"WHERE inventory_id = $1 AND blueprint_id = $2 AND merge_key FOR UPDATE"
	queryInsertItem = `INSERT INTO items (blueprint_id, inventory_id, display_name, level, amount, rarity,
			min_damage, max_damage, defense, health, cost, merge_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING item_id`
	queryUpdateItem = `UPDATE items SET inventory_id = $2, display_name = $3, level = $4, amount = $5, rarity = $6,
			min_damage = $7, max_damage = $8, defense = $9, health = $10, cost = $11
		WHERE item_id = $1`
)

// Catalog queries
const (
	queryListBlueprints  = "SELECT " + blueprintColumns + " FROM item_blueprints ORDER BY blueprint_id"
	queryGetBlueprint    = "SELECT " + blueprintColumns + " FROM item_blueprints WHERE blueprint_id = $1"
	queryUpsertBlueprint = `INSERT INTO item_blueprints
			(name, item_type, slot_type, is_consumable, is_stackable, is_droppable, base_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET item_type = EXCLUDED.item_type, slot_type = EXCLUDED.slot_type,
			is_consumable = EXCLUDED.is_consumable, is_stackable = EXCLUDED.is_stackable,
			is_droppable = EXCLUDED.is_droppable, base_cost = EXCLUDED.base_cost
		RETURNING blueprint_id`

	queryListLocations  = "SELECT " + locationColumns + " FROM locations ORDER BY min_level, location_id"
	queryGetLocation    = "SELECT " + locationColumns + " FROM locations WHERE location_id = $1"
	queryUpsertLocation = `INSERT INTO locations (name, min_level, location_type, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET min_level = EXCLUDED.min_level, location_type = EXCLUDED.location_type, is_active = EXCLUDED.is_active
		RETURNING location_id`

	queryGetSyncMetadata    = "SELECT " + syncColumns + " FROM sync_metadata WHERE config_name = $1"
	queryUpsertSyncMetadata = `INSERT INTO sync_metadata (config_name, last_sync_time, file_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (config_name) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time, file_hash = EXCLUDED.file_hash`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToGetCharacter     = "failed to get character"
	ErrMsgFailedToListCharacters   = "failed to list characters"
	ErrMsgFailedToInsertCharacter  = "failed to insert character"
	ErrMsgFailedToUpdateCharacter  = "failed to update character"
	ErrMsgFailedToGetAttributes    = "failed to get attributes"
	ErrMsgFailedToSaveAttributes   = "failed to save attributes"
	ErrMsgFailedToGetCooldown      = "failed to get cooldown"
	ErrMsgFailedToUpsertCooldown   = "failed to upsert cooldown"
	ErrMsgFailedToDeleteCooldown   = "failed to delete cooldown"
	ErrMsgFailedToGetLocation      = "failed to get location"
	ErrMsgFailedToSetLocation      = "failed to set character location"
	ErrMsgFailedToInsertInventory  = "failed to insert inventory"
	ErrMsgFailedToGetInventory     = "failed to get inventory"
	ErrMsgFailedToUpdateInventory  = "failed to update inventory"
	ErrMsgFailedToCountItems       = "failed to count items"
	ErrMsgFailedToListItems        = "failed to list items"
	ErrMsgFailedToGetItem          = "failed to get item"
	ErrMsgFailedToInsertItem       = "failed to insert item"
	ErrMsgFailedToUpdateItem       = "failed to update item"
	ErrMsgFailedToGetBlueprint     = "failed to get blueprint"
	ErrMsgFailedToListBlueprints   = "failed to list blueprints"
	ErrMsgFailedToUpsertBlueprint  = "failed to upsert blueprint"
	ErrMsgFailedToListLocations    = "failed to list locations"
	ErrMsgFailedToUpsertLocation   = "failed to upsert location"
	ErrMsgFailedToGetSyncMetadata  = "failed to get sync metadata"
	ErrMsgFailedToSaveSyncMetadata = "failed to save sync metadata"
)
