package config

// Reference data file paths
const (
	ConfigPathItems       = "configs/items.json"
	ConfigPathLocations   = "configs/locations.json"
	ConfigPathItemAliases = "configs/item_aliases.json"
	ConfigPathSchemasDir  = "configs/schemas"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Example values shipped in .env.example that must not reach production
const (
	exampleDBPassword = "change_this_secure_password"
)
