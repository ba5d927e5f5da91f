package bootstrap

import (
	"github.com/osse101/wwwhero/internal/character"
	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/location"
	"github.com/osse101/wwwhero/internal/loot"
	"github.com/osse101/wwwhero/internal/naming"
	"github.com/osse101/wwwhero/internal/progression"
	"github.com/osse101/wwwhero/internal/random"
)

// Services holds the engine services the application drives
type Services struct {
	Characters  character.Service
	Progression progression.Service
	Loot        loot.Service
	Inventory   inventory.Service
	Locations   location.Service
	Cooldowns   cooldown.Service
	// Names maps player-typed item names to blueprints
	Names naming.Resolver
}

// InitializeServices wires the engine over storage and the catalog cache.
// All services share the one roll provider.
func InitializeServices(cfg *config.Config, storage *Storage, cat *Catalog, roller random.Source) *Services {
	cooldowns := cooldown.NewService(storage.Characters, cooldown.Config{DevMode: cfg.DevMode})
	inventories := inventory.NewService(storage.Inventory, cat.Cache)

	return &Services{
		Characters:  character.NewService(storage.Characters, cat.Cache, cooldowns, inventories),
		Progression: progression.NewService(storage.Characters, cooldowns, inventories, roller),
		Loot:        loot.NewService(storage.Characters, storage.Inventory, cat.Cache, inventories, roller, cat.Namer),
		Inventory:   inventories,
		Locations:   location.NewService(storage.Characters, cat.Cache),
		Cooldowns:   cooldowns,
		Names:       cat.Namer,
	}
}
