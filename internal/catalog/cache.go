package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

// Cache serves reference data from memory with time-based expiration.
// The catalog only changes through Sync at startup, so a TTL bounds staleness.
type Cache struct {
	repo repository.Catalog

	blueprints    *expirable.LRU[int64, domain.ItemBlueprint]
	blueprintList *expirable.LRU[string, []domain.ItemBlueprint]
	locations     *expirable.LRU[int64, domain.Location]
	locationList  *expirable.LRU[string, []domain.Location]
}

// NewCache creates a cache in front of repo. size bounds each entity table.
func NewCache(repo repository.Catalog, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		repo:          repo,
		blueprints:    expirable.NewLRU[int64, domain.ItemBlueprint](size, nil, ttl),
		blueprintList: expirable.NewLRU[string, []domain.ItemBlueprint](1, nil, ttl),
		locations:     expirable.NewLRU[int64, domain.Location](size, nil, ttl),
		locationList:  expirable.NewLRU[string, []domain.Location](1, nil, ttl),
	}
}

// GetBlueprint returns a blueprint by id
func (c *Cache) GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error) {
	if bp, ok := c.blueprints.Get(blueprintID); ok {
		return &bp, nil
	}
	bp, err := c.repo.GetBlueprint(ctx, blueprintID)
	if err != nil {
		return nil, err
	}
	c.blueprints.Add(blueprintID, *bp)
	return bp, nil
}

// ListBlueprints returns the whole catalog ordered by id
func (c *Cache) ListBlueprints(ctx context.Context) ([]domain.ItemBlueprint, error) {
	if list, ok := c.blueprintList.Get(listKey); ok {
		return append([]domain.ItemBlueprint(nil), list...), nil
	}
	list, err := c.repo.ListBlueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListBlueprintsFailed, err)
	}
	c.blueprintList.Add(listKey, list)
	for _, bp := range list {
		c.blueprints.Add(bp.ID, bp)
	}
	return append([]domain.ItemBlueprint(nil), list...), nil
}

// GetLocation returns a location by id
func (c *Cache) GetLocation(ctx context.Context, locationID int64) (*domain.Location, error) {
	if loc, ok := c.locations.Get(locationID); ok {
		return &loc, nil
	}
	loc, err := c.repo.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	c.locations.Add(locationID, *loc)
	return loc, nil
}

// ListLocations returns every location ordered by min level
func (c *Cache) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if list, ok := c.locationList.Get(listKey); ok {
		return append([]domain.Location(nil), list...), nil
	}
	list, err := c.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLocationsFailed, err)
	}
	c.locationList.Add(listKey, list)
	for _, loc := range list {
		c.locations.Add(loc.ID, loc)
	}
	return append([]domain.Location(nil), list...), nil
}

// Purge drops every cached entry, e.g. after a re-sync
func (c *Cache) Purge() {
	c.blueprints.Purge()
	c.blueprintList.Purge()
	c.locations.Purge()
	c.locationList.Purge()
}
