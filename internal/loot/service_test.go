package loot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/testing/fixtures"
)

type MockNamer struct {
	mock.Mock
}

func (m *MockNamer) DisplayName(bp domain.ItemBlueprint, rarity domain.Rarity, now time.Time) string {
	args := m.Called(bp, rarity, now)
	return args.String(0)
}

func newTestService(w *fixtures.World, roller random.Source, namer Namer) Service {
	return NewService(w.Store, w.Store, w.Store, inventory.NewService(w.Store, w.Store), roller, namer)
}

func request(w *fixtures.World, h fixtures.Hero, loc domain.Location, catalog ...domain.ItemBlueprint) Request {
	return Request{
		Character: w.Character(h),
		Inventory: w.Inventory(h),
		Location:  loc,
		Catalog:   catalog,
		Now:       w.Now,
	}
}

func TestGenerateLoot_InventoryFull(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHeroWithSpace("Hero", 1, 5)
	w.FillInventory(hero, 5)
	sword := w.AddBlueprint(fixtures.Sword)
	field := w.AddLocation("Field", 1, domain.LocationField)

	roller := random.NewScripted()
	svc := newTestService(w, roller, nil)

	_, err := svc.GenerateLoot(ctx, request(w, hero, field, sword))
	assert.ErrorIs(t, err, domain.ErrInventoryFull)
	assert.Len(t, w.Items(hero), 5)
}

func TestGenerateLoot_FullInventoryBlocksMerges(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHeroWithSpace("Hero", 1, 2)
	gold := w.AddBlueprint(fixtures.Gold)
	w.AddItem(hero, gold, 10)
	w.FillInventory(hero, 1)
	field := w.AddLocation("Field", 1, domain.LocationField)

	svc := newTestService(w, random.NewScripted(), nil)

	_, err := svc.GenerateLoot(ctx, request(w, hero, field, gold))
	assert.ErrorIs(t, err, domain.ErrInventoryFull)
	for _, item := range w.Items(hero) {
		if item.BlueprintID == gold.ID {
			assert.Equal(t, 10, item.Amount)
		}
	}
}

func TestGenerateLoot_EmptyCatalog(t *testing.T) {
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.NewScripted(), nil)

	_, err := svc.GenerateLoot(context.Background(), request(w, hero, field))
	assert.ErrorIs(t, err, domain.ErrNoBlueprint)
	assert.Empty(t, w.Items(hero))
}

func TestGenerateLoot_StackableMergesIntoOneRow(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	bone := w.AddBlueprint(fixtures.Bone)
	field := w.AddLocation("Field", 1, domain.LocationField)

	// (blueprint, rarity, level) per roll; the second roll's stats are discarded
	roller := random.NewScripted(0, 5, 1, 0, 36, 2)
	svc := newTestService(w, roller, nil)

	first, err := svc.GenerateLoot(ctx, request(w, hero, field, bone))
	require.NoError(t, err)
	assert.False(t, first.Merged)
	assert.Equal(t, 1, first.Quantity)

	second, err := svc.GenerateLoot(ctx, request(w, hero, field, bone))
	require.NoError(t, err)
	assert.True(t, second.Merged)
	assert.Equal(t, first.Item.ID, second.Item.ID)

	items := w.Items(hero)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Amount)
	assert.Equal(t, domain.RarityCommon, items[0].Rarity)
	assert.Equal(t, 1, items[0].Level)
	assert.Equal(t, 2, items[0].Cost)
	assert.Zero(t, roller.Remaining())
}

func TestGenerateLoot_NewStackIsCommonAtRolledLevel(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 5)
	bone := w.AddBlueprint(fixtures.Bone)
	woods := w.AddLocation("Woods", 5, domain.LocationField)

	namer := new(MockNamer)
	namer.On("DisplayName", bone, domain.RarityCommon, w.Now).Return("Bone").Once()

	// LEGENDARY rolled at level 6, then a COMMON restack at level 5
	roller := random.NewScripted(0, 37, 6, 0, 0, 5)
	svc := newTestService(w, roller, namer)

	first, err := svc.GenerateLoot(ctx, request(w, hero, woods, bone))
	require.NoError(t, err)
	assert.Equal(t, domain.RarityCommon, first.Item.Rarity)
	assert.Equal(t, 6, first.Item.Level)
	assert.Equal(t, 12, first.Item.Cost)
	assert.Zero(t, first.Item.MinDamage)
	assert.Zero(t, first.Item.MaxDamage)

	second, err := svc.GenerateLoot(ctx, request(w, hero, woods, bone))
	require.NoError(t, err)
	assert.True(t, second.Merged)

	items := w.Items(hero)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Amount)
	assert.Equal(t, domain.RarityCommon, items[0].Rarity)
	assert.Equal(t, 6, items[0].Level)
	assert.Equal(t, 12, items[0].Cost)
	assert.Zero(t, roller.Remaining())
	namer.AssertExpectations(t)
}

func TestGenerateLoot_GoldAccumulates(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 3)
	gold := w.AddBlueprint(fixtures.Gold)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.New(99), nil)

	total := 0
	for i := 0; i < 25; i++ {
		drop, err := svc.GenerateLoot(ctx, request(w, hero, field, gold))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, drop.Quantity, 3)
		assert.LessOrEqual(t, drop.Quantity, 30)
		assert.GreaterOrEqual(t, drop.Item.Amount, total, "amount never decreases")
		total += drop.Quantity
		assert.Equal(t, total, drop.Item.Amount)
	}

	items := w.Items(hero)
	require.Len(t, items, 1)
	assert.Equal(t, total, items[0].Amount)
}

func TestGenerateLoot_QuestItemThenGoldFallback(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 2)
	relic := w.AddBlueprint(fixtures.Relic)
	gold := w.AddBlueprint(fixtures.Gold)
	field := w.AddLocation("Field", 1, domain.LocationField)

	roller := random.NewScripted(0, 0, 15)
	svc := newTestService(w, roller, nil)

	first, err := svc.GenerateLoot(ctx, request(w, hero, field, relic, gold))
	require.NoError(t, err)
	assert.Equal(t, domain.RarityLegendary, first.Item.Rarity)
	assert.Equal(t, QuestItemLevel, first.Item.Level)
	assert.Equal(t, 1, first.Item.Amount)
	assert.Equal(t, relic.BaseCost, first.Item.Cost)

	second, err := svc.GenerateLoot(ctx, request(w, hero, field, relic, gold))
	require.NoError(t, err)
	assert.Equal(t, gold.ID, second.Blueprint.ID)
	assert.Equal(t, 15, second.Quantity)

	items := w.Items(hero)
	require.Len(t, items, 2)
	assert.Equal(t, relic.ID, items[0].BlueprintID)
	assert.Equal(t, 1, items[0].Amount)
	assert.Equal(t, gold.ID, items[1].BlueprintID)
	assert.Equal(t, 15, items[1].Amount)
}

func TestGenerateLoot_QuestDuplicateWithoutGold(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	relic := w.AddBlueprint(fixtures.Relic)
	field := w.AddLocation("Field", 1, domain.LocationField)
	w.AddItem(hero, relic, 1)

	svc := newTestService(w, random.NewScripted(0), nil)

	_, err := svc.GenerateLoot(ctx, request(w, hero, field, relic))
	assert.ErrorIs(t, err, domain.ErrNoBlueprint)
	assert.Len(t, w.Items(hero), 1)
}

func TestGenerateLoot_WeaponUsesNamer(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	sword := w.AddBlueprint(fixtures.Sword)
	field := w.AddLocation("Hills", 2, domain.LocationField)

	namer := new(MockNamer)
	namer.On("DisplayName", sword, domain.RarityRare, w.Now).Return("Rare Blade")

	svc := newTestService(w, random.NewScripted(0, 30, 2, 2, 7, 4, 9), namer)

	drop, err := svc.GenerateLoot(ctx, request(w, hero, field, sword))
	require.NoError(t, err)
	namer.AssertExpectations(t)

	assert.Equal(t, "Rare Blade", drop.Item.Name)
	assert.Equal(t, 2, drop.Item.Level)
	assert.Equal(t, 7, drop.Item.MinDamage)
	assert.Equal(t, 9, drop.Item.MaxDamage)
	assert.Equal(t, 60, drop.Item.Cost)
	assert.Equal(t, 1, drop.Item.Amount)
	assert.False(t, drop.Item.MergeKey)
}

func TestGenerateLoot_NonStackableAlwaysNewRow(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	helmet := w.AddBlueprint(fixtures.Helmet)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.New(4), nil)

	for i := 0; i < 3; i++ {
		_, err := svc.GenerateLoot(ctx, request(w, hero, field, helmet))
		require.NoError(t, err)
	}

	items := w.Items(hero)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Zero(t, item.MinDamage)
		assert.Zero(t, item.Defense)
		assert.Equal(t, 1, item.Amount)
	}
}

func TestGenerateLoot_ConcurrentCallsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHeroWithSpace("Hero", 1, 5)
	sword := w.AddBlueprint(fixtures.Sword)
	helmet := w.AddBlueprint(fixtures.Helmet)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.New(21), nil)
	req := request(w, hero, field, sword, helmet)

	const callers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GenerateLoot(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInventoryFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, callers-5, full)
	assert.Len(t, w.Items(hero), 5)
}

func TestGenerateLoot_ConcurrentGoldKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	w := fixtures.NewWorld(t)
	hero := w.AddHero("Hero", 1)
	gold := w.AddBlueprint(fixtures.Gold)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.New(8), nil)
	req := request(w, hero, field, gold)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			drop, err := svc.GenerateLoot(ctx, req)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			total += drop.Quantity
			mu.Unlock()
		}()
	}
	wg.Wait()

	items := w.Items(hero)
	require.Len(t, items, 1)
	assert.Equal(t, total, items[0].Amount)
}

func TestGenerateLoot_InventoryMustBelongToCharacter(t *testing.T) {
	w := fixtures.NewWorld(t)
	a := w.AddHero("A", 1)
	b := w.AddHero("B", 1)
	sword := w.AddBlueprint(fixtures.Sword)
	field := w.AddLocation("Field", 1, domain.LocationField)
	svc := newTestService(w, random.NewScripted(), nil)

	req := request(w, a, field, sword)
	req.Inventory = w.Inventory(b)

	_, err := svc.GenerateLoot(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("no location", func(t *testing.T) {
		w := fixtures.NewWorld(t)
		hero := w.AddHero("Hero", 1)
		w.AddBlueprint(fixtures.Sword)
		svc := newTestService(w, random.NewScripted(), nil)

		_, err := svc.Search(ctx, hero.Character.ID, w.Now)
		assert.ErrorIs(t, err, domain.ErrNoLocation)
	})

	t.Run("rolls from the stored catalog", func(t *testing.T) {
		w := fixtures.NewWorld(t)
		hero := w.AddHero("Hero", 2)
		w.AddBlueprint(fixtures.Gold)
		field := w.AddLocation("Field", 1, domain.LocationField)
		require.NoError(t, w.Store.SetCharacterLocation(ctx, domain.CharacterLocation{CharacterID: hero.Character.ID, LocationID: field.ID}))

		svc := newTestService(w, random.NewScripted(0, 20), nil)

		drop, err := svc.Search(ctx, hero.Character.ID, w.Now)
		require.NoError(t, err)
		assert.Equal(t, domain.ItemTypeGold, drop.Blueprint.ItemType)
		assert.Equal(t, 20, drop.Item.Amount)
	})

	t.Run("unknown character", func(t *testing.T) {
		w := fixtures.NewWorld(t)
		svc := newTestService(w, random.NewScripted(), nil)

		_, err := svc.Search(ctx, 77, w.Now)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
