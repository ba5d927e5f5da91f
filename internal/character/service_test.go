package character_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/wwwhero/internal/character"
	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/testing/fixtures"
)

func newService(w *fixtures.World) character.Service {
	return character.NewService(
		w.Store,
		w.Store,
		cooldown.NewService(w.Store, cooldown.Config{}),
		inventory.NewService(w.Store, w.Store),
	)
}

func TestCreate_StartingState(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()

	w.AddLocation("Forest", 3, domain.LocationField)
	town := w.AddLocation("Town", 1, domain.LocationTown)
	closed := domain.Location{Name: "Ruins", MinLevel: 0, Type: domain.LocationDungeon}
	require.NoError(t, w.Store.UpsertLocation(ctx, &closed))

	svc := newService(w)
	before := testutil.ToFloat64(metrics.CharactersCreated)

	c, err := svc.Create(ctx, character.CreateRequest{UserID: uuid.New(), Name: "Aria"}, w.Now)
	require.NoError(t, err)

	assert.NotZero(t, c.ID)
	assert.Equal(t, domain.StartingLevel, c.Level)
	assert.Equal(t, w.Now, c.CreatedAt)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CharactersCreated))

	attrs, err := w.Store.GetAttributes(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, attrs)
	assert.Equal(t, domain.NewCharacterAttributes(c.ID), *attrs)

	inv, err := w.Store.GetInventoryByCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInventorySpace, inv.MaxSpace)

	placement, err := w.Store.GetCharacterLocation(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, placement)
	assert.Equal(t, town.ID, placement.LocationID, "inactive locations are never a starting point")
}

func TestCreate_NoLocations(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()

	c, err := newService(w).Create(ctx, character.CreateRequest{UserID: uuid.New(), Name: "Nomad"}, w.Now)
	require.NoError(t, err)

	placement, err := w.Store.GetCharacterLocation(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, placement)
}

func TestCreate_NameUniquePerUser(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()
	svc := newService(w)

	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Create(ctx, character.CreateRequest{UserID: alice, Name: "Hero"}, w.Now)
	require.NoError(t, err)

	_, err = svc.Create(ctx, character.CreateRequest{UserID: alice, Name: "hero"}, w.Now)
	assert.ErrorIs(t, err, domain.ErrCharacterNameTaken)

	_, err = svc.Create(ctx, character.CreateRequest{UserID: bob, Name: "Hero"}, w.Now)
	assert.NoError(t, err, "another user may reuse the name")

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 1, "rejected create leaves nothing behind")
}

func TestCreate_InvalidRequest(t *testing.T) {
	w := fixtures.NewWorld(t)
	svc := newService(w)

	tests := []struct {
		name string
		req  character.CreateRequest
	}{
		{"empty name", character.CreateRequest{UserID: uuid.New(), Name: ""}},
		{"name too long", character.CreateRequest{UserID: uuid.New(), Name: strings.Repeat("a", domain.MaxCharacterNameLength+1)}},
		{"padded name", character.CreateRequest{UserID: uuid.New(), Name: " Aria"}},
		{"missing user", character.CreateRequest{Name: "Aria"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Create(context.Background(), tt.req, w.Now)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, c)
		})
	}
}

func TestList_MostRecentlyUpdatedFirst(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()
	svc := newService(w)
	user := uuid.New()

	first, err := svc.Create(ctx, character.CreateRequest{UserID: user, Name: "First"}, w.Now)
	require.NoError(t, err)
	second, err := svc.Create(ctx, character.CreateRequest{UserID: user, Name: "Second"}, w.Now.Add(time.Minute))
	require.NoError(t, err)
	_, err = svc.Create(ctx, character.CreateRequest{UserID: uuid.New(), Name: "Other"}, w.Now)
	require.NoError(t, err)

	list, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGet_OwnerCheck(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()
	svc := newService(w)
	owner := uuid.New()

	c, err := svc.Create(ctx, character.CreateRequest{UserID: owner, Name: "Mine"}, w.Now)
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Name)

	_, err = svc.Get(ctx, uuid.New(), c.ID)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	_, err = svc.Get(ctx, owner, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSheet(t *testing.T) {
	w := fixtures.NewWorld(t)
	ctx := context.Background()
	town := w.AddLocation("Town", 1, domain.LocationTown)
	svc := newService(w)
	owner := uuid.New()

	c, err := svc.Create(ctx, character.CreateRequest{UserID: owner, Name: "Sheet"}, w.Now)
	require.NoError(t, err)

	sheet, err := svc.Sheet(ctx, owner, c.ID, w.Now)
	require.NoError(t, err)
	assert.Equal(t, c.ID, sheet.Character.ID)
	assert.Equal(t, domain.DefaultMaxHP, sheet.Attributes.MaxHP)
	require.NotNil(t, sheet.Location)
	assert.Equal(t, town.ID, sheet.Location.ID)
	assert.Equal(t, domain.DefaultInventorySpace, sheet.Inventory.MaxSpace)
	assert.Equal(t, 0, sheet.ItemsUsed)
	assert.Equal(t, 0, sheet.LevelCooldownSeconds)

	tx, err := w.Store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertCooldown(ctx, domain.CharacterCooldown{
		CharacterID: c.ID,
		Type:        domain.CooldownLevel,
		Until:       w.Now.Add(4500 * time.Millisecond),
	}))
	require.NoError(t, tx.Commit(ctx))

	sheet, err = svc.Sheet(ctx, owner, c.ID, w.Now)
	require.NoError(t, err)
	assert.Equal(t, 5, sheet.LevelCooldownSeconds, "remaining seconds round up")

	_, err = svc.Sheet(ctx, uuid.New(), c.ID, w.Now)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}
