package cooldown_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/database/memory"
	"github.com/osse101/wwwhero/internal/domain"
)

func newCharacter(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	c := &domain.Character{UserID: uuid.New(), Name: "Hero", Level: 1}
	require.NoError(t, tx.InsertCharacter(ctx, c))
	require.NoError(t, tx.Commit(ctx))
	return c.ID
}

func schedule(t *testing.T, store *memory.Store, svc cooldown.Service, characterID int64, until time.Time) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Schedule(ctx, tx, characterID, domain.CooldownLevel, until))
	require.NoError(t, tx.Commit(ctx))
}

func TestService_CheckAndGate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := cooldown.NewService(store, cooldown.Config{})
	id := newCharacter(t, store)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	onCooldown, _, err := svc.Check(ctx, id, domain.CooldownLevel, now)
	require.NoError(t, err)
	assert.False(t, onCooldown)

	schedule(t, store, svc, id, now.Add(4*time.Second))

	onCooldown, remaining, err := svc.Check(ctx, id, domain.CooldownLevel, now)
	require.NoError(t, err)
	assert.True(t, onCooldown)
	assert.Equal(t, 4*time.Second, remaining)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = svc.Gate(ctx, tx, id, domain.CooldownLevel, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOnCooldown))
	var cdErr domain.CooldownActiveError
	require.True(t, errors.As(err, &cdErr))
	assert.Equal(t, domain.CooldownLevel, cdErr.Type)

	// decays purely by wall-clock passage
	assert.NoError(t, svc.Gate(ctx, tx, id, domain.CooldownLevel, now.Add(4*time.Second)))
}

func TestService_ScheduleKeepsOneRowPerType(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := cooldown.NewService(store, cooldown.Config{})
	id := newCharacter(t, store)
	now := time.Now()

	schedule(t, store, svc, id, now.Add(time.Minute))
	schedule(t, store, svc, id, now.Add(time.Hour))

	cd, err := store.GetCooldown(ctx, id, domain.CooldownLevel)
	require.NoError(t, err)
	require.NotNil(t, cd)
	assert.Equal(t, now.Add(time.Hour), cd.Until)
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := cooldown.NewService(store, cooldown.Config{})
	id := newCharacter(t, store)
	now := time.Now()

	schedule(t, store, svc, id, now.Add(time.Hour))
	require.NoError(t, svc.Reset(ctx, id, domain.CooldownLevel))

	onCooldown, _, err := svc.Check(ctx, id, domain.CooldownLevel, now)
	require.NoError(t, err)
	assert.False(t, onCooldown)
}

func TestService_DevModeBypassesGate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := cooldown.NewService(store, cooldown.Config{DevMode: true})
	id := newCharacter(t, store)
	now := time.Now()

	schedule(t, store, svc, id, now.Add(time.Hour))

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	assert.NoError(t, svc.Gate(ctx, tx, id, domain.CooldownLevel, now))
}

func TestService_InvalidType(t *testing.T) {
	svc := cooldown.NewService(memory.NewStore(), cooldown.Config{})
	_, _, err := svc.Check(context.Background(), 1, domain.CooldownType("NAP"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
