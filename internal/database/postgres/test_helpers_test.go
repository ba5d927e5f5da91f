package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/wwwhero/internal/database"
	"github.com/osse101/wwwhero/internal/domain"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
	migrateOnce      sync.Once
	migrateErr       error
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// testcontainers panics when no Docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// newTestStore returns a store on the migrated test database, skipping the
// test when no database is available
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	migrateOnce.Do(func() {
		ctx := context.Background()
		testPool, migrateErr = database.NewPool(ctx, testDBConnString, database.PoolOptions{
			MaxConns:        20,
			MaxConnIdleTime: time.Minute,
			MaxConnLifetime: 5 * time.Minute,
		})
		if migrateErr != nil {
			return
		}
		_, migrateErr = database.Migrate(ctx, testPool)
	})
	require.NoError(t, migrateErr)
	return NewStore(testPool)
}

// seedHero inserts a character with an inventory for a fresh user
func seedHero(t *testing.T, s *Store, name string, level, maxSpace int) (domain.Character, domain.Inventory) {
	t.Helper()
	ctx := context.Background()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &domain.Character{UserID: uuid.New(), Name: name, Level: level, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, tx.InsertCharacter(ctx, c))

	inv := &domain.Inventory{CharacterID: c.ID, MaxSpace: maxSpace}
	require.NoError(t, tx.InsertInventory(ctx, inv))
	require.NoError(t, tx.Commit(ctx))
	return *c, *inv
}

// seedBlueprint upserts bp under a name unique to the test
func seedBlueprint(t *testing.T, s *Store, bp domain.ItemBlueprint) domain.ItemBlueprint {
	t.Helper()
	bp.Name = fmt.Sprintf("%s-%s", bp.Name, uuid.NewString()[:8])
	if bp.SlotType == "" {
		bp.SlotType = domain.SlotNone
	}
	require.NoError(t, s.UpsertBlueprint(context.Background(), &bp))
	return bp
}

func seedLocation(t *testing.T, s *Store, minLevel int) domain.Location {
	t.Helper()
	loc := domain.Location{
		Name:     "Field-" + uuid.NewString()[:8],
		MinLevel: minLevel,
		Type:     domain.LocationField,
		IsActive: true,
	}
	require.NoError(t, s.UpsertLocation(context.Background(), &loc))
	return loc
}
