package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/cleanslate/backend/internal/models"
)

func setupPostgresDriver(t *testing.T) (*PostgresDriver, *pgxpool.Pool) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	slot := "test-" + uuid.NewString()
	driver, err := NewPostgresDriver(ctx, pool, slot)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM app_snapshots WHERE slot = $1`, slot)
	})

	return driver, pool
}

func TestPostgresDriverEmptySlot(t *testing.T) {
	driver, _ := setupPostgresDriver(t)

	_, err := driver.Read(context.Background())
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestPostgresDriverSchemaIsIdempotent(t *testing.T) {
	driver, pool := setupPostgresDriver(t)

	_, err := NewPostgresDriver(context.Background(), pool, driver.slot)
	assert.NoError(t, err)
}

func TestPostgresDriverUpsertAndDelete(t *testing.T) {
	driver, pool := setupPostgresDriver(t)
	ctx := context.Background()

	first, err := Encode(models.DefaultState())
	require.NoError(t, err)
	require.NoError(t, driver.Write(ctx, first))

	second, err := Encode(customState())
	require.NoError(t, err)
	require.NoError(t, driver.Write(ctx, second))

	var rows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM app_snapshots WHERE slot = $1`, driver.slot).Scan(&rows))
	assert.Equal(t, 1, rows)

	payload, err := driver.Read(ctx)
	require.NoError(t, err)
	// JSONB переупорядочивает ключи, поэтому сравниваются разобранные состояния.
	got, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, customState(), got)

	require.NoError(t, driver.Delete(ctx))
	_, err = driver.Read(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestPostgresSnapshotStoreRoundTrip(t *testing.T) {
	driver, _ := setupPostgresDriver(t)
	store := New(driver, quietLogger())
	ctx := context.Background()

	assert.Equal(t, models.DefaultState(), store.Load(ctx))

	state := customState()
	store.Save(ctx, state)
	assert.Equal(t, state, store.Load(ctx))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, models.DefaultState(), store.Load(ctx))
}
