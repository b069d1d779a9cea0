package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellbreathe/backend/internal/domain"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	r, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() }) //nolint:errcheck
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestSQLite_KV_Missing(t *testing.T) {
	r := newTestRepository(t)

	value, ok, err := r.Get(context.Background(), domain.FavoritesKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLite_KV_SetAndOverwrite(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, domain.FavoritesKey, `[{"name":"Lisbon","threshold":25}]`))
	require.NoError(t, r.Set(ctx, domain.FavoritesKey, `[]`))

	value, ok, err := r.Get(ctx, domain.FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestSQLite_KV_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	r, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, r.Migrate(ctx))
	require.NoError(t, r.Set(ctx, domain.FavoritesKey, `[{"name":"Bogota","threshold":25}]`))
	require.NoError(t, r.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() }) //nolint:errcheck
	require.NoError(t, reopened.Migrate(ctx))

	value, ok, err := reopened.Get(ctx, domain.FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, value, "Bogota")
}

func TestSQLite_SimulationLogs(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.SaveSimulationLog(ctx, domain.SimulationLog{
		Input:     domain.SimulationInput{Temperature: 10, Humidity: 90, Wind: 20, Visibility: 10},
		Result:    domain.RiskLow,
		Source:    "heuristic",
		CreatedAt: base,
	}))
	require.NoError(t, r.SaveSimulationLog(ctx, domain.SimulationLog{
		Input:     domain.SimulationInput{Temperature: 28, Humidity: 80, Wind: 20, Visibility: 3},
		Result:    domain.RiskElevated,
		Source:    "heuristic",
		CreatedAt: base.Add(time.Minute),
	}))

	logs, err := r.RecentSimulationLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.RiskElevated, logs[0].Result)
	assert.InDelta(t, 3.0, logs[0].Input.Visibility, 1e-9)
	assert.Equal(t, domain.RiskLow, logs[1].Result)
}

func TestSQLite_Health(t *testing.T) {
	r := newTestRepository(t)
	assert.NoError(t, r.Health(context.Background()))
}
