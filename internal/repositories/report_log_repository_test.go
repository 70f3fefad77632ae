package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"produce-backend/internal/database"
	"produce-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *ReportLogRepository {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("postgres unreachable: %v", err)
	}
	require.NoError(t, database.NewMigrator(pool, "../../migrations").RunMigrations(ctx))
	return NewReportLogRepository(pool)
}

func TestListRecentEmptyIsNotNil(t *testing.T) {
	repo := testRepo(t)

	logs, err := repo.ListRecent(context.Background(), "no_such_kind", 10)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestCreateListPrune(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	entry := &models.ReportLog{
		Kind:       "test_bill",
		Format:     "xlsx",
		Reference:  "B-1",
		UserName:   "Nimal",
		LineCount:  2,
		GrandTotal: decimal.RequireFromString("5125.00"),
	}
	require.NoError(t, repo.Create(ctx, entry))
	assert.NotZero(t, entry.ID)

	logs, err := repo.ListRecent(ctx, "test_bill", 10)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, "B-1", logs[0].Reference)
	assert.True(t, logs[0].GrandTotal.Equal(entry.GrandTotal))

	_, err = repo.DeleteBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	logs, err = repo.ListRecent(ctx, "test_bill", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
