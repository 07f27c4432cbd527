//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/skystore/storefront/internal/domains/orders/adapters/persistence/postgres"
	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
	"github.com/skystore/storefront/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	})
	return db
}

func newLine(productID, price string, quantity int) domain.OrderLine {
	return domain.OrderLine{
		ProductID: productID,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestPostgresRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo := orderspostgres.NewRepository(setupPostgresContainer(t))
	ctx := context.Background()

	order, err := domain.NewOrder([]domain.OrderLine{
		newLine("the_odyssey", "99.99", 1),
		newLine("the_enigma", "5.99", 2),
	})
	require.NoError(t, err)

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Details, 2)
	require.NotZero(t, created.Details[0].ID)
	require.False(t, created.CreatedAt.IsZero())

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "the_odyssey", loaded.Details[0].ProductID)
	require.Equal(t, "the_enigma", loaded.Details[1].ProductID)
	// Prices must survive the numeric column without float drift.
	require.True(t, loaded.Details[0].Price.Equal(decimal.RequireFromString("99.99")))
	require.True(t, loaded.Details[1].Price.Equal(decimal.RequireFromString("5.99")))
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo := orderspostgres.NewRepository(setupPostgresContainer(t))

	_, err := repo.GetByID(context.Background(), 424242)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListPagesWithTotal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo := orderspostgres.NewRepository(setupPostgresContainer(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		order, err := domain.NewOrder([]domain.OrderLine{newLine("p1", "1.50", 1)})
		require.NoError(t, err)
		_, err = repo.Create(ctx, order)
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, items, 2)
	require.Less(t, items[0].ID, items[1].ID)

	empty, total, err := repo.List(ctx, 4, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Empty(t, empty)
}

func TestPostgresRepository_FindByProductID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo := orderspostgres.NewRepository(setupPostgresContainer(t))
	ctx := context.Background()

	order, err := domain.NewOrder([]domain.OrderLine{newLine("the_odyssey", "99.99", 1)})
	require.NoError(t, err)
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByProductID(ctx, "the_odyssey")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	none, err := repo.FindByProductID(ctx, "unreferenced")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestPostgresRepository_UpdateReplacesLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	repo := orderspostgres.NewRepository(setupPostgresContainer(t))
	ctx := context.Background()

	order, err := domain.NewOrder([]domain.OrderLine{newLine("p1", "9.99", 1)})
	require.NoError(t, err)
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	created.Details = []domain.OrderLine{newLine("p2", "3.00", 4)}
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	require.Len(t, updated.Details, 1)
	require.Equal(t, "p2", updated.Details[0].ProductID)

	// The denormalized product set follows the new lines.
	stale, err := repo.FindByProductID(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, stale)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupPostgresContainer(t)
	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order, err := domain.NewOrder([]domain.OrderLine{
		newLine("p1", "9.99", 1),
		newLine("p2", "3.00", 2),
	})
	require.NoError(t, err)
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	// No orphaned lines survive the delete.
	var lineCount int64
	require.NoError(t, db.Table("order_lines").
		Where("order_id = ?", created.ID).
		Count(&lineCount).Error)
	require.Zero(t, lineCount)

	require.ErrorIs(t, repo.Delete(ctx, created.ID), ports.ErrNotFound)
}
