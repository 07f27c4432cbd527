package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skystore/storefront/internal/domains/products/adapters/memory"
	"github.com/skystore/storefront/internal/domains/products/domain"
	"github.com/skystore/storefront/internal/domains/products/ports"
)

func newCatalog(t *testing.T, products ...*domain.Product) *Service {
	t.Helper()
	svc := NewService(memory.NewStore())
	for _, product := range products {
		require.NoError(t, svc.Create(context.Background(), product))
	}
	return svc
}

func mustProduct(t *testing.T, id string) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, "Airship "+id, 10, 5, 3)
	require.NoError(t, err)
	return product
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newCatalog(t)

	err := svc.Create(context.Background(), &domain.Product{ID: "p1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Create(context.Background(), &domain.Product{Title: "no id"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(context.Background(), "p1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreate_UpsertOverwrites(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "p1"))

	second, err := domain.NewProduct("p1", "Renamed", 20, 7, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Create(context.Background(), second))

	stored, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", stored.Title)
	require.Equal(t, 20, stored.PassengerCapacity)
	require.Equal(t, 1, stored.InStock)
}

func TestGet_NotFound(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_EmptyIDsScansEverything(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "a"), mustProduct(t, "b"), mustProduct(t, "c"))

	products, err := svc.List(context.Background(), nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	require.ElementsMatch(t, []string{"a", "b", "c"}, ids)
}

func TestList_MissingIDsSilentlySkipped(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "a"))

	products, err := svc.List(context.Background(), []string{"a", "z"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "a", products[0].ID)
}

func TestDelete(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "p1"))

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	require.ErrorIs(t, svc.Delete(context.Background(), "p1"), ports.ErrNotFound)

	_, err := svc.Get(context.Background(), "p1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDecrementStock_MayGoNegative(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "p1"))

	left, err := svc.DecrementStock(context.Background(), "p1", 2)
	require.NoError(t, err)
	require.Equal(t, 1, left)

	left, err = svc.DecrementStock(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Equal(t, -4, left)
}

func TestDecrementStock_RejectsNegativeAmount(t *testing.T) {
	svc := newCatalog(t, mustProduct(t, "p1"))

	_, err := svc.DecrementStock(context.Background(), "p1", -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}
