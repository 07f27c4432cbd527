package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/skystore/storefront/internal/domains/orders/adapters/memory"
	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
)

type capturingPublisher struct {
	events []ports.OrderPlaced
}

func (p *capturingPublisher) PublishOrderPlaced(_ context.Context, event ports.OrderPlaced) error {
	p.events = append(p.events, event)
	return nil
}

func line(productID, price string, quantity int) domain.OrderLine {
	return domain.OrderLine{
		ProductID: productID,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestCreateOrder_AssignsIDsAndPublishes(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := NewService(memory.NewRepository(), WithPublisher(publisher))

	order, err := svc.CreateOrder(context.Background(), []domain.OrderLine{
		line("the_odyssey", "99.99", 1),
		line("the_enigma", "5.99", 2),
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	require.Len(t, order.Details, 2)
	require.NotZero(t, order.Details[0].ID)
	require.Equal(t, "99.99", order.Details[0].Price.String())

	require.Len(t, publisher.events, 1)
	require.Equal(t, order.ID, publisher.events[0].OrderID)
	require.Equal(t, []string{"the_odyssey", "the_enigma"}, publisher.events[0].ProductIDs)
	require.Equal(t, []ports.OrderPlacedLine{
		{ProductID: "the_odyssey", Quantity: 1},
		{ProductID: "the_enigma", Quantity: 2},
	}, publisher.events[0].Lines)
	require.True(t, publisher.events[0].Total.Equal(decimal.RequireFromString("111.97")))
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateOrder(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), []domain.OrderLine{line("p1", "9.99", 0)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), []domain.OrderLine{line("", "9.99", 1)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.GetOrder(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrders_Pages(t *testing.T) {
	svc := NewService(memory.NewRepository())
	for i := 0; i < 5; i++ {
		_, err := svc.CreateOrder(context.Background(), []domain.OrderLine{line("p1", "1.50", 1)})
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.PageSize)
	require.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 3, page.Items[0].ID)
	require.EqualValues(t, 4, page.Items[1].ID)

	empty, err := svc.ListOrders(context.Background(), 9, 2)
	require.NoError(t, err)
	require.Empty(t, empty.Items)
	require.EqualValues(t, 5, empty.Total)
}

func TestGetOrderByProductID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateOrder(context.Background(), []domain.OrderLine{line("the_odyssey", "99.99", 1)})
	require.NoError(t, err)

	found, err := svc.GetOrderByProductID(context.Background(), "the_odyssey")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	none, err := svc.GetOrderByProductID(context.Background(), "unreferenced")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestUpdateOrder_ReplacesLines(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateOrder(context.Background(), []domain.OrderLine{line("p1", "9.99", 1)})
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(context.Background(), created.ID, []domain.OrderLine{
		line("p2", "3.00", 4),
	})
	require.NoError(t, err)
	require.Len(t, updated.Details, 1)
	require.Equal(t, "p2", updated.Details[0].ProductID)

	_, err = svc.UpdateOrder(context.Background(), created.ID, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteOrder(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateOrder(context.Background(), []domain.OrderLine{line("p1", "9.99", 1)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), created.ID))
	require.ErrorIs(t, svc.DeleteOrder(context.Background(), created.ID), ports.ErrNotFound)
}
