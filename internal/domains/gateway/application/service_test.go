package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/skystore/storefront/internal/domains/gateway/adapters/memory"
	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
)

type stubCatalog struct {
	products  map[string]*gwtypes.Product
	listCalls int
	deleted   []string
}

func newStubCatalog(products ...*gwtypes.Product) *stubCatalog {
	c := &stubCatalog{products: map[string]*gwtypes.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *stubCatalog) Get(_ context.Context, id string) (*gwtypes.Product, error) {
	product, ok := c.products[id]
	if !ok {
		return nil, &ports.NotFoundError{Sentinel: ports.ErrProductNotFound, Message: fmt.Sprintf("Product ID %s does not exist", id)}
	}
	return product, nil
}

func (c *stubCatalog) List(_ context.Context, ids []string) ([]*gwtypes.Product, error) {
	c.listCalls++
	if len(ids) == 0 {
		result := make([]*gwtypes.Product, 0, len(c.products))
		for _, p := range c.products {
			result = append(result, p)
		}
		return result, nil
	}
	result := make([]*gwtypes.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (c *stubCatalog) Create(_ context.Context, input gwtypes.CreateProductInput) error {
	c.products[input.ID] = &gwtypes.Product{
		ID:                input.ID,
		Title:             input.Title,
		PassengerCapacity: input.PassengerCapacity,
		MaximumSpeed:      input.MaximumSpeed,
		InStock:           input.InStock,
	}
	return nil
}

func (c *stubCatalog) Delete(_ context.Context, id string) error {
	if _, ok := c.products[id]; !ok {
		return &ports.NotFoundError{Sentinel: ports.ErrProductNotFound, Message: fmt.Sprintf("Product ID %s does not exist", id)}
	}
	delete(c.products, id)
	c.deleted = append(c.deleted, id)
	return nil
}

type stubOrders struct {
	orders      map[int64]*gwtypes.Order
	nextID      int64
	createCalls int
	lastPage    int
	lastSize    int
}

func newStubOrders(orders ...*gwtypes.Order) *stubOrders {
	s := &stubOrders{orders: map[int64]*gwtypes.Order{}, nextID: 1}
	for _, o := range orders {
		s.orders[o.ID] = o
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}
	return s
}

func (s *stubOrders) GetOrder(_ context.Context, id int64) (*gwtypes.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, &ports.NotFoundError{Sentinel: ports.ErrOrderNotFound, Message: fmt.Sprintf("Order with id %d not found", id)}
	}
	return order, nil
}

func (s *stubOrders) GetOrderByProductID(_ context.Context, productID string) (*gwtypes.Order, error) {
	for _, order := range s.orders {
		for _, line := range order.Details {
			if line.ProductID == productID {
				return order, nil
			}
		}
	}
	return nil, nil
}

func (s *stubOrders) ListOrders(_ context.Context, page, pageSize int) (*gwtypes.OrderPage, error) {
	s.lastPage = page
	s.lastSize = pageSize
	items := make([]*gwtypes.Order, 0, len(s.orders))
	for _, order := range s.orders {
		items = append(items, order)
	}
	return &gwtypes.OrderPage{Page: page, PageSize: pageSize, Total: int64(len(items)), Items: items}, nil
}

func (s *stubOrders) CreateOrder(_ context.Context, lines []gwtypes.NewOrderLine) (*gwtypes.Order, error) {
	s.createCalls++
	order := &gwtypes.Order{ID: s.nextID}
	s.nextID++
	for i, line := range lines {
		order.Details = append(order.Details, gwtypes.OrderLine{
			ID:        int64(i + 1),
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	s.orders[order.ID] = order
	return order, nil
}

func product(id, title string, stock int) *gwtypes.Product {
	return &gwtypes.Product{ID: id, Title: title, PassengerCapacity: 4, MaximumSpeed: 1000, InStock: stock}
}

func orderLine(id int64, productID, price string, qty int) gwtypes.OrderLine {
	return gwtypes.OrderLine{ID: id, ProductID: productID, Price: decimal.RequireFromString(price), Quantity: qty}
}

func newLine(productID, price string, qty int) gwtypes.NewOrderLine {
	return gwtypes.NewOrderLine{ProductID: productID, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestGetProduct(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	svc := NewService(catalog, newStubOrders(), "http://example.com/airship/images")

	got, err := svc.GetProduct(context.Background(), "the_odyssey")
	require.NoError(t, err)
	require.Equal(t, "The Odyssey", got.Title)

	_, err = svc.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrProductNotFound)
	require.Equal(t, "Product ID missing does not exist", err.Error())

	_, err = svc.GetProduct(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProduct(t *testing.T) {
	catalog := newStubCatalog()
	svc := NewService(catalog, newStubOrders(), "http://example.com/airship/images")

	id, err := svc.CreateProduct(context.Background(), gwtypes.CreateProductInput{
		ID: "the_enigma", Title: "The Enigma", PassengerCapacity: 4, MaximumSpeed: 200, InStock: 8,
	})
	require.NoError(t, err)
	require.Equal(t, "the_enigma", id)
	require.Contains(t, catalog.products, "the_enigma")

	_, err = svc.CreateProduct(context.Background(), gwtypes.CreateProductInput{Title: "No ID"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), gwtypes.CreateProductInput{ID: "x", Title: "X", InStock: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteProduct_RefusedWhileReferenced(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	orders := newStubOrders(&gwtypes.Order{ID: 7, Details: []gwtypes.OrderLine{orderLine(1, "the_odyssey", "99.99", 1)}})
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	_, err := svc.DeleteProduct(context.Background(), "the_odyssey")
	require.ErrorIs(t, err, ErrProductReferenced)
	require.Contains(t, catalog.products, "the_odyssey")
	require.Empty(t, catalog.deleted)
}

func TestDeleteProduct_RemovesUnreferenced(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	svc := NewService(catalog, newStubOrders(), "http://example.com/airship/images")

	id, err := svc.DeleteProduct(context.Background(), "the_odyssey")
	require.NoError(t, err)
	require.Equal(t, "the_odyssey", id)
	require.NotContains(t, catalog.products, "the_odyssey")
}

func TestGetOrder_EnrichesEveryLine(t *testing.T) {
	catalog := newStubCatalog(
		product("the_odyssey", "The Odyssey", 10),
		product("the_enigma", "The Enigma", 3),
	)
	orders := newStubOrders(&gwtypes.Order{ID: 1, Details: []gwtypes.OrderLine{
		orderLine(1, "the_odyssey", "99.99", 1),
		orderLine(2, "the_enigma", "5.99", 8),
	}})
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	got, err := svc.GetOrder(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got.Details, 2)
	require.Equal(t, "The Odyssey", got.Details[0].Product.Title)
	require.Equal(t, "http://example.com/airship/images/the_odyssey.jpg", got.Details[0].Image)
	require.Equal(t, "http://example.com/airship/images/the_enigma.jpg", got.Details[1].Image)
	require.Equal(t, "99.99", got.Details[0].Price.String())
	require.Equal(t, 1, catalog.listCalls)
}

func TestGetOrder_NotFoundKeepsBackendMessage(t *testing.T) {
	svc := NewService(newStubCatalog(), newStubOrders(), "http://example.com/airship/images")

	_, err := svc.GetOrder(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
	require.Equal(t, "Order with id 42 not found", err.Error())
}

func TestGetOrder_MissingProductFailsWhole(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	orders := newStubOrders(&gwtypes.Order{ID: 3, Details: []gwtypes.OrderLine{
		orderLine(1, "the_odyssey", "99.99", 1),
		orderLine(2, "vanished", "1.00", 1),
	}})
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	_, err := svc.GetOrder(context.Background(), 3)
	require.ErrorIs(t, err, ErrProductDataMissing)
	require.Contains(t, err.Error(), "vanished")
}

func TestListOrders_ClampsPagination(t *testing.T) {
	orders := newStubOrders()
	svc := NewService(newStubCatalog(), orders, "http://example.com/airship/images")

	_, err := svc.ListOrders(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, orders.lastPage)
	require.Equal(t, 30, orders.lastSize)

	_, err = svc.ListOrders(context.Background(), 2, 500)
	require.NoError(t, err)
	require.Equal(t, 2, orders.lastPage)
	require.Equal(t, 100, orders.lastSize)
}

func TestListOrders_EnrichesBatchWithOneCatalogCall(t *testing.T) {
	catalog := newStubCatalog(
		product("the_odyssey", "The Odyssey", 10),
		product("the_enigma", "The Enigma", 3),
	)
	orders := newStubOrders(
		&gwtypes.Order{ID: 1, Details: []gwtypes.OrderLine{orderLine(1, "the_odyssey", "99.99", 1)}},
		&gwtypes.Order{ID: 2, Details: []gwtypes.OrderLine{orderLine(2, "the_enigma", "5.99", 2), orderLine(3, "the_odyssey", "99.99", 1)}},
	)
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	page, err := svc.ListOrders(context.Background(), 1, 30)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	for _, order := range page.Items {
		for _, line := range order.Details {
			require.NotNil(t, line.Product)
			require.Equal(t, line.ProductID, line.Product.ID)
		}
	}
	require.Equal(t, 1, catalog.listCalls)
}

func TestCreateOrder_RejectsFirstUnknownProduct(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	orders := newStubOrders()
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	_, err := svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{Details: []gwtypes.NewOrderLine{
		newLine("the_odyssey", "99.99", 1),
		newLine("ghost_one", "1.00", 1),
		newLine("ghost_two", "2.00", 1),
	}})
	require.ErrorIs(t, err, ErrUnknownProduct)
	require.Contains(t, err.Error(), "ghost_one")
	require.NotContains(t, err.Error(), "ghost_two")
	require.Zero(t, orders.createCalls)
}

func TestCreateOrder_Succeeds(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	orders := newStubOrders()
	svc := NewService(catalog, orders, "http://example.com/airship/images")

	id, err := svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{Details: []gwtypes.NewOrderLine{
		newLine("the_odyssey", "99.99", 2),
	}})
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
	require.Equal(t, 1, orders.createCalls)
}

func TestCreateOrder_ValidatesInput(t *testing.T) {
	svc := NewService(newStubCatalog(), newStubOrders(), "http://example.com/airship/images")

	_, err := svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{Details: []gwtypes.NewOrderLine{
		newLine("the_odyssey", "99.99", 0),
	}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{Details: []gwtypes.NewOrderLine{
		newLine("the_odyssey", "-1", 1),
	}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	orders := newStubOrders()
	svc := NewService(catalog, orders, "http://example.com/airship/images",
		WithIdempotencyStore(memory.NewIdempotencyStore()))

	input := gwtypes.CreateOrderInput{
		Details:        []gwtypes.NewOrderLine{newLine("the_odyssey", "99.99", 1)},
		IdempotencyKey: "key-1",
	}
	first, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, orders.createCalls)
}

func TestCreateOrder_IdempotencyConflict(t *testing.T) {
	catalog := newStubCatalog(product("the_odyssey", "The Odyssey", 10))
	svc := NewService(catalog, newStubOrders(), "http://example.com/airship/images",
		WithIdempotencyStore(memory.NewIdempotencyStore()))

	_, err := svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{
		Details:        []gwtypes.NewOrderLine{newLine("the_odyssey", "99.99", 1)},
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), gwtypes.CreateOrderInput{
		Details:        []gwtypes.NewOrderLine{newLine("the_odyssey", "99.99", 3)},
		IdempotencyKey: "key-1",
	})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
