package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 30
	maxPageSize     = 100
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the storefront gateway use cases over the two backends.
type Service struct {
	catalog   ports.ProductCatalog
	orders    ports.OrderBackend
	imageRoot string
	idems     ports.IdempotencyStore
	logger    *slog.Logger
}

// Option customizes optional service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdempotencyStore enables replay-safe order creation for clients that
// send an Idempotency-Key header.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idems = store
	}
}

// NewService wires the gateway service. imageRoot is the base URL product
// images are served from; line images resolve to "<imageRoot>/<productID>.jpg".
func NewService(catalog ports.ProductCatalog, orders ports.OrderBackend, imageRoot string, opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		orders:    orders,
		imageRoot: strings.TrimRight(imageRoot, "/"),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProduct loads one product from the catalog backend.
func (s *Service) GetProduct(ctx context.Context, id string) (*gwtypes.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return s.catalog.Get(ctx, id)
}

// CreateProduct validates and upserts a catalog document, returning its id.
func (s *Service) CreateProduct(ctx context.Context, input gwtypes.CreateProductInput) (string, error) {
	if err := validateProductInput(input); err != nil {
		return "", err
	}
	if err := s.catalog.Create(ctx, input); err != nil {
		return "", err
	}
	return input.ID, nil
}

// DeleteProduct removes a product, refusing while any order still references it.
func (s *Service) DeleteProduct(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	order, err := s.orders.GetOrderByProductID(ctx, id)
	if err != nil {
		return "", err
	}
	if order != nil {
		return "", fmt.Errorf("%w: %s is used by order %d", ErrProductReferenced, id, order.ID)
	}
	if err := s.catalog.Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// GetOrder loads one order and joins every line with its product document.
func (s *Service) GetOrder(ctx context.Context, id int64) (*gwtypes.EnrichedOrder, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrichOrders(ctx, []*gwtypes.Order{order})
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

// ListOrders returns one enriched page of the order history. Page and size
// fall back to their defaults when non-positive; size is capped at 100.
func (s *Service) ListOrders(ctx context.Context, page, pageSize int) (*gwtypes.EnrichedOrderPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	backendPage, err := s.orders.ListOrders(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrichOrders(ctx, backendPage.Items)
	if err != nil {
		return nil, err
	}
	return &gwtypes.EnrichedOrderPage{
		Page:     backendPage.Page,
		PageSize: backendPage.PageSize,
		Total:    backendPage.Total,
		Items:    enriched,
	}, nil
}

// CreateOrder verifies every referenced product exists, then submits the
// order to the orders backend. With an Idempotency-Key present, retries of
// the same payload replay the original order id instead of placing twice.
func (s *Service) CreateOrder(ctx context.Context, input gwtypes.CreateOrderInput) (int64, error) {
	if err := validateOrderInput(input); err != nil {
		return 0, err
	}

	var fingerprint string
	if input.IdempotencyKey != "" && s.idems != nil {
		var err error
		fingerprint, err = FingerprintCreateOrder(input)
		if err != nil {
			return 0, err
		}
		existing, err := s.idems.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			if existing.LinesHash != fingerprint {
				return 0, ports.ErrIdempotencyConflict
			}
			s.logger.InfoContext(ctx, "replaying idempotent order creation",
				slog.String("idempotency_key", input.IdempotencyKey),
				slog.Int64("order_id", existing.OrderID))
			return existing.OrderID, nil
		}
	}

	if err := s.checkProductsExist(ctx, input.Details); err != nil {
		return 0, err
	}

	order, err := s.orders.CreateOrder(ctx, input.Details)
	if err != nil {
		return 0, err
	}

	if fingerprint != "" {
		record := ports.IdempotencyRecord{
			Key:       input.IdempotencyKey,
			LinesHash: fingerprint,
			LineCount: len(input.Details),
			OrderID:   order.ID,
		}
		if _, err := s.idems.Save(ctx, record); err != nil {
			if errors.Is(err, ports.ErrIdempotencyConflict) {
				return 0, err
			}
			s.logger.WarnContext(ctx, "failed to persist idempotency record",
				slog.String("idempotency_key", input.IdempotencyKey),
				slog.Any("error", err))
		}
	}
	return order.ID, nil
}

// checkProductsExist batch-loads the distinct referenced ids and reports the
// first unknown one in submission order, before any state changes.
func (s *Service) checkProductsExist(ctx context.Context, lines []gwtypes.NewOrderLine) error {
	distinct := distinctProductIDs(lines)
	known, err := s.catalog.List(ctx, distinct)
	if err != nil {
		return err
	}
	exists := make(map[string]struct{}, len(known))
	for _, product := range known {
		exists[product.ID] = struct{}{}
	}
	for _, id := range distinct {
		if _, ok := exists[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
	}
	return nil
}

// enrichOrders joins every order line across the batch with its product in a
// single catalog round trip. A referenced product missing from the catalog
// fails the whole call; a partial order view is never returned.
func (s *Service) enrichOrders(ctx context.Context, orders []*gwtypes.Order) ([]*gwtypes.EnrichedOrder, error) {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, order := range orders {
		for _, line := range order.Details {
			if _, ok := seen[line.ProductID]; ok {
				continue
			}
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}

	products := make(map[string]*gwtypes.Product, len(ids))
	if len(ids) > 0 {
		found, err := s.catalog.List(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, product := range found {
			products[product.ID] = product
		}
	}

	enriched := make([]*gwtypes.EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		view := &gwtypes.EnrichedOrder{
			ID:      order.ID,
			Details: make([]gwtypes.EnrichedOrderLine, 0, len(order.Details)),
		}
		for _, line := range order.Details {
			product, ok := products[line.ProductID]
			if !ok {
				return nil, fmt.Errorf("%w: product %s referenced by order %d", ErrProductDataMissing, line.ProductID, order.ID)
			}
			view.Details = append(view.Details, gwtypes.EnrichedOrderLine{
				ID:        line.ID,
				ProductID: line.ProductID,
				Price:     line.Price,
				Quantity:  line.Quantity,
				Product:   product,
				Image:     fmt.Sprintf("%s/%s.jpg", s.imageRoot, line.ProductID),
			})
		}
		enriched = append(enriched, view)
	}
	return enriched, nil
}

func validateProductInput(input gwtypes.CreateProductInput) error {
	switch {
	case input.ID == "":
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	case input.Title == "":
		return fmt.Errorf("%w: product title is required", ErrInvalidInput)
	case input.PassengerCapacity < 0:
		return fmt.Errorf("%w: passenger capacity must not be negative", ErrInvalidInput)
	case input.MaximumSpeed < 0:
		return fmt.Errorf("%w: maximum speed must not be negative", ErrInvalidInput)
	case input.InStock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateOrderInput(input gwtypes.CreateOrderInput) error {
	if len(input.Details) == 0 {
		return fmt.Errorf("%w: an order needs at least one line", ErrInvalidInput)
	}
	for i, line := range input.Details {
		switch {
		case line.ProductID == "":
			return fmt.Errorf("%w: line %d is missing a product id", ErrInvalidInput, i)
		case line.Quantity < 1:
			return fmt.Errorf("%w: line %d needs a positive quantity", ErrInvalidInput, i)
		case !line.Price.IsPositive():
			return fmt.Errorf("%w: line %d needs a positive price", ErrInvalidInput, i)
		}
	}
	return nil
}

// distinctProductIDs preserves first-occurrence submission order so the
// first offender reported for an unknown product is deterministic.
func distinctProductIDs(lines []gwtypes.NewOrderLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
