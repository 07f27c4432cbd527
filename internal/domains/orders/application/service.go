package application

import (
	"context"
	"log/slog"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
)

// Service orchestrates the order service use cases.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithPublisher wires the order-placed event publisher.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the order service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates and persists a new order, then publishes the
// order-placed event. The event is best-effort: the order stands even when
// publication fails.
func (s *Service) CreateOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	order, err := domain.NewOrder(lines)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.publishPlaced(ctx, created)
	return created, nil
}

// GetOrder loads one order with its line items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns one page of orders. The repository owns slicing and the
// total count; the page parameters arrive already sanitized by the caller.
func (s *Service) ListOrders(ctx context.Context, page, pageSize int) (*ports.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	items, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{Page: page, PageSize: pageSize, Total: total, Items: items}, nil
}

// GetOrderByProductID returns any order referencing the product, nil when none.
func (s *Service) GetOrderByProductID(ctx context.Context, productID string) (*domain.Order, error) {
	return s.repo.FindByProductID(ctx, productID)
}

// UpdateOrder replaces the line items of an existing order.
func (s *Service) UpdateOrder(ctx context.Context, id int64, lines []domain.OrderLine) (*domain.Order, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Details = append([]domain.OrderLine{}, lines...)
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, existing)
}

// DeleteOrder removes an order and its lines.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) publishPlaced(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	lines := make([]ports.OrderPlacedLine, 0, len(order.Details))
	for _, line := range order.Details {
		lines = append(lines, ports.OrderPlacedLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	event := ports.OrderPlaced{
		OrderID:    order.ID,
		ProductIDs: order.ProductIDs(),
		Lines:      lines,
		Total:      order.Total(),
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn("order placed event publication failed",
			slog.Int64("order.id", order.ID), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
