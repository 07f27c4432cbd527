package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
)

const tracerName = "github.com/skystore/storefront/internal/domains/gateway/adapters/observability/service"

// Service decorates the gateway service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core gateway service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) GetProduct(ctx context.Context, id string) (*gwtypes.Product, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, input gwtypes.CreateProductInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.CreateProduct", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.id", input.ID))
	id, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to create product", slog.String("product.id", input.ID))
	}
	s.metrics.recordProductCreated(ctx)
	s.logInfo(ctx, "product created", slog.String("product.id", id))
	return id, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.String("product.id", id))
	deleted, err := s.inner.DeleteProduct(ctx, id)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.logInfo(ctx, "product deleted", slog.String("product.id", deleted))
	return deleted, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*gwtypes.EnrichedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	span.SetAttributes(attribute.Int("order.lines", len(result.Details)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, page, pageSize int) (*gwtypes.EnrichedOrderPage, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.ListOrders",
		trace.WithAttributes(attribute.Int("page", page), attribute.Int("page_size", pageSize)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, page, pageSize)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int("page", page))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result.Items)))
	return result, nil
}

func (s *Service) CreateOrder(ctx context.Context, input gwtypes.CreateOrderInput) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "GatewayService.CreateOrder",
		trace.WithAttributes(attribute.Int("order.lines", len(input.Details))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Int("order.lines", len(input.Details)))
	id, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to create order")
	}
	s.metrics.recordOrderCreated(ctx)
	s.logInfo(ctx, "order created", slog.Int64("order.id", id))
	return id, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	productsCreated metric.Int64Counter
	ordersCreated   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("gateway.service.products_created", metric.WithDescription("Number of products created through the gateway"))
	ordersCreated, _ := m.Int64Counter("gateway.service.orders_created", metric.WithDescription("Number of orders created through the gateway"))
	return serviceMetrics{productsCreated: productsCreated, ordersCreated: ordersCreated}
}

func (m serviceMetrics) recordProductCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordOrderCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
