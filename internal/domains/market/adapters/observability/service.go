package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	marketports "github.com/ecomarket/marketplace/internal/domains/market/ports"
	userdomain "github.com/ecomarket/marketplace/internal/domains/users/domain"
)

const tracerName = "github.com/ecomarket/marketplace/internal/domains/market/adapters/observability/service"

// Service decorates the marketplace orchestrator with tracing, logging, and metrics.
type Service struct {
	inner   marketports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core marketplace service.
func New(inner marketports.Service, opts ...Option) marketports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Buy(ctx context.Context, username, productID string) (*userdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "MarketService.Buy",
		trace.WithAttributes(attribute.String("user.username", username), attribute.String("product.id", productID)))
	defer span.End()
	s.logInfo(ctx, "placing order", slog.String("username", username), slog.String("product_id", productID))
	order, err := s.inner.Buy(ctx, username, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrOutOfStock) {
			s.metrics.recordOutOfStock(ctx)
		}
		return nil, s.handleError(ctx, span, err, "buy failed",
			slog.String("username", username), slog.String("product_id", productID))
	}
	span.SetAttributes(attribute.String("order.id", order.ID))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.String("username", username), slog.String("order_id", order.ID))
	return order, nil
}

func (s *Service) PendingOrders(ctx context.Context) ([]marketports.PlacedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "MarketService.PendingOrders")
	defer span.End()
	pending, err := s.inner.PendingOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pending orders")
	}
	span.SetAttributes(attribute.Int("orders.pending", len(pending)))
	return pending, nil
}

func (s *Service) AllOrders(ctx context.Context) ([]marketports.PlacedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "MarketService.AllOrders")
	defer span.End()
	return s.inner.AllOrders(ctx)
}

func (s *Service) Approve(ctx context.Context, username, orderID string) (*userdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "MarketService.Approve",
		trace.WithAttributes(attribute.String("user.username", username), attribute.String("order.id", orderID)))
	defer span.End()
	order, err := s.inner.Approve(ctx, username, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "approval failed",
			slog.String("username", username), slog.String("order_id", orderID))
	}
	s.metrics.recordApproved(ctx, 1)
	s.logInfo(ctx, "order approved", slog.String("username", username), slog.String("order_id", orderID))
	return order, nil
}

func (s *Service) ApproveAll(ctx context.Context, refs []marketports.OrderRef) ([]marketports.PlacedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "MarketService.ApproveAll", trace.WithAttributes(attribute.Int("orders.batch", len(refs))))
	defer span.End()
	approved, err := s.inner.ApproveAll(ctx, refs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "batch approval failed")
	}
	s.metrics.recordApproved(ctx, len(approved))
	s.logInfo(ctx, "approvals processed", slog.Int("approved", len(approved)))
	return approved, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersApproved metric.Int64Counter
	outOfStock     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("market.service.orders_placed", metric.WithDescription("Number of orders placed"))
	approved, _ := m.Int64Counter("market.service.orders_approved", metric.WithDescription("Number of orders approved"))
	outOfStock, _ := m.Int64Counter("market.service.out_of_stock", metric.WithDescription("Number of purchases rejected for lack of stock"))
	return serviceMetrics{ordersPlaced: placed, ordersApproved: approved, outOfStock: outOfStock}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordApproved(ctx context.Context, count int) {
	if m.ordersApproved != nil && count > 0 {
		m.ordersApproved.Add(ctx, int64(count))
	}
}

func (m serviceMetrics) recordOutOfStock(ctx context.Context) {
	if m.outOfStock != nil {
		m.outOfStock.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ marketports.Service = (*Service)(nil)
