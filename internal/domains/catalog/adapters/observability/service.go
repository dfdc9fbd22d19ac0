package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	catalogports "github.com/ecomarket/marketplace/internal/domains/catalog/ports"
)

const tracerName = "github.com/ecomarket/marketplace/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) List(ctx context.Context) (catalogdomain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List")
	defer span.End()
	return s.inner.List(ctx)
}

func (s *Service) Search(ctx context.Context, term string) (catalogdomain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("catalog.search.term", term)))
	defer span.End()
	results, err := s.inner.Search(ctx, term)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "catalog search failed", slog.String("term", term))
	}
	span.SetAttributes(attribute.Int("catalog.search.results", len(results)))
	return results, nil
}

func (s *Service) Add(ctx context.Context, name string, price float64, description string) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Add", trace.WithAttributes(attribute.String("product.name", name)))
	defer span.End()
	s.logInfo(ctx, "adding product", slog.String("name", name))
	product, err := s.inner.Add(ctx, name, price, description)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.String("name", name))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "product added", slog.String("id", product.ID), slog.String("name", product.Name))
	return product, nil
}

func (s *Service) Edit(ctx context.Context, id string, name *string, price *float64, description *string) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Edit", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()
	product, err := s.inner.Edit(ctx, id, name, price, description)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit product", slog.String("id", id))
	}
	s.metrics.recordEdited(ctx)
	s.logInfo(ctx, "product edited", slog.String("id", product.ID))
	return product, nil
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
	productsAdded  metric.Int64Counter
	productsEdited metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("catalog.service.products_added", metric.WithDescription("Number of products added"))
	edited, _ := m.Int64Counter("catalog.service.products_edited", metric.WithDescription("Number of products edited"))
	return serviceMetrics{productsAdded: added, productsEdited: edited}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.productsAdded != nil {
		m.productsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordEdited(ctx context.Context) {
	if m.productsEdited != nil {
		m.productsEdited.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ catalogports.Service = (*Service)(nil)
