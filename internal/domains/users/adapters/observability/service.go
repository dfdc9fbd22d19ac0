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

	userdomain "github.com/ecomarket/marketplace/internal/domains/users/domain"
	userports "github.com/ecomarket/marketplace/internal/domains/users/ports"
)

const tracerName = "github.com/ecomarket/marketplace/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Register(ctx context.Context, input userports.RegistrationInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.username", input.Username)))
	defer span.End()
	s.logInfo(ctx, "registering user", slog.String("username", input.Username))
	user, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "registration failed", slog.String("username", input.Username))
	}
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.String("username", user.Username))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	user, err := s.inner.Authenticate(ctx, username, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "authentication failed", slog.String("username", username))
	}
	s.metrics.recordLogin(ctx)
	return user, nil
}

func (s *Service) DrainNotifications(ctx context.Context, username string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.DrainNotifications", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	messages, err := s.inner.DrainNotifications(ctx, username)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to drain notifications", slog.String("username", username))
	}
	span.SetAttributes(attribute.Int("user.notifications.delivered", len(messages)))
	s.metrics.recordDelivered(ctx, len(messages))
	return messages, nil
}

func (s *Service) Orders(ctx context.Context, username string) ([]*userdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Orders", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	return s.inner.Orders(ctx, username)
}

func (s *Service) FindOrder(ctx context.Context, username, orderID string) (*userdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindOrder",
		trace.WithAttributes(attribute.String("user.username", username), attribute.String("order.id", orderID)))
	defer span.End()
	return s.inner.FindOrder(ctx, username, orderID)
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
	registrations metric.Int64Counter
	logins        metric.Int64Counter
	delivered     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("users.service.registrations", metric.WithDescription("Number of users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	delivered, _ := m.Int64Counter("users.service.notifications_delivered", metric.WithDescription("Number of notifications delivered"))
	return serviceMetrics{registrations: registrations, logins: logins, delivered: delivered}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDelivered(ctx context.Context, count int) {
	if m.delivered != nil && count > 0 {
		m.delivered.Add(ctx, int64(count))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
