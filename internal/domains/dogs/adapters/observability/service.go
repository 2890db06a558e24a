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

	dogsapp "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

const tracerName = "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/observability/service"

// Service decorates a dogs service port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

// ListDogs resolves a filtered listing with instrumentation.
func (s *Service) ListDogs(ctx context.Context, criteria domain.Criteria) ([]*domain.Dog, error) {
	attrs := criteriaAttributes(criteria)
	ctx, span := s.startSpan(ctx, "Service.ListDogs", attrs...)
	defer span.End()

	logAttrs := criteriaLogAttrs(criteria)
	s.logInfo(ctx, "listing dogs", logAttrs...)
	result, err := s.inner.ListDogs(ctx, criteria)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list dogs", logAttrs...)
	}
	span.SetAttributes(attribute.Int("dog.result.count", len(result)))
	s.metrics.recordListed(ctx, criteria.Active())
	s.logInfo(ctx, "listed dogs", slog.Int("count", len(result)))
	return result, nil
}

// ListBreeds resolves the breed catalog with instrumentation.
func (s *Service) ListBreeds(ctx context.Context) ([]string, error) {
	ctx, span := s.startSpan(ctx, "Service.ListBreeds")
	defer span.End()

	s.logInfo(ctx, "listing breeds")
	result, err := s.inner.ListBreeds(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list breeds")
	}
	span.SetAttributes(attribute.Int("breed.result.count", len(result)))
	s.metrics.recordBreedsListed(ctx)
	s.logInfo(ctx, "listed breeds", slog.Int("count", len(result)))
	return result, nil
}

// GetDog loads a single dog.
func (s *Service) GetDog(ctx context.Context, id int64) (*domain.Dog, error) {
	ctx, span := s.startSpan(ctx, "Service.GetDog", attribute.Int64("dog.id", id))
	defer span.End()

	s.logInfo(ctx, "loading dog", slog.Int64("dog.id", id))
	result, err := s.inner.GetDog(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load dog", slog.Int64("dog.id", id))
	}
	if result != nil {
		s.logInfo(ctx, "dog loaded", slog.Int64("dog.id", result.ID), slog.String("status", result.Status.String()))
	}
	return result, nil
}

func criteriaAttributes(c domain.Criteria) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Bool("dog.filter.available_only", c.AvailableOnly)}
	if c.Breed != nil {
		attrs = append(attrs, attribute.String("dog.filter.breed", *c.Breed))
	}
	return attrs
}

func criteriaLogAttrs(c domain.Criteria) []slog.Attr {
	attrs := []slog.Attr{slog.Bool("available_only", c.AvailableOnly)}
	if c.Breed != nil {
		attrs = append(attrs, slog.String("breed", *c.Breed))
	}
	return attrs
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
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
	if err == nil {
		return nil
	}
	if errors.Is(err, dogsapp.ErrStoreUnavailable) {
		s.metrics.recordStoreFailure(ctx)
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	dogsListed    metric.Int64Counter
	breedsListed  metric.Int64Counter
	storeFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	dogsListed, _ := m.Int64Counter("dogs.service.listed", metric.WithDescription("Number of dog listings resolved"))
	breedsListed, _ := m.Int64Counter("dogs.service.breeds_listed", metric.WithDescription("Number of breed catalogs resolved"))
	storeFailures, _ := m.Int64Counter("dogs.service.store_failures", metric.WithDescription("Number of reads that failed because the store was unavailable"))
	return serviceMetrics{
		dogsListed:    dogsListed,
		breedsListed:  breedsListed,
		storeFailures: storeFailures,
	}
}

func (m serviceMetrics) recordListed(ctx context.Context, filtered bool) {
	addCounter(ctx, m.dogsListed, 1, attribute.Bool("dog.filtered", filtered))
}

func (m serviceMetrics) recordBreedsListed(ctx context.Context) {
	addCounter(ctx, m.breedsListed, 1)
}

func (m serviceMetrics) recordStoreFailure(ctx context.Context) {
	addCounter(ctx, m.storeFailures, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
