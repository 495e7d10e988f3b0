package observe

import (
	"context"
	"time"
)

// CallFunc is the signature for instrumented cart API calls.
type CallFunc func(ctx context.Context) error

// Middleware wraps cart API calls with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Do is safe for concurrent use.
//   - Context: Propagates context through tracing spans.
//   - Errors: The error from the wrapped function is recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewNoopMiddleware creates a Middleware whose telemetry all goes nowhere.
// It is the default for consumers constructed without an observer.
func NewNoopMiddleware() *Middleware {
	return NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})
}

// NewLoggerMiddleware creates a Middleware that logs call outcomes to
// logger but produces no traces or metrics. A nil logger behaves like
// NewNoopMiddleware.
func NewLoggerMiddleware(logger Logger) *Middleware {
	if logger == nil {
		return NewNoopMiddleware()
	}
	return NewMiddleware(newNoopTracer(), &noopMetrics{}, logger)
}

// Do runs fn under a span named for the call, records call metrics, and
// logs the outcome. The error from fn is returned unchanged.
func (m *Middleware) Do(ctx context.Context, call CallMeta, fn CallFunc) error {
	// Start span
	ctx, span := m.tracer.StartSpan(ctx, call)

	// Record start time
	start := time.Now()

	// Execute the call
	err := fn(ctx)

	// Calculate duration
	duration := time.Since(start)

	// End span (records error status if err != nil)
	m.tracer.EndSpan(span, err)

	// Record metrics
	m.metrics.RecordCall(ctx, call, duration, err)

	// Log the call
	callLogger := m.logger.WithCall(call)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}

	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		callLogger.Error(ctx, "cart call failed", fields...)
	} else {
		callLogger.Debug(ctx, "cart call completed", fields...)
	}

	return err
}

// Logger returns the middleware's logger for ad-hoc logging outside a call.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
