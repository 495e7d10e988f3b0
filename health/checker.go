package health

import (
	"context"
	"time"
)

// Status grades one dependency of the cart client.
type Status int

const (
	// StatusHealthy means the dependency is fully usable.
	StatusHealthy Status = iota
	// StatusDegraded means the dependency works but poorly, for example a
	// slow storefront.
	StatusDegraded
	// StatusUnhealthy means the dependency cannot be used.
	StatusUnhealthy
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one check.
type Result struct {
	// Status is the graded outcome.
	Status Status

	// Message says what was observed, in one line.
	Message string

	// Details carries check-specific readings (latency, status codes,
	// store keys probed).
	Details map[string]any

	// Duration is how long the check took. The aggregator fills it in.
	Duration time.Duration

	// Timestamp is when the check ran.
	Timestamp time.Time

	// Error is the failure cause for unhealthy results, when known.
	Error error
}

// Healthy builds a healthy result.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded builds a degraded result.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy builds an unhealthy result carrying its cause.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithDetails returns the result with details attached.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration returns the result with its duration set.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is one health check over one dependency.
//
// Contract:
// - Concurrency: Check must be safe for concurrent use.
// - Context: Check should return promptly once ctx is done; the
//   aggregator enforces its timeout regardless.
// - Errors: failures are reported through the Result, never panics.
type Checker interface {
	// Name identifies the checker in reports.
	Name() string

	// Check runs the check and grades the outcome.
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a plain function into a Checker.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc wraps fn as a named Checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name identifies the checker in reports.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check runs the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// PingChecker is a Checker that can also answer a bare reachability
// question without grading it.
type PingChecker interface {
	Checker

	// Ping reports reachability; nil means usable.
	Ping(ctx context.Context) error
}

// InfoChecker is a Checker that can describe its dependency beyond the
// graded result.
type InfoChecker interface {
	Checker

	// Info returns descriptive readings about the dependency.
	Info(ctx context.Context) (map[string]any, error)
}

var (
	_ Checker = (*CheckerFunc)(nil)
)
