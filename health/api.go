package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// EndpointCheckerConfig configures the storefront API checker.
type EndpointCheckerConfig struct {
	// URL is probed with a GET. Point it at the cart API base; any
	// response, including an auth refusal, proves the storefront is up.
	URL string

	// HTTPClient makes the probe. Default: a client with a 5 second
	// timeout and no redirect following.
	HTTPClient *http.Client

	// DegradedAfter grades the storefront degraded when the probe takes
	// longer. Default: 1 second.
	DegradedAfter time.Duration
}

// EndpointChecker probes the storefront API. Overlapping checks collapse
// onto one probe and share its result, so a status screen polling several
// widgets costs one request.
type EndpointChecker struct {
	config EndpointCheckerConfig
	group  singleflight.Group
}

// NewEndpointChecker creates a checker for the storefront at config.URL.
func NewEndpointChecker(config EndpointCheckerConfig) *EndpointChecker {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	if config.DegradedAfter <= 0 {
		config.DegradedAfter = time.Second
	}
	return &EndpointChecker{config: config}
}

// Name identifies the checker in reports.
func (e *EndpointChecker) Name() string {
	return "endpoint"
}

// Check probes the storefront and grades reachability and latency.
// Collapsed callers share the first probe's outcome, deadline included.
func (e *EndpointChecker) Check(ctx context.Context) Result {
	v, _, _ := e.group.Do("probe", func() (any, error) {
		return e.probe(ctx), nil
	})
	return v.(Result)
}

// Ping reports plain reachability; degraded still pings.
func (e *EndpointChecker) Ping(ctx context.Context) error {
	result := e.Check(ctx)
	if result.Status != StatusUnhealthy {
		return nil
	}
	if result.Error != nil {
		return result.Error
	}
	return ErrCheckFailed
}

func (e *EndpointChecker) probe(ctx context.Context) Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.URL, nil)
	if err != nil {
		return Unhealthy("probe URL invalid", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.config.HTTPClient.Do(req)
	if err != nil {
		return Unhealthy("storefront unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()
	elapsed := time.Since(start)

	details := map[string]any{
		"url":         e.config.URL,
		"status_code": resp.StatusCode,
		"latency_ms":  elapsed.Milliseconds(),
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return Unhealthy(fmt.Sprintf("storefront returned %d", resp.StatusCode), ErrCheckFailed).
			WithDetails(details)
	case elapsed > e.config.DegradedAfter:
		return Degraded(fmt.Sprintf("storefront slow: %s", elapsed.Round(time.Millisecond))).
			WithDetails(details)
	default:
		return Healthy("storefront reachable").WithDetails(details)
	}
}

var (
	_ Checker     = (*EndpointChecker)(nil)
	_ PingChecker = (*EndpointChecker)(nil)
)
