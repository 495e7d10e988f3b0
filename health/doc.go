// Package health checks the cart client's two dependencies: the
// storefront API and the local session store.
//
// A Checker grades one dependency as healthy, degraded, or unhealthy.
// EndpointChecker probes the storefront (collapsing overlapping probes),
// StorageChecker round-trips a value through the session store, and
// Aggregator runs a named set of checkers to produce the one-line status
// a report or status command prints.
//
//	agg := health.NewAggregator()
//	agg.Register("endpoint", health.NewEndpointChecker(health.EndpointCheckerConfig{
//		URL: "https://shop.example.com/api/cart/",
//	}))
//	agg.Register("storage", health.NewStorageChecker("storage", store))
//
//	results := agg.CheckAll(ctx)
//	fmt.Println(agg.OverallStatus(results))
package health
