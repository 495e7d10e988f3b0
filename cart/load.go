package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bthinkxdev/sulthan-perfume/observe"
)

// Flight keys for the deduplicated loads. One logical operation, one key.
const (
	loadCountFlight = "loadCartCount"
	loadCartFlight  = "loadCart"
)

// LoadCount returns the cart item count, serving a cached value when one
// is younger than the freshness window. On a miss it fetches, caches the
// fetched count, and announces it.
//
// While a fetch is in flight, overlapping calls return flight.ErrInFlight
// instead of waiting. On any fetch failure the result carries a zero count
// and a reason; the cache is left alone so the next call retries.
func (c *Client) LoadCount(ctx context.Context) (*CountResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	// Check cache first
	if count, ok := c.counts.Get(ctx); ok {
		c.logger.Debug(ctx, "cart count served from cache",
			observe.Field{Key: "count", Value: count})
		return &CountResult{Count: count, Cached: true}, nil
	}

	release, err := c.flights.Start(loadCountFlight)
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := c.fetch(ctx, "load_count", http.MethodGet, apiCartPath, nil)
	if err != nil {
		return &CountResult{Reason: err.Error()}, nil
	}
	if resp.requiresLogin() {
		return &CountResult{RequiresLogin: true, Reason: FailureAuthRequired}, nil
	}
	if !resp.success() {
		return &CountResult{Reason: resp.failureText()}, nil
	}

	count, ok := resp.count()
	if !ok {
		return &CountResult{Reason: "response carried no count"}, nil
	}
	if count < 0 {
		count = 0
	}

	if err := c.counts.Put(ctx, count); err != nil {
		c.logger.Warn(ctx, "count cache write failed",
			observe.Field{Key: "error", Value: err.Error()})
	}
	c.announcer.Announce(ctx, count)

	return &CountResult{Count: count}, nil
}

// Load fetches the full cart. The count that rides along is cached and
// announced, same as LoadCount.
//
// While a fetch is in flight, overlapping calls return flight.ErrInFlight.
// On failure the result has a nil Cart and empty Items.
func (c *Client) Load(ctx context.Context) (*CartResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	release, err := c.flights.Start(loadCartFlight)
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := c.fetch(ctx, "load_cart", http.MethodGet, apiCartPath, nil)
	if err != nil {
		return &CartResult{Items: []Item{}, Reason: err.Error()}, nil
	}
	if resp.requiresLogin() {
		return &CartResult{Items: []Item{}, RequiresLogin: true, Reason: FailureAuthRequired}, nil
	}
	if !resp.success() {
		return &CartResult{Items: []Item{}, Reason: resp.failureText()}, nil
	}

	var parsed Cart
	if raw := resp.body.Get("cart"); raw.Exists() {
		if err := json.Unmarshal([]byte(raw.Raw), &parsed); err != nil {
			return &CartResult{Items: []Item{}, Reason: fmt.Sprintf("decode cart: %v", err)}, nil
		}
	}

	count, ok := resp.count()
	if !ok {
		// Older servers put the count only inside the cart object.
		count = parsed.ItemCount
		if count == 0 {
			for _, item := range parsed.Items {
				count += item.Quantity
			}
		}
	}
	if count < 0 {
		count = 0
	}

	if err := c.counts.Put(ctx, count); err != nil {
		c.logger.Warn(ctx, "count cache write failed",
			observe.Field{Key: "error", Value: err.Error()})
	}
	c.announcer.Announce(ctx, count)

	items := parsed.Items
	if items == nil {
		items = []Item{}
	}
	return &CartResult{Cart: &parsed, Items: items, ItemCount: count}, nil
}
