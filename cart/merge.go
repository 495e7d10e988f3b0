package cart

import (
	"context"
	"net/http"

	"github.com/bthinkxdev/sulthan-perfume/observe"
	"github.com/bthinkxdev/sulthan-perfume/session"
)

// mergeFlight collapses concurrent merges onto one POST.
const mergeFlight = "mergeSessionCart"

// MergeSession sends the pre-cart to the server to be merged into the
// session cart, typically right after login. An empty pre-cart succeeds
// without touching the network. On success the pre-cart is cleared, the
// count cache invalidated, and the returned count announced.
//
// Concurrent calls are collapsed: one POST runs and every caller gets its
// result. Unlike the loads, no caller is turned away.
func (c *Client) MergeSession(ctx context.Context) (*MutateResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	v, err, _ := c.merges.Do(mergeFlight, func() (any, error) {
		return c.mergeOnce(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MutateResult), nil
}

func (c *Client) mergeOnce(ctx context.Context) *MutateResult {
	items, err := c.precart.Items()
	if err != nil {
		c.logger.Warn(ctx, "pre-cart unreadable",
			observe.Field{Key: "error", Value: err.Error()})
		return &MutateResult{Error: err.Error()}
	}
	if len(items) == 0 {
		return &MutateResult{Success: true}
	}

	payload := struct {
		SessionCart []session.PreCartItem `json:"session_cart"`
	}{SessionCart: items}

	resp, err := c.fetch(ctx, "merge_session", http.MethodPost, apiMergePath, payload)
	if err != nil {
		return &MutateResult{Error: FailureNetwork}
	}
	if resp.requiresLogin() {
		return &MutateResult{RequiresLogin: true, Error: FailureAuthRequired}
	}
	if !resp.success() {
		return &MutateResult{Error: resp.failureText()}
	}

	if err := c.precart.Clear(); err != nil {
		c.logger.Warn(ctx, "pre-cart clear failed",
			observe.Field{Key: "error", Value: err.Error()})
	}
	if err := c.counts.Invalidate(ctx); err != nil {
		c.logger.Warn(ctx, "count cache invalidation failed",
			observe.Field{Key: "error", Value: err.Error()})
	}

	result := &MutateResult{Success: true, Merged: len(items)}
	if count, ok := resp.count(); ok {
		if count < 0 {
			count = 0
		}
		result.Count = count
		result.CountKnown = true
		c.announcer.Announce(ctx, count)
	}
	return result
}
