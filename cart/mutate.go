package cart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/bthinkxdev/sulthan-perfume/observe"
	"github.com/bthinkxdev/sulthan-perfume/session"
)

// Add puts an item in the cart. Exactly one of the item's product, variant,
// or combo IDs must be set; a quantity below one is rejected. The server
// merges quantities when the item is already in the cart.
func (c *Client) Add(ctx context.Context, item session.PreCartItem) (*MutateResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return c.mutate(ctx, "add_item", apiCartPath, item)
}

// UpdateItem sets the quantity of the cart item with the given ID.
// The ID must be a UUID and the quantity at least one; removal goes
// through Remove, not a zero quantity.
func (c *Client) UpdateItem(ctx context.Context, itemID string, quantity int) (*MutateResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemID, itemID)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	payload := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.mutate(ctx, "update_item", itemActionPath(id, "update"), payload)
}

// Remove deletes the cart item with the given ID. The ID must be a UUID.
func (c *Client) Remove(ctx context.Context, itemID string) (*MutateResult, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemID, itemID)
	}
	return c.mutate(ctx, "remove_item", itemActionPath(id, "remove"), nil)
}

func itemActionPath(id uuid.UUID, action string) string {
	return "/api/cart/item/" + id.String() + "/" + action + "/"
}

// mutate runs one cart mutation and translates the outcome. On success the
// count cache is invalidated and, when the response says where the count
// landed, the new count is announced.
func (c *Client) mutate(ctx context.Context, op, path string, payload any) (*MutateResult, error) {
	resp, err := c.fetch(ctx, op, http.MethodPost, path, payload)
	if err != nil {
		return &MutateResult{Error: FailureNetwork}, nil
	}
	if resp.requiresLogin() {
		return &MutateResult{RequiresLogin: true, Error: FailureAuthRequired}, nil
	}
	if !resp.success() {
		return &MutateResult{Error: resp.failureText()}, nil
	}

	if err := c.counts.Invalidate(ctx); err != nil {
		c.logger.Warn(ctx, "count cache invalidation failed",
			observe.Field{Key: "error", Value: err.Error()})
	}

	result := &MutateResult{Success: true}
	if count, ok := resp.count(); ok {
		if count < 0 {
			count = 0
		}
		result.Count = count
		result.CountKnown = true
		c.announcer.Announce(ctx, count)
	}
	return result, nil
}
