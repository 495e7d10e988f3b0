package session

import (
	"encoding/json"
	"fmt"
)

// PreCartKey is the storage key holding guest items gathered before login.
const PreCartKey = "cart"

// Item types accepted by the storefront.
const (
	ItemTypeProduct = "product"
	ItemTypeCombo   = "combo"
)

// PreCartItem is one guest-side line item awaiting merge into the
// server-side cart.
type PreCartItem struct {
	ItemType  string `json:"item_type"`
	ProductID string `json:"product_id,omitempty"`
	VariantID string `json:"variant_id,omitempty"`
	ComboID   string `json:"combo_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Validate checks the line against the storefront's cart constraints:
// a product line names a product, a combo line names a combo, and the
// quantity is at least 1.
func (i PreCartItem) Validate() error {
	switch i.ItemType {
	case ItemTypeProduct:
		if i.ProductID == "" {
			return fmt.Errorf("%w: product line without product_id", ErrInvalidItem)
		}
	case ItemTypeCombo:
		if i.ComboID == "" {
			return fmt.Errorf("%w: combo line without combo_id", ErrInvalidItem)
		}
	default:
		return fmt.Errorf("%w: unknown item_type %q", ErrInvalidItem, i.ItemType)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: quantity below 1", ErrInvalidItem)
	}
	return nil
}

// sameLine reports whether two items address the same cart line. A cart
// holds one line per product+variant and one per combo; adding the same
// line again grows its quantity.
func (i PreCartItem) sameLine(other PreCartItem) bool {
	if i.ItemType != other.ItemType {
		return false
	}
	if i.ItemType == ItemTypeCombo {
		return i.ComboID == other.ComboID
	}
	return i.ProductID == other.ProductID && i.VariantID == other.VariantID
}

// PreCart reads and writes the guest pre-cart list in session storage.
//
// Contract:
// - Concurrency: safe for concurrent use when the underlying Storage is.
// - Errors: a missing list reads as empty; corrupt stored state returns
//   ErrCorruptState wrapped.
type PreCart struct {
	store Storage
}

// NewPreCart creates a pre-cart view over store.
func NewPreCart(store Storage) *PreCart {
	return &PreCart{store: store}
}

// Items returns the stored pre-cart lines, empty when none are stored.
func (p *PreCart) Items() ([]PreCartItem, error) {
	data, ok := p.store.Get(PreCartKey)
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var items []PreCartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return items, nil
}

// Add validates item and stores it, folding it into an existing line for
// the same product+variant or combo.
func (p *PreCart) Add(item PreCartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	items, err := p.Items()
	if err != nil {
		return err
	}

	merged := false
	for n := range items {
		if items[n].sameLine(item) {
			items[n].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return p.Replace(items)
}

// Replace overwrites the stored list. An empty list clears the key.
func (p *PreCart) Replace(items []PreCartItem) error {
	if len(items) == 0 {
		return p.Clear()
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("session: encode pre-cart: %w", err)
	}
	return p.store.Set(PreCartKey, data)
}

// Clear removes the stored list. Idempotent.
func (p *PreCart) Clear() error {
	return p.store.Delete(PreCartKey)
}
