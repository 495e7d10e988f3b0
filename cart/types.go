package cart

// Item is one cart line as the API returns it. The server owns this shape;
// fields it omits decode to their zero values.
type Item struct {
	ID       string  `json:"id"`
	ItemType string  `json:"item_type,omitempty"`
	Name     string  `json:"name,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
	Subtotal float64 `json:"subtotal,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Cart is the server-side cart snapshot returned by Load.
type Cart struct {
	ID        string  `json:"id,omitempty"`
	Items     []Item  `json:"items"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total,omitempty"`
}

// CountResult is the outcome of LoadCount. On any failure Count is zero
// and Reason says why; callers can render it directly.
type CountResult struct {
	// Count is the item count, or zero when the load failed.
	Count int

	// Cached reports that Count was served from the local cache without
	// touching the network.
	Cached bool

	// RequiresLogin reports that the server refused the request pending
	// authentication.
	RequiresLogin bool

	// Reason is empty on success; otherwise it describes the failure.
	Reason string
}

// CartResult is the outcome of Load. Items is never nil, so callers can
// range over it without checking.
type CartResult struct {
	// Cart is the decoded cart, or nil when the load failed.
	Cart *Cart

	// Items are the cart lines. Empty, not nil, on failure.
	Items []Item

	// ItemCount is the server's item count, or zero when the load failed.
	ItemCount int

	// RequiresLogin reports that the server refused the request pending
	// authentication.
	RequiresLogin bool

	// Reason is empty on success; otherwise it describes the failure.
	Reason string
}

// MutateResult is the outcome of Add, UpdateItem, Remove, and MergeSession.
type MutateResult struct {
	// Success reports that the server accepted the mutation.
	Success bool

	// Count is the item count after the mutation, when the server sent
	// one. Check CountKnown before trusting it.
	Count int

	// CountKnown reports whether the server's response carried a count.
	CountKnown bool

	// Merged is the number of pre-cart items sent by MergeSession. Zero
	// for the other mutations and for a merge with nothing staged.
	Merged int

	// RequiresLogin reports that the server refused the request pending
	// authentication.
	RequiresLogin bool

	// Error is empty on success; otherwise it describes the failure.
	// Results produced without a server response carry FailureNetwork.
	Error string
}
