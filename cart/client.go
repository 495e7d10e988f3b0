package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/bthinkxdev/sulthan-perfume/cache"
	"github.com/bthinkxdev/sulthan-perfume/flight"
	"github.com/bthinkxdev/sulthan-perfume/notify"
	"github.com/bthinkxdev/sulthan-perfume/observe"
	"github.com/bthinkxdev/sulthan-perfume/session"
)

// DefaultTimeout bounds cart API calls made with the default HTTP client.
const DefaultTimeout = 30 * time.Second

// Cart API paths, relative to the base URL. The trailing slashes are part
// of the routes.
const (
	apiCartPath  = "/api/cart/"
	apiMergePath = "/api/cart/merge/"
)

// Client talks to one storefront's cart API.
//
// Contract:
//   - Concurrency: all methods are safe for concurrent use.
//   - Context: every network operation honors ctx cancellation.
//   - Errors: operations return an error only for caller mistakes and for
//     loads turned away with flight.ErrInFlight. Everything the server or
//     the network does wrong becomes a failure result.
type Client struct {
	baseURL *url.URL
	base    string // baseURL without trailing slash, for path joins

	httpClient *http.Client
	timeout    time.Duration
	jar        http.CookieJar
	bearer     string

	storage session.Storage
	precart *session.PreCart

	backing cache.Cache
	keyer   cache.Keyer
	policy  cache.Policy
	counts  *cache.Counts

	displays  *notify.Registry
	bus       *notify.Bus
	announcer *notify.Announcer

	flights *flight.Group
	merges  singleflight.Group

	observer observe.Observer
	mw       *observe.Middleware
	logger   observe.Logger
}

// Option configures a Client during New.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls. New decorates a
// copy of it, so the caller's client is not modified: a cookie jar is
// attached when it has none, and its transport is wrapped to inject the
// storefront's AJAX and CSRF headers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout for the default HTTP client. It is
// ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBearerToken sets a token to send as "Authorization: Bearer" on every
// request that does not already carry one.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.bearer = token }
}

// WithStorage sets the session store backing the pre-cart and, unless
// WithCache overrides it, the count cache. Defaults to an in-memory store.
func WithStorage(store session.Storage) Option {
	return func(c *Client) {
		if store != nil {
			c.storage = store
		}
	}
}

// WithCache sets the cache backing the count cache, replacing the
// storage-backed default.
func WithCache(backing cache.Cache) Option {
	return func(c *Client) {
		if backing != nil {
			c.backing = backing
		}
	}
}

// WithKeyer sets the keyer that derives the count-cache key from the base
// URL.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithPolicy sets the count-cache freshness policy. cache.NoCachePolicy
// disables count caching entirely.
func WithPolicy(p cache.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithObserver wires tracing, metrics, and logging from obs into every
// cart call.
func WithObserver(obs observe.Observer) Option {
	return func(c *Client) { c.observer = obs }
}

// WithLogger sets a logger without full telemetry. It is ignored when
// WithObserver is also given.
func WithLogger(logger observe.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDisplays sets the display registry announcements fan out to. Use it
// to share one registry between clients; otherwise New creates a fresh one.
func WithDisplays(r *notify.Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.displays = r
		}
	}
}

// WithBus sets the event bus cart-updated events are published on.
func WithBus(b *notify.Bus) Option {
	return func(c *Client) {
		if b != nil {
			c.bus = b
		}
	}
}

// New creates a Client for the storefront at baseURL.
//
// Defaults: an in-memory session store, a count cache kept in that store
// under a key derived from baseURL with a five second freshness window,
// a fresh cookie jar, an HTTP client with DefaultTimeout, and no-op
// telemetry.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: u,
		base:    strings.TrimRight(u.String(), "/"),
		policy:  cache.DefaultPolicy(),
		timeout: DefaultTimeout,
		flights: flight.NewGroup(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Apply defaults
	if c.storage == nil {
		c.storage = session.NewMemoryStore()
	}
	c.precart = session.NewPreCart(c.storage)

	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.backing == nil {
		c.backing = cache.NewStorageCache(c.storage)
	}
	c.counts = cache.NewCounts(c.backing, c.keyer.CountKey(c.base), c.policy)

	if c.displays == nil {
		c.displays = notify.NewRegistry()
	}
	if c.bus == nil {
		c.bus = notify.NewBus()
	}
	c.announcer = notify.NewAnnouncer(c.displays, c.bus)

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	// Decorate a copy so the caller's client stays untouched.
	hc := *c.httpClient
	if hc.Jar == nil {
		jar, err := session.NewJar()
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	c.jar = hc.Jar
	hc.Transport = &session.Transport{
		Base:        hc.Transport,
		Jar:         hc.Jar,
		BearerToken: c.bearer,
	}
	c.httpClient = &hc

	if c.observer != nil {
		mw, err := observe.MiddlewareFromObserver(c.observer)
		if err != nil {
			return nil, err
		}
		c.mw = mw
		c.logger = mw.Logger()
	} else {
		c.mw = observe.NewLoggerMiddleware(c.logger)
	}
	if c.logger == nil {
		c.logger = observe.NewNoopLogger()
	}

	return c, nil
}

// BaseURL returns the storefront base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.base
}

// Jar returns the cookie jar requests go through. Useful for seeding a
// CSRF token with session.SeedCSRFToken when no prior GET has run.
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

// PreCart returns the pre-cart holding items staged before login.
func (c *Client) PreCart() *session.PreCart {
	return c.precart
}

// Counts returns the count cache. Mostly useful for diagnostics.
func (c *Client) Counts() *cache.Counts {
	return c.counts
}

// GuestID returns the guest ID cookie set by the server, if any.
func (c *Client) GuestID() (string, bool) {
	id, ok := session.GuestID(c.jar, c.baseURL)
	if !ok {
		return "", false
	}
	return id.String(), true
}

// RegisterDisplay registers a sink to receive announced counts under name.
// Re-registering a name replaces its sink.
func (c *Client) RegisterDisplay(name string, sink notify.Sink) {
	c.displays.Register(name, sink)
}

// UnregisterDisplay removes the sink registered under name.
func (c *Client) UnregisterDisplay(name string) {
	c.displays.Unregister(name)
}

// Events subscribes to cart-updated events. The returned cancel func must
// be called when done. Events that would block are dropped, so size the
// buffer for the consumer's pace.
func (c *Client) Events(buffer int) (<-chan notify.Event, func()) {
	return c.bus.Subscribe(buffer)
}

// LastAnnounced returns the most recently announced count, and whether any
// announcement has happened yet.
func (c *Client) LastAnnounced() (int, bool) {
	return c.announcer.Last()
}

// AnnounceCount pushes count to every registered display and publishes a
// cart-updated event. Announcing the same count twice in a row is
// suppressed; the return value reports whether this call went out.
func (c *Client) AnnounceCount(ctx context.Context, count int) bool {
	if c == nil {
		return false
	}
	return c.announcer.Announce(ctx, count)
}

// apiResponse is a decoded cart API response. The body is held as parsed
// JSON so callers can pick fields without committing to a full schema.
type apiResponse struct {
	status int
	body   gjson.Result
}

// success reports the envelope's success flag.
func (r *apiResponse) success() bool {
	return r.body.Get("success").Bool()
}

// requiresLogin reports whether the server refused the call pending
// authentication, by status code or by envelope flag.
func (r *apiResponse) requiresLogin() bool {
	if r.status == http.StatusUnauthorized || r.status == http.StatusForbidden {
		return true
	}
	return r.body.Get("requires_login").Bool()
}

// failureText returns the server's error message, or a status line when
// the envelope carries none.
func (r *apiResponse) failureText() string {
	if msg := r.body.Get("error").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("unexpected status %d", r.status)
}

// count returns the item count from the envelope. Endpoints disagree on
// the field name, so both spellings are honored.
func (r *apiResponse) count() (int, bool) {
	if v := r.body.Get("item_count"); v.Exists() {
		return int(v.Int()), true
	}
	if v := r.body.Get("cart_count"); v.Exists() {
		return int(v.Int()), true
	}
	return 0, false
}

// fetch runs one instrumented cart API call and returns the parsed
// response. The error is non-nil only when no response was obtained.
func (c *Client) fetch(ctx context.Context, op, method, path string, payload any) (*apiResponse, error) {
	meta := observe.CallMeta{
		Op:       op,
		Method:   method,
		Path:     path,
		Endpoint: c.baseURL.Host,
	}

	var resp *apiResponse
	err := c.mw.Do(ctx, meta, func(ctx context.Context) error {
		r, err := c.doJSON(ctx, method, path, payload)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*apiResponse, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &apiResponse{status: resp.StatusCode, body: gjson.ParseBytes(data)}, nil
}
