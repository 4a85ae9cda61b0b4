package cache

import (
	"context"
	"encoding/json"
	"strings"
)

// ReservedEmployeeEndpoint is the endpoint whose cached entries never hold
// transaction data. The patcher never inspects its keys. It is registered
// on every new client.
const ReservedEmployeeEndpoint = "employee"

// Endpoint describes one API endpoint the client caches, with the payload
// kind its entries are tagged with at write time.
//
// Endpoint names must be prefix-free: no name may be a literal prefix of
// another, or endpoint-scoped invalidation will over-delete.
type Endpoint struct {
	Name string
	Kind Kind
}

// FetchFunc is the network transport collaborator. It performs the actual
// request and returns the raw response payload. Its failure mode is opaque
// to the cache layer.
type FetchFunc func(ctx context.Context, endpoint string, params any) ([]byte, error)

// Client dispatches cache-aware fetches against an externally owned store.
//
// Contract:
//   - Concurrency: safe for concurrent use once endpoints are registered,
//     provided the Store is. Overlapping fetches for one uncached key are
//     not deduplicated: each misses, each invokes the transport, and the
//     last writer wins.
//   - Ownership: the Store may be nil; every cache operation against a nil
//     store degrades to a benign no-op or an uncached fetch.
//   - Errors: transport errors surface unchanged with the store left
//     unmodified; per-entry decode failures in bulk operations never escape.
//   - Loading state: in-flight tracking belongs to the request wrapper
//     around this client, not to the client itself.
type Client struct {
	store     Store
	keyer     Keyer
	codec     Codec
	policy    Policy
	fetch     FetchFunc
	endpoints map[string]Endpoint
}

// NewClient creates a client around the given transport. A nil store is
// allowed and turns every cache operation into a no-op. A nil keyer or
// codec falls back to the endpoint keyer and the JSON codec.
func NewClient(store Store, keyer Keyer, codec Codec, policy Policy, fetch FetchFunc) (*Client, error) {
	if fetch == nil {
		return nil, ErrNilFetcher
	}
	if keyer == nil {
		keyer = NewEndpointKeyer()
	}
	if codec == nil {
		codec = NewJSONCodec()
	}

	c := &Client{
		store:     store,
		keyer:     keyer,
		codec:     codec,
		policy:    policy,
		fetch:     fetch,
		endpoints: make(map[string]Endpoint),
	}
	c.RegisterEndpoints(Endpoint{Name: ReservedEmployeeEndpoint, Kind: KindEmployeeList})
	return c, nil
}

// RegisterEndpoints records the payload kind for each endpoint so entries
// are tagged at write time. Register endpoints before sharing the client
// across goroutines.
func (c *Client) RegisterEndpoints(eps ...Endpoint) {
	for _, ep := range eps {
		if ep.Name == "" {
			continue
		}
		c.endpoints[ep.Name] = ep
	}
}

// FetchWithCache computes the key for (endpoint, params) and returns the
// cached payload on a hit without invoking the transport. On a miss it
// invokes the transport, stores the tagged payload under the key, and
// returns it. Transport errors are returned unchanged and never cached.
func (c *Client) FetchWithCache(ctx context.Context, endpoint string, params any) ([]byte, error) {
	if c.store == nil {
		return c.fetch(ctx, endpoint, params)
	}

	key, err := c.keyer.Key(endpoint, params)
	if err != nil {
		// Key derivation failed - fetch without caching.
		return c.fetch(ctx, endpoint, params)
	}

	if e, ok := c.store.Get(ctx, key); ok {
		return e.Payload, nil
	}

	payload, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		// Errors are not cached and the store stays untouched.
		return nil, err
	}

	// Only well-formed payloads enter the store.
	if json.Valid(payload) {
		_ = c.store.Set(ctx, key, c.tagged(endpoint, payload), c.policy.EffectiveTTL(0))
	}

	return payload, nil
}

// FetchWithoutCache always invokes the transport. It never reads or writes
// the store.
func (c *Client) FetchWithoutCache(ctx context.Context, endpoint string, params any) ([]byte, error) {
	return c.fetch(ctx, endpoint, params)
}

// FetchAs runs a cache-aware fetch and decodes the payload into T.
func FetchAs[T any](ctx context.Context, c *Client, endpoint string, params any) (*T, error) {
	payload, err := c.FetchWithCache(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	var v T
	if err := c.codec.Decode(payload, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Clear wipes the entire store. Against a nil store it is a benign no-op
// and never errors.
func (c *Client) Clear(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Clear(ctx)
}

// ClearEndpoints removes every entry whose key starts with any of the given
// endpoint names as a literal prefix, and reports how many entries were
// removed. A nil store is a no-op.
func (c *Client) ClearEndpoints(ctx context.Context, endpoints ...string) (int, error) {
	if c.store == nil {
		return 0, nil
	}

	removed := 0
	for _, ep := range endpoints {
		n, err := c.store.DeletePrefix(ctx, ep)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

// tagged wraps a payload in an Entry carrying the endpoint's registered
// kind, falling back to shape inference for unregistered endpoints.
func (c *Client) tagged(endpoint string, payload []byte) Entry {
	kind := KindUnknown
	if ep, ok := c.endpoints[endpoint]; ok {
		kind = ep.Kind
	}
	if kind == KindUnknown {
		kind = DetectKind(payload)
	}
	return Entry{Kind: kind, Payload: payload}
}

// reservedKey reports whether key belongs to an endpoint whose entries must
// never be inspected for transaction data. Both the bare endpoint key and
// parameterized keys under it are reserved.
func (c *Client) reservedKey(key string) bool {
	for name, ep := range c.endpoints {
		if ep.Kind != KindEmployeeList {
			continue
		}
		if key == name || strings.HasPrefix(key, name+KeySeparator) {
			return true
		}
	}
	return false
}
