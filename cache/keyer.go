package cache

import (
	"encoding/json"
	"fmt"
)

// KeySeparator joins the endpoint identifier and the serialized parameters
// inside a cache key.
const KeySeparator = "@"

// Keyer generates cache keys from an endpoint identifier and request
// parameters.
//
// Contract:
// - Determinism: the same endpoint and the same serialized params must
//   produce the same key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from an endpoint and optional params.
	// A nil params yields the bare endpoint identifier.
	Key(endpoint string, params any) (string, error)
}

// EndpointKeyer derives keys by appending the JSON-serialized params to the
// endpoint identifier.
//
// Serialization is NOT canonicalized: two params values whose JSON encodings
// differ (for example struct types declaring the same fields in a different
// order) produce different keys even when their field sets are equal.
// Callers that need key equality must pass identically shaped params. This
// is a documented property of the key scheme, not a defect.
type EndpointKeyer struct{}

// NewEndpointKeyer creates a new endpoint keyer.
func NewEndpointKeyer() *EndpointKeyer {
	return &EndpointKeyer{}
}

// Key generates a cache key.
// Format: <endpoint> or <endpoint>@<serialized params>
func (k *EndpointKeyer) Key(endpoint string, params any) (string, error) {
	if err := ValidateKey(endpoint); err != nil {
		return "", err
	}
	if params == nil {
		return endpoint, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("cache: failed to serialize params: %w", err)
	}
	key := endpoint + KeySeparator + string(raw)
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Ensure EndpointKeyer implements Keyer
var _ Keyer = (*EndpointKeyer)(nil)
