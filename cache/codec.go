package cache

import (
	"encoding/json"
	"fmt"
)

// Codec is the explicit encode/decode contract at the storage boundary.
// Every payload crossing into or out of the store goes through a Codec, so
// the serialization round-trip is a testable contract rather than ad hoc
// string concatenation.
type Codec interface {
	// Encode serializes a value for storage.
	Encode(v any) ([]byte, error)

	// Decode deserializes a stored payload into v.
	Decode(payload []byte, v any) error
}

// JSONCodec round-trips payloads as JSON.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Encode serializes v as JSON.
func (JSONCodec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cache: encode: %w", err)
	}
	return raw, nil
}

// Decode deserializes a JSON payload into v.
func (JSONCodec) Decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("cache: decode: %w", err)
	}
	return nil
}

// Ensure JSONCodec implements Codec
var _ Codec = (*JSONCodec)(nil)
