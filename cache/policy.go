package cache

import "time"

// Policy configures entry lifetime.
type Policy struct {
	// DefaultTTL is applied to entries written on a cache miss.
	// Zero means entries live until cleared or overwritten.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// SessionPolicy returns the default policy for a UI session cache: entries
// never expire on their own, they live until cleared, overwritten, or
// patched.
func SessionPolicy() Policy {
	return Policy{}
}

// ExpiringPolicy returns a policy with the given default TTL, capped at one
// hour.
func ExpiringPolicy(ttl time.Duration) Policy {
	return Policy{
		DefaultTTL: ttl,
		MaxTTL:     1 * time.Hour,
	}
}

// EffectiveTTL returns the TTL to use, applying the default and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
