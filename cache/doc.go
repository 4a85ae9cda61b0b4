// Package cache provides the client-side request cache for the approvals
// dashboard.
//
// It derives deterministic keys from endpoint and parameters, dispatches
// cache-aware fetches through an external transport, supports full and
// endpoint-scoped invalidation, and patches cached transaction payloads in
// place after an approval change instead of wiping the store.
package cache
