// Package cache provides the memoization layer that sits in front of
// the user directory. Entries have no TTL and no size bound: the
// cache lives for the duration of a session and consistency is kept
// by explicit invalidation on every mutation, not by expiry.
package cache

// Cache is a minimal string-keyed store. Get reports whether the key
// was present so callers can distinguish a cached nil from a miss.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}
