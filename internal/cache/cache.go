// Package cache provides the quote-result cache used by the HTTP layer.
// Cache failures are never fatal; a miss just recomputes the quote.
package cache

// Cache is a small string cache keyed by deterministic quote keys.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
