// Package cachemanager provides a small generic caching layer used to
// memoize derived results such as match queries.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager caches values of type V under string-like keys.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
