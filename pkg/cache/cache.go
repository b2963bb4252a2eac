// Package cache implements the derived-query cache: a read-through store for
// small computed results (e.g. "has this actor already applied to that
// job?") that are expensive or ordering-sensitive to recompute.
//
// Entries have no TTL. They live until a mutating facade call invalidates
// their key, or until the owning session ends and InvalidateAll clears the
// board. Failed computations are never stored, so the next read retries;
// there is deliberately no backoff — the natural cadence of UI reads bounds
// the retry rate.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/observability"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Key is the composite identity of a derived query.
type Key struct {
	// Kind names the query, e.g. "has_applied".
	Kind string
	// ResourceID identifies the resource the query is about.
	ResourceID string
	// ActorID identifies whose view of the resource this is.
	ActorID string
}

func (k Key) String() string {
	return k.Kind + "\x1f" + k.ResourceID + "\x1f" + k.ActorID
}

// Cache is a coalescing read-through cache. Concurrent Get calls for the
// same missing key share a single in-flight computation. Safe for
// concurrent use; all mutation goes through Get and the Invalidate methods.
type Cache[V any] struct {
	store  *ttlcache.Cache[string, V]
	group  singleflight.Group
	logger *slog.Logger

	// mu orders fills against invalidation: a fill snapshots the key's
	// generation before computing and only stores its result if no
	// invalidation bumped it in the meantime.
	mu    sync.Mutex
	epoch uint64            // bumped by InvalidateAll
	gens  map[string]uint64 // bumped per key by Invalidate
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithLogger configures a logger for cache events.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(c *Cache[V]) {
		c.logger = logger
	}
}

// New creates an empty cache.
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		store: ttlcache.New[string, V](
			ttlcache.WithTTL[string, V](ttlcache.NoTTL),
			ttlcache.WithDisableTouchOnHit[string, V](),
		),
		logger: logging.NewNop(),
		gens:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, or runs compute to fill it. A
// present entry never triggers compute. A miss triggers exactly one compute
// per key at a time: concurrent callers wait on the in-flight computation
// and receive its result. Compute errors propagate to every waiter and are
// not stored.
func (c *Cache[V]) Get(ctx context.Context, key Key, compute func(context.Context) (V, error)) (V, error) {
	id := key.String()

	if item := c.store.Get(id); item != nil {
		observability.CacheHits.WithLabelValues(key.Kind).Inc()
		return item.Value(), nil
	}
	observability.CacheMisses.WithLabelValues(key.Kind).Inc()

	val, err, shared := c.group.Do(id, func() (any, error) {
		// A waiter queued behind the fill may land here after the entry
		// was already stored; serve it without recomputing.
		if item := c.store.Get(id); item != nil {
			return item.Value(), nil
		}

		c.mu.Lock()
		epoch, gen := c.epoch, c.gens[id]
		c.mu.Unlock()

		v, err := compute(ctx)
		if err != nil {
			// Not stored: the next Get retries.
			c.logger.Debug("cache compute failed", "key", id, "err", err)
			return nil, err
		}

		// An invalidation that landed while compute ran wins over the
		// fill: the value is still returned to the waiters, but the next
		// Get recomputes instead of reading a pre-invalidation result.
		c.mu.Lock()
		if c.epoch == epoch && c.gens[id] == gen {
			c.store.Set(id, v, ttlcache.NoTTL)
		} else {
			c.logger.Debug("cache fill discarded, key invalidated mid-flight", "key", id)
		}
		c.mu.Unlock()
		return v, nil
	})
	if shared {
		observability.CacheCoalesced.WithLabelValues(key.Kind).Inc()
	}
	if err != nil {
		var zero V
		return zero, err
	}
	return val.(V), nil
}

// Peek reports whether an entry is present without filling it.
func (c *Cache[V]) Peek(key Key) (V, bool) {
	if item := c.store.Get(key.String()); item != nil {
		return item.Value(), true
	}
	var zero V
	return zero, false
}

// Invalidate removes the entry for key. Removing an absent key is a no-op.
// Mutating facade calls are expected to invalidate every key overlapping
// the resource they touched.
func (c *Cache[V]) Invalidate(key Key) {
	id := key.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	c.store.Delete(id)
}

// InvalidateAll clears the whole cache. Called on session change (logout).
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.gens = make(map[string]uint64)
	c.store.DeleteAll()
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	return c.store.Len()
}
