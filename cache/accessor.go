package cache

import (
	"io"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// Stats is a point-in-time snapshot of cache activity. Counters are
// process-lifetime monotonic; they reset only when the owning client is
// rebuilt.
type Stats struct {
	Enabled        bool       `json:"enabled"`
	Hits           int64      `json:"hits"`
	Misses         int64      `json:"misses"`
	Invalidations  int64      `json:"invalidations"`
	TotalRequests  int64      `json:"total_requests"`
	HitRatePercent float64    `json:"hit_rate_percent"`
	Sizes          CacheSizes `json:"cache_sizes"`
}

// CacheSizes reports the live entry count of each per-kind cache.
type CacheSizes struct {
	Pages       int `json:"pages"`
	Blocks      int `json:"blocks"`
	Databases   int `json:"databases"`
	DataSources int `json:"data_sources"`
}

// Accessor guards a Store behind a single mutex so that lookups, stores,
// counter updates and multi-cache invalidation scans are each one atomic
// critical section. One Accessor is owned by exactly one client instance;
// the mutex is never held across a network call.
//
// Known race: a read response that arrives after a concurrent
// invalidation of the same id will repopulate the entry the invalidation
// just removed. The mutex guards cache state, not the network.
//
// Values are shared, not copied: Get returns the stored map itself, so a
// caller that mutates a result rewrites the cached entry for every later
// reader. Treat results as read-only.
type Accessor struct {
	mu      sync.Mutex
	store   Store
	enabled bool
	log     *logrus.Logger

	hits          int64
	misses        int64
	invalidations int64
}

// NewAccessor wraps store with the locking and bookkeeping layer. When
// enabled is false the accessor is a no-op: Get always misses, Set and
// Invalidate do nothing, and no counters move.
func NewAccessor(store Store, enabled bool, log *logrus.Logger) *Accessor {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Accessor{
		store:   store,
		enabled: enabled && store != nil,
		log:     log,
	}
}

// Enabled reports whether caching is active for this accessor.
func (a *Accessor) Enabled() bool {
	return a.enabled
}

// Get looks up key in the cache for kind. It increments exactly one of the
// hit or miss counters per call while caching is enabled.
func (a *Accessor) Get(kind Kind, key string) (map[string]any, bool) {
	if !a.enabled {
		return nil, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	value, ok := a.store.Get(kind, key)
	if ok {
		a.hits++
		a.log.WithFields(logrus.Fields{"cache": kind.String(), "key": key}).Debug("cache hit")
		return value, true
	}

	a.misses++
	a.log.WithFields(logrus.Fields{"cache": kind.String(), "key": key}).Debug("cache miss")
	return nil, false
}

// Set stores value under key, unconditionally overwriting any previous
// entry. No-op while caching is disabled.
func (a *Accessor) Set(kind Kind, key string, value map[string]any) {
	if !a.enabled {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Set(kind, key, value)
	a.log.WithFields(logrus.Fields{"cache": kind.String(), "key": key}).Debug("cache store")
}

// Invalidate removes every entry for id from the caches selected by scope
// and returns the number of entries removed. The whole multi-cache scan is
// one critical section.
//
// The blocks cache is scanned rather than probed because block-children
// entries use composite keys ("id:pageSize"); the id alone is not a direct
// key there. The invalidations counter increments once per call that
// removed at least one entry, regardless of how many caches were touched.
func (a *Accessor) Invalidate(id string, scope Scope) int {
	if !a.enabled {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0

	if scope == ScopePage || scope == ScopeAll {
		removed += a.deleteDirect(KindPages, id)
	}

	if scope == ScopeBlock || scope == ScopeAll {
		for _, key := range a.store.Keys(KindBlocks) {
			if matchesResource(key, id) {
				a.store.Delete(KindBlocks, key)
				removed++
			}
		}
	}

	if scope == ScopeDatabase || scope == ScopeAll {
		removed += a.deleteDirect(KindDatabases, id)
	}

	if scope == ScopeDataSource || scope == ScopeAll {
		removed += a.deleteDirect(KindDataSources, id)
	}

	if removed > 0 {
		a.invalidations++
		a.log.WithFields(logrus.Fields{
			"resource": id,
			"scope":    scope.String(),
			"removed":  removed,
		}).Info("cache invalidated")
	} else {
		a.log.WithFields(logrus.Fields{
			"resource": id,
			"scope":    scope.String(),
		}).Debug("cache invalidation matched no entries")
	}

	return removed
}

// deleteDirect removes id from kind when it is present as a direct key.
// Caller holds the mutex.
func (a *Accessor) deleteDirect(kind Kind, id string) int {
	if _, ok := a.store.Get(kind, id); !ok {
		return 0
	}
	a.store.Delete(kind, id)
	return 1
}

// Clear empties the given caches, or every cache when called without
// arguments. Counters are not reset.
func (a *Accessor) Clear(kinds ...Kind) {
	if !a.enabled {
		return
	}

	if len(kinds) == 0 {
		kinds = Kinds()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, kind := range kinds {
		a.store.Clear(kind)
		a.log.WithField("cache", kind.String()).Info("cache cleared")
	}
}

// Stats returns a snapshot of the counters and live cache sizes. When
// caching is disabled only Enabled is meaningful.
func (a *Accessor) Stats() Stats {
	if !a.enabled {
		return Stats{Enabled: false}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	total := a.hits + a.misses
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(a.hits)/float64(total)*100*100) / 100
	}

	return Stats{
		Enabled:        true,
		Hits:           a.hits,
		Misses:         a.misses,
		Invalidations:  a.invalidations,
		TotalRequests:  total,
		HitRatePercent: rate,
		Sizes: CacheSizes{
			Pages:       a.store.Len(KindPages),
			Blocks:      a.store.Len(KindBlocks),
			Databases:   a.store.Len(KindDatabases),
			DataSources: a.store.Len(KindDataSources),
		},
	}
}
