// Package cacheinfra provides the sturdyc-backed implementation of the
// cache.Store contract used by the Notion client.
package cacheinfra

import (
	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-notion-client/cache"
)

// Interface assertion to ensure Store implements cache.Store.
var _ cache.Store = (*Store)(nil)

// Store backs the four per-kind caches with one sturdyc client each.
// Capacity eviction and TTL expiry are sturdyc's: an expired entry is
// reported as absent on Get, no background sweeper of our own is needed.
type Store struct {
	clients map[cache.Kind]*sturdyc.Client[map[string]any]
}

// NewStore builds a Store from the cache configuration. Every kind shares
// the capacity, shard count and eviction percentage; each kind gets its
// own TTL.
func NewStore(cfg cache.Config) *Store {
	clients := make(map[cache.Kind]*sturdyc.Client[map[string]any], len(cache.Kinds()))
	for _, kind := range cache.Kinds() {
		clients[kind] = sturdyc.New[map[string]any](
			cfg.MaxEntries,
			cfg.NumShards,
			cfg.TTL(kind),
			cfg.EvictionPercentage,
		)
	}
	return &Store{clients: clients}
}

// Get implements cache.Store.
func (s *Store) Get(kind cache.Kind, key string) (map[string]any, bool) {
	return s.clients[kind].Get(key)
}

// Set implements cache.Store.
func (s *Store) Set(kind cache.Kind, key string, value map[string]any) {
	s.clients[kind].Set(key, value)
}

// Delete implements cache.Store.
func (s *Store) Delete(kind cache.Kind, key string) {
	s.clients[kind].Delete(key)
}

// Keys implements cache.Store. ScanKeys may still report entries whose TTL
// has lapsed but which have not been evicted yet, so each key is re-checked
// with Get before being returned.
func (s *Store) Keys(kind cache.Kind) []string {
	client := s.clients[kind]

	var live []string
	for _, key := range client.ScanKeys() {
		if _, ok := client.Get(key); ok {
			live = append(live, key)
		}
	}
	return live
}

// Len implements cache.Store.
func (s *Store) Len(kind cache.Kind) int {
	return len(s.Keys(kind))
}

// Clear implements cache.Store.
func (s *Store) Clear(kind cache.Kind) {
	client := s.clients[kind]
	for _, key := range client.ScanKeys() {
		client.Delete(key)
	}
}
