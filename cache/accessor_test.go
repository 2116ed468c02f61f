package cache

import (
	"fmt"
	"sync"
	"testing"
)

// memStore is a plain map-backed Store without TTL or capacity limits,
// enough to exercise the accessor's locking and routing.
type memStore struct {
	data map[Kind]map[string]map[string]any
}

func newMemStore() *memStore {
	data := make(map[Kind]map[string]map[string]any)
	for _, kind := range Kinds() {
		data[kind] = make(map[string]map[string]any)
	}
	return &memStore{data: data}
}

func (s *memStore) Get(kind Kind, key string) (map[string]any, bool) {
	value, ok := s.data[kind][key]
	return value, ok
}

func (s *memStore) Set(kind Kind, key string, value map[string]any) {
	s.data[kind][key] = value
}

func (s *memStore) Delete(kind Kind, key string) {
	delete(s.data[kind], key)
}

func (s *memStore) Keys(kind Kind) []string {
	keys := make([]string, 0, len(s.data[kind]))
	for key := range s.data[kind] {
		keys = append(keys, key)
	}
	return keys
}

func (s *memStore) Len(kind Kind) int {
	return len(s.data[kind])
}

func (s *memStore) Clear(kind Kind) {
	s.data[kind] = make(map[string]map[string]any)
}

func newTestAccessor() (*Accessor, *memStore) {
	store := newMemStore()
	return NewAccessor(store, true, nil), store
}

func TestAccessorGetCountsHitsAndMisses(t *testing.T) {
	accessor, _ := newTestAccessor()

	if _, ok := accessor.Get(KindPages, "p1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	accessor.Set(KindPages, "p1", map[string]any{"id": "p1"})

	value, ok := accessor.Get(KindPages, "p1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if value["id"] != "p1" {
		t.Errorf("expected cached value for p1, got %v", value)
	}

	stats := accessor.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
	if stats.TotalRequests != 2 {
		t.Errorf("expected hits+misses to equal the 2 Get calls, got %d", stats.TotalRequests)
	}
	if stats.HitRatePercent != 50 {
		t.Errorf("expected 50%% hit rate, got %v", stats.HitRatePercent)
	}
}

func TestAccessorSetOverwrites(t *testing.T) {
	accessor, _ := newTestAccessor()

	accessor.Set(KindPages, "p1", map[string]any{"rev": 1})
	accessor.Set(KindPages, "p1", map[string]any{"rev": 2})

	value, ok := accessor.Get(KindPages, "p1")
	if !ok {
		t.Fatal("expected hit")
	}
	if value["rev"] != 2 {
		t.Errorf("expected overwritten value rev=2, got %v", value["rev"])
	}
}

func TestAccessorGetReturnsSharedValue(t *testing.T) {
	accessor, _ := newTestAccessor()

	accessor.Set(KindPages, "p1", map[string]any{"rev": 1})

	first, ok := accessor.Get(KindPages, "p1")
	if !ok {
		t.Fatal("expected hit")
	}
	first["rev"] = 99

	second, ok := accessor.Get(KindPages, "p1")
	if !ok {
		t.Fatal("expected hit")
	}
	if second["rev"] != 99 {
		t.Errorf("expected the stored map to be shared with callers, got rev %v", second["rev"])
	}
}

func TestAccessorDisabledIsNoOp(t *testing.T) {
	accessor := NewAccessor(newMemStore(), false, nil)

	accessor.Set(KindPages, "p1", map[string]any{"id": "p1"})
	if _, ok := accessor.Get(KindPages, "p1"); ok {
		t.Error("expected miss while disabled")
	}
	if removed := accessor.Invalidate("p1", ScopeAll); removed != 0 {
		t.Errorf("expected no removals while disabled, got %d", removed)
	}

	stats := accessor.Stats()
	if stats.Enabled {
		t.Error("expected stats to report disabled")
	}
	if stats.Hits != 0 || stats.Misses != 0 || stats.Invalidations != 0 {
		t.Error("expected disabled mode to leave counters untouched")
	}
}

func TestAccessorNilStoreDisables(t *testing.T) {
	accessor := NewAccessor(nil, true, nil)

	if accessor.Enabled() {
		t.Error("expected accessor without a store to be disabled")
	}
	if _, ok := accessor.Get(KindPages, "p1"); ok {
		t.Error("expected miss without a store")
	}
}

func TestInvalidateNarrowScopes(t *testing.T) {
	tests := []struct {
		scope     Scope
		remaining map[Kind]int
	}{
		{ScopePage, map[Kind]int{KindPages: 0, KindBlocks: 1, KindDatabases: 1, KindDataSources: 1}},
		{ScopeBlock, map[Kind]int{KindPages: 1, KindBlocks: 0, KindDatabases: 1, KindDataSources: 1}},
		{ScopeDatabase, map[Kind]int{KindPages: 1, KindBlocks: 1, KindDatabases: 0, KindDataSources: 1}},
		{ScopeDataSource, map[Kind]int{KindPages: 1, KindBlocks: 1, KindDatabases: 1, KindDataSources: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			accessor, store := newTestAccessor()
			accessor.Set(KindPages, "x", map[string]any{})
			accessor.Set(KindBlocks, ChildrenKey("x", 50), map[string]any{})
			accessor.Set(KindDatabases, "x", map[string]any{})
			accessor.Set(KindDataSources, "x", map[string]any{})

			if removed := accessor.Invalidate("x", tt.scope); removed != 1 {
				t.Errorf("expected 1 removal, got %d", removed)
			}
			for kind, want := range tt.remaining {
				if got := store.Len(kind); got != want {
					t.Errorf("cache %s: expected %d entries, got %d", kind, want, got)
				}
			}
		})
	}
}

func TestInvalidateAllFansOut(t *testing.T) {
	accessor, store := newTestAccessor()

	// The same id aliased as page, block-children prefix, database and
	// data source at once.
	accessor.Set(KindPages, "x", map[string]any{})
	accessor.Set(KindBlocks, "x", map[string]any{})
	accessor.Set(KindBlocks, ChildrenKey("x", 50), map[string]any{})
	accessor.Set(KindBlocks, ChildrenKey("x", 100), map[string]any{})
	accessor.Set(KindDatabases, "x", map[string]any{})
	accessor.Set(KindDataSources, "x", map[string]any{})
	accessor.Set(KindPages, "other", map[string]any{})

	removed := accessor.Invalidate("x", ScopeAll)
	if removed != 6 {
		t.Errorf("expected 6 removals, got %d", removed)
	}

	for _, kind := range Kinds() {
		for _, key := range store.Keys(kind) {
			if matchesResource(key, "x") {
				t.Errorf("cache %s still holds key %q after ScopeAll invalidation", kind, key)
			}
		}
	}
	if _, ok := store.Get(KindPages, "other"); !ok {
		t.Error("unrelated entry was removed")
	}

	stats := accessor.Stats()
	if stats.Invalidations != 1 {
		t.Errorf("expected a single invalidation increment, got %d", stats.Invalidations)
	}
}

func TestInvalidateCompositeKeysMatchOnlyOwnPrefix(t *testing.T) {
	accessor, store := newTestAccessor()

	accessor.Set(KindBlocks, ChildrenKey("x", 50), map[string]any{})
	accessor.Set(KindBlocks, ChildrenKey("y", 50), map[string]any{})
	accessor.Set(KindBlocks, ChildrenKey("xy", 50), map[string]any{})

	if removed := accessor.Invalidate("x", ScopeBlock); removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}

	if _, ok := store.Get(KindBlocks, ChildrenKey("x", 50)); ok {
		t.Error("expected x:50 to be removed")
	}
	if _, ok := store.Get(KindBlocks, ChildrenKey("y", 50)); !ok {
		t.Error("expected y:50 to survive")
	}
	if _, ok := store.Get(KindBlocks, ChildrenKey("xy", 50)); !ok {
		t.Error("expected xy:50 to survive")
	}
}

func TestInvalidateNothingLeavesCounterUnchanged(t *testing.T) {
	accessor, _ := newTestAccessor()

	if removed := accessor.Invalidate("never-cached", ScopeAll); removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}

	if stats := accessor.Stats(); stats.Invalidations != 0 {
		t.Errorf("expected invalidations counter to stay at 0, got %d", stats.Invalidations)
	}
}

func TestClear(t *testing.T) {
	accessor, store := newTestAccessor()

	for _, kind := range Kinds() {
		accessor.Set(kind, "k", map[string]any{})
	}

	accessor.Clear(KindPages)
	if store.Len(KindPages) != 0 {
		t.Error("expected page cache to be empty")
	}
	if store.Len(KindBlocks) != 1 {
		t.Error("expected blocks cache to be untouched")
	}

	accessor.Clear()
	for _, kind := range Kinds() {
		if store.Len(kind) != 0 {
			t.Errorf("expected cache %s to be empty after full clear", kind)
		}
	}
}

func TestStatsSizes(t *testing.T) {
	accessor, _ := newTestAccessor()

	accessor.Set(KindPages, "p1", map[string]any{})
	accessor.Set(KindPages, "p2", map[string]any{})
	accessor.Set(KindBlocks, ChildrenKey("p1", 100), map[string]any{})

	sizes := accessor.Stats().Sizes
	if sizes.Pages != 2 || sizes.Blocks != 1 || sizes.Databases != 0 || sizes.DataSources != 0 {
		t.Errorf("unexpected sizes: %+v", sizes)
	}
}

func TestAccessorConcurrentAccess(t *testing.T) {
	accessor, _ := newTestAccessor()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := fmt.Sprintf("res-%d", j%10)
				switch j % 4 {
				case 0:
					accessor.Set(KindPages, id, map[string]any{"n": n})
				case 1:
					accessor.Get(KindPages, id)
				case 2:
					accessor.Set(KindBlocks, ChildrenKey(id, 50), map[string]any{})
				case 3:
					accessor.Invalidate(id, ScopeAll)
				}
			}
		}(i)
	}
	wg.Wait()

	stats := accessor.Stats()
	if stats.TotalRequests != stats.Hits+stats.Misses {
		t.Errorf("counter mismatch: %+v", stats)
	}
}
