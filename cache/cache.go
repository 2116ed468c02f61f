package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySeparator joins the segments of a composite cache key.
const KeySeparator = ":"

// Kind identifies one of the per-resource caches the client maintains.
type Kind int

const (
	KindPages Kind = iota
	KindBlocks
	KindDatabases
	KindDataSources
)

// Kinds returns every cache kind, in a stable order.
func Kinds() []Kind {
	return []Kind{KindPages, KindBlocks, KindDatabases, KindDataSources}
}

// String implements fmt.Stringer. The names match the cache_sizes keys
// exposed through Stats.
func (k Kind) String() string {
	switch k {
	case KindPages:
		return "pages"
	case KindBlocks:
		return "blocks"
	case KindDatabases:
		return "databases"
	case KindDataSources:
		return "data_sources"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scope selects which caches an invalidation call targets.
//
// ScopeAll exists because a Notion page id is also a block id: the same
// identifier can legitimately live in more than one cache at once, and the
// API gives no way to ask up front which kinds an id belongs to. Callers
// that do not know (or do not care) pass ScopeAll and let the router fan
// out conservatively.
type Scope int

const (
	ScopePage Scope = iota
	ScopeBlock
	ScopeDatabase
	ScopeDataSource
	ScopeAll
)

// String implements fmt.Stringer.
func (s Scope) String() string {
	switch s {
	case ScopePage:
		return "page"
	case ScopeBlock:
		return "block"
	case ScopeDatabase:
		return "database"
	case ScopeDataSource:
		return "data_source"
	case ScopeAll:
		return "all"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Store is the backing key-value storage for the four per-kind caches.
// Implementations enforce capacity eviction and TTL expiry themselves;
// Keys and Len must reflect only currently live (non-expired) entries.
//
// Store implementations do not need to be safe for concurrent use on their
// own: the Accessor serializes every call behind a single mutex.
type Store interface {
	Get(kind Kind, key string) (map[string]any, bool)
	Set(kind Kind, key string, value map[string]any)
	Delete(kind Kind, key string)
	Keys(kind Kind) []string
	Len(kind Kind) int
	Clear(kind Kind)
}

// ChildrenKey builds the composite key used for block-children listings.
// The listing result depends on both the parent id and the page size, so
// the page size is part of the key.
func ChildrenKey(id string, pageSize int) string {
	return id + KeySeparator + strconv.Itoa(pageSize)
}

// matchesResource reports whether a cache key refers to the given resource
// id, either directly or as the prefix of a composite key.
func matchesResource(key, id string) bool {
	return key == id || strings.HasPrefix(key, id+KeySeparator)
}
