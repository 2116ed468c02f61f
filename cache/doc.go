// Package cache implements the response caching layer of the Notion client:
// four TTL and capacity bounded caches (pages, blocks, databases, data
// sources) behind a lock-guarded accessor that also routes invalidations.
//
// # Overview
//
// The package exports three pieces:
//
//   - Store: the backing storage contract for the four per-kind caches
//   - Accessor: mutex-guarded get/set/invalidate with hit/miss/invalidation counters
//   - Config: per-kind TTLs plus a shared entry cap
//
// The client populates caches on successful reads and invalidates them on
// successful writes. Entries are never updated in place: write-then-read
// consistency comes from removal followed by a fresh remote fetch.
//
// # Keys and the aliasing rule
//
// Pages, databases and data sources are cached under their resource id.
// Block-children listings are cached under a composite key built with
// ChildrenKey, because the listing depends on the requested page size:
//
//	key := cache.ChildrenKey("2af4", 50) // "2af4:50"
//
// In Notion a page id is also a block id, so a single identifier can sit in
// the page cache and, as a composite-key prefix, in the blocks cache at the
// same time. Invalidation scopes encode this: writers that cannot rule out
// aliasing pass ScopeAll and the router removes the id from every cache it
// could appear in, scanning the blocks cache for composite-key matches.
//
// # Concurrency
//
// Accessor operations are linearizable with respect to one another: each
// get, set, clear and each full invalidation scan is a single critical
// section on one mutex. The mutex is never held across network calls. A
// remote read racing a concurrent invalidation of the same id can
// repopulate the just-removed entry; see the Accessor docs.
package cache
