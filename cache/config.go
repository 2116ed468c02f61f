package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the tuning knobs for the four per-kind caches. One TTL per
// resource kind, one shared entry cap applied to each cache independently.
type Config struct {
	// TTLPages bounds the age of page entries. Default: 5 minutes.
	TTLPages time.Duration

	// TTLBlocks bounds the age of block-children entries. Default: 10 minutes.
	TTLBlocks time.Duration

	// TTLDatabases bounds the age of database metadata entries. Default: 30 minutes.
	TTLDatabases time.Duration

	// TTLDataSources bounds the age of data source schema entries. Default: 30 minutes.
	TTLDataSources time.Duration

	// MaxEntries caps the live entry count of each cache. When a cache
	// exceeds it, the oldest entries are evicted. Default: 100.
	MaxEntries int

	// NumShards is the shard count of each backing cache. Default: 16.
	NumShards int

	// EvictionPercentage is how much of a full cache is evicted when the
	// entry cap is hit, in percent. Default: 10.
	EvictionPercentage int
}

// DefaultConfig returns the cache configuration the client uses unless
// told otherwise. The TTL classes reflect how quickly each resource kind
// tends to change: page content churns, database metadata mostly does not.
func DefaultConfig() Config {
	return Config{
		TTLPages:           5 * time.Minute,
		TTLBlocks:          10 * time.Minute,
		TTLDatabases:       30 * time.Minute,
		TTLDataSources:     30 * time.Minute,
		MaxEntries:         100,
		NumShards:          16,
		EvictionPercentage: 10,
	}
}

// TTL returns the configured TTL for a cache kind.
func (c Config) TTL(kind Kind) time.Duration {
	switch kind {
	case KindPages:
		return c.TTLPages
	case KindBlocks:
		return c.TTLBlocks
	case KindDatabases:
		return c.TTLDatabases
	case KindDataSources:
		return c.TTLDataSources
	default:
		return c.TTLPages
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TTLPages, validation.Required, validation.Min(time.Duration(0))),
		validation.Field(&c.TTLBlocks, validation.Required, validation.Min(time.Duration(0))),
		validation.Field(&c.TTLDatabases, validation.Required, validation.Min(time.Duration(0))),
		validation.Field(&c.TTLDataSources, validation.Required, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxEntries, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
	)
}
