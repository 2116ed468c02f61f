package notion

import (
	"net/http"
	"time"
)

// Option mutates the configuration before the client is built.
type Option func(*Config)

// WithNotionVersion overrides the protocol version header.
func WithNotionVersion(version string) Option {
	return func(c *Config) {
		c.NotionVersion = version
	}
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the number of additional attempts after the first.
func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithRetryBackoffFactor sets the exponential backoff base, in seconds.
func WithRetryBackoffFactor(factor float64) Option {
	return func(c *Config) {
		c.RetryBackoffFactor = factor
	}
}

// WithRetryableStatuses replaces the set of automatically retried
// HTTP status codes.
func WithRetryableStatuses(statuses ...int) Option {
	return func(c *Config) {
		c.RetryableStatuses = statuses
	}
}

// WithPoolSize bounds the HTTP connection pool.
func WithPoolSize(connections, maxSize int) Option {
	return func(c *Config) {
		c.PoolConnections = connections
		c.PoolMaxSize = maxSize
	}
}

// WithLogging enables client logging at the given logrus level name.
func WithLogging(level string) Option {
	return func(c *Config) {
		c.EnableLogging = true
		c.LogLevel = level
	}
}

// WithCaching toggles the response caches.
func WithCaching(enabled bool) Option {
	return func(c *Config) {
		c.EnableCaching = enabled
	}
}

// WithCacheTTLs sets the four per-kind cache TTLs.
func WithCacheTTLs(pages, blocks, databases, dataSources time.Duration) Option {
	return func(c *Config) {
		c.CacheTTLPages = pages
		c.CacheTTLBlocks = blocks
		c.CacheTTLDatabases = databases
		c.CacheTTLDataSources = dataSources
	}
}

// WithCacheMaxSize sets the shared per-cache entry cap.
func WithCacheMaxSize(size int) Option {
	return func(c *Config) {
		c.CacheMaxSize = size
	}
}

// WithHTTPClient substitutes the underlying HTTP client. Mostly a test
// seam; the substituted client bypasses the pool configuration.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}
