package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-notion-client/cache"
	"github.com/goliatone/go-notion-client/internal/cacheinfra"
	"github.com/goliatone/go-notion-client/internal/transport"
)

// Client is a Notion API client with retry, connection pooling, response
// caching and a typed error taxonomy. One Client owns one set of caches;
// it is safe for concurrent use.
type Client struct {
	cfg    Config
	log    *logrus.Logger
	api    *transport.Client
	caches *cache.Accessor
}

// NewClient builds a client for the given integration token, starting from
// DefaultConfig and applying the options in order.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClientFromConfig(cfg)
}

// NewClientFromConfig builds a client from a fully specified configuration,
// typically one produced by LoadConfig.
func NewClientFromConfig(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cfg)

	if cfg.keyLooksUnusual() {
		log.Warn("api key format looks unusual; expected a token starting with \"secret_\" or \"ntn_\"")
	}

	var caches *cache.Accessor
	if cfg.EnableCaching {
		caches = cache.NewAccessor(cacheinfra.NewStore(cfg.cacheConfig()), true, log)
	} else {
		caches = cache.NewAccessor(nil, false, log)
	}

	c := &Client{
		cfg:    cfg,
		log:    log,
		api:    transport.New(cfg.transportConfig(log)),
		caches: caches,
	}

	log.WithField("notion_version", cfg.NotionVersion).Info("client initialized")
	if cfg.EnableCaching {
		log.WithFields(logrus.Fields{
			"ttl_pages":     cfg.CacheTTLPages,
			"ttl_blocks":    cfg.CacheTTLBlocks,
			"ttl_databases": cfg.CacheTTLDatabases,
		}).Info("caching enabled")
	}

	return c, nil
}

// newLogger builds the client logger. With logging disabled everything is
// routed to io.Discard so call sites never nil-check.
func newLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	if !cfg.EnableLogging {
		log.SetOutput(io.Discard)
		return log
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// CacheStats returns a snapshot of cache activity. With caching disabled
// only the Enabled field is meaningful.
func (c *Client) CacheStats() cache.Stats {
	return c.caches.Stats()
}

// ClearCache empties the given caches, or every cache when called with no
// arguments.
func (c *Client) ClearCache(kinds ...cache.Kind) {
	c.caches.Clear(kinds...)
}

// Close releases idle pooled connections. The client must not be used
// afterwards.
func (c *Client) Close() {
	c.api.CloseIdleConnections()
	c.log.Info("client closed")
}

// do executes one request and maps the outcome onto the error taxonomy.
// Cache state is never touched here: callers populate or invalidate only
// after do reports success.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, query url.Values) (map[string]any, error) {
	resp, err := c.api.Do(ctx, method, endpoint, body, query)
	if err != nil {
		switch {
		case errors.Is(err, transport.ErrTimeout):
			return nil, &TimeoutError{
				Message: fmt.Sprintf("request timed out after %s", c.cfg.Timeout),
				Err:     err,
			}
		case errors.Is(err, transport.ErrConnection):
			return nil, &ConnectionError{
				Message: "connection error: " + err.Error(),
				Err:     err,
			}
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			// Anything unexpected collapses into the catch-all kind so
			// callers only ever observe the fixed taxonomy.
			return nil, &APIError{Message: "unexpected error: " + err.Error()}
		}
	}

	if resp.StatusCode >= 400 {
		err := errorFromResponse(resp)
		c.log.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"endpoint": endpoint,
		}).WithError(err).Error("api error")
		return nil, err
	}

	var result map[string]any
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, &APIError{
				Message:    "decode response: " + err.Error(),
				StatusCode: resp.StatusCode,
			}
		}
	}
	return result, nil
}

// clampPageSize keeps a page size within the API's 1..100 window, mapping
// the zero value to the maximum.
func clampPageSize(pageSize int) int {
	if pageSize <= 0 || pageSize > 100 {
		return 100
	}
	return pageSize
}

// resultsOf extracts the "results" array common to listing responses.
func resultsOf(response map[string]any) []map[string]any {
	raw, ok := response["results"].([]any)
	if !ok {
		return nil
	}
	results := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]any); ok {
			results = append(results, entry)
		}
	}
	return results
}
