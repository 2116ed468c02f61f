package notion

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-notion-client/cache"
	"github.com/goliatone/go-notion-client/internal/transport"
)

// DefaultNotionVersion is the API protocol version sent with every request.
const DefaultNotionVersion = "2025-09-03"

// DefaultBaseURL is the production Notion API endpoint.
const DefaultBaseURL = "https://api.notion.com/v1"

// Config carries every knob the client recognizes. It is immutable after
// the client is constructed; build one with DefaultConfig plus Options, or
// load it from a YAML file with LoadConfig.
type Config struct {
	// APIKey is the Notion integration token. Required.
	APIKey string

	// NotionVersion is the protocol version header value.
	NotionVersion string

	// BaseURL is the API endpoint prefix.
	BaseURL string

	// Timeout bounds each request attempt.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// RetryBackoffFactor scales the exponential backoff between retries,
	// in seconds (0.3 means a 300ms base delay).
	RetryBackoffFactor float64

	// RetryableStatuses are the HTTP status codes retried automatically.
	RetryableStatuses []int

	// PoolConnections and PoolMaxSize bound the HTTP connection pool.
	PoolConnections int
	PoolMaxSize     int

	// EnableLogging turns client logging on; LogLevel is a logrus level
	// name ("debug", "info", "warn", "error").
	EnableLogging bool
	LogLevel      string

	// EnableCaching turns the response caches on.
	EnableCaching bool

	// Per-kind cache TTLs and the shared per-cache entry cap.
	CacheTTLPages       time.Duration
	CacheTTLBlocks      time.Duration
	CacheTTLDatabases   time.Duration
	CacheTTLDataSources time.Duration
	CacheMaxSize        int

	// HTTPClient overrides the built HTTP client when set. Test seam.
	HTTPClient *http.Client
}

// DefaultConfig returns the configuration the client starts from.
func DefaultConfig() Config {
	cacheDefaults := cache.DefaultConfig()
	return Config{
		NotionVersion:       DefaultNotionVersion,
		BaseURL:             DefaultBaseURL,
		Timeout:             30 * time.Second,
		MaxRetries:          3,
		RetryBackoffFactor:  0.3,
		RetryableStatuses:   []int{429, 500, 502, 503, 504},
		PoolConnections:     10,
		PoolMaxSize:         10,
		EnableLogging:       false,
		LogLevel:            "info",
		EnableCaching:       true,
		CacheTTLPages:       cacheDefaults.TTLPages,
		CacheTTLBlocks:      cacheDefaults.TTLBlocks,
		CacheTTLDatabases:   cacheDefaults.TTLDatabases,
		CacheTTLDataSources: cacheDefaults.TTLDataSources,
		CacheMaxSize:        cacheDefaults.MaxEntries,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.NotionVersion, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.RetryBackoffFactor, validation.Min(0.0)),
		validation.Field(&c.PoolConnections, validation.Required, validation.Min(1)),
		validation.Field(&c.PoolMaxSize, validation.Required, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.By(validLogLevel)),
		validation.Field(&c.CacheMaxSize,
			validation.When(c.EnableCaching, validation.Required, validation.Min(1))),
		validation.Field(&c.CacheTTLPages,
			validation.When(c.EnableCaching, validation.Required, validation.Min(time.Duration(0)))),
		validation.Field(&c.CacheTTLBlocks,
			validation.When(c.EnableCaching, validation.Required, validation.Min(time.Duration(0)))),
		validation.Field(&c.CacheTTLDatabases,
			validation.When(c.EnableCaching, validation.Required, validation.Min(time.Duration(0)))),
		validation.Field(&c.CacheTTLDataSources,
			validation.When(c.EnableCaching, validation.Required, validation.Min(time.Duration(0)))),
	)
}

func validLogLevel(value any) error {
	level, _ := value.(string)
	if level == "" {
		return nil
	}
	if _, err := logrus.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

// keyLooksUnusual reports whether the API key is missing the prefixes
// Notion integration tokens carry. Not an error, only worth a warning.
func (c Config) keyLooksUnusual() bool {
	return !strings.HasPrefix(c.APIKey, "secret_") && !strings.HasPrefix(c.APIKey, "ntn_")
}

// cacheConfig maps the client configuration onto the cache layer's.
func (c Config) cacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.TTLPages = c.CacheTTLPages
	cfg.TTLBlocks = c.CacheTTLBlocks
	cfg.TTLDatabases = c.CacheTTLDatabases
	cfg.TTLDataSources = c.CacheTTLDataSources
	cfg.MaxEntries = c.CacheMaxSize
	return cfg
}

// transportConfig maps the client configuration onto the HTTP layer's.
func (c Config) transportConfig(log *logrus.Logger) transport.Config {
	return transport.Config{
		BaseURL:           c.BaseURL,
		APIKey:            c.APIKey,
		NotionVersion:     c.NotionVersion,
		Timeout:           c.Timeout,
		MaxRetries:        c.MaxRetries,
		RetryBackoff:      time.Duration(c.RetryBackoffFactor * float64(time.Second)),
		RetryableStatuses: c.RetryableStatuses,
		PoolConnections:   c.PoolConnections,
		PoolMaxSize:       c.PoolMaxSize,
		HTTPClient:        c.HTTPClient,
		Logger:            log,
	}
}

// fileConfig is the YAML shape of a config file. Durations are expressed
// in seconds, matching the wrapped API's own configuration conventions.
// Pointer fields distinguish "absent" from zero so that omitted keys keep
// their defaults.
type fileConfig struct {
	APIKey                     *string  `yaml:"api_key"`
	NotionVersion              *string  `yaml:"notion_version"`
	BaseURL                    *string  `yaml:"base_url"`
	TimeoutSeconds             *int     `yaml:"timeout_seconds"`
	MaxRetries                 *int     `yaml:"max_retries"`
	RetryBackoffFactor         *float64 `yaml:"retry_backoff_factor"`
	RetryableStatuses          []int    `yaml:"retryable_statuses"`
	PoolConnections            *int     `yaml:"pool_connections"`
	PoolMaxSize                *int     `yaml:"pool_max_size"`
	EnableLogging              *bool    `yaml:"enable_logging"`
	LogLevel                   *string  `yaml:"log_level"`
	EnableCaching              *bool    `yaml:"enable_caching"`
	CacheTTLPagesSeconds       *int     `yaml:"cache_ttl_pages_seconds"`
	CacheTTLBlocksSeconds      *int     `yaml:"cache_ttl_blocks_seconds"`
	CacheTTLDatabasesSeconds   *int     `yaml:"cache_ttl_databases_seconds"`
	CacheTTLDataSourcesSeconds *int     `yaml:"cache_ttl_data_sources_seconds"`
	CacheMaxSize               *int     `yaml:"cache_max_size"`
}

// LoadConfig reads a YAML configuration file. Keys absent from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if fc.APIKey != nil {
		cfg.APIKey = *fc.APIKey
	}
	if fc.NotionVersion != nil {
		cfg.NotionVersion = *fc.NotionVersion
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*fc.TimeoutSeconds) * time.Second
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}
	if fc.RetryBackoffFactor != nil {
		cfg.RetryBackoffFactor = *fc.RetryBackoffFactor
	}
	if fc.RetryableStatuses != nil {
		cfg.RetryableStatuses = fc.RetryableStatuses
	}
	if fc.PoolConnections != nil {
		cfg.PoolConnections = *fc.PoolConnections
	}
	if fc.PoolMaxSize != nil {
		cfg.PoolMaxSize = *fc.PoolMaxSize
	}
	if fc.EnableLogging != nil {
		cfg.EnableLogging = *fc.EnableLogging
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.EnableCaching != nil {
		cfg.EnableCaching = *fc.EnableCaching
	}
	if fc.CacheTTLPagesSeconds != nil {
		cfg.CacheTTLPages = time.Duration(*fc.CacheTTLPagesSeconds) * time.Second
	}
	if fc.CacheTTLBlocksSeconds != nil {
		cfg.CacheTTLBlocks = time.Duration(*fc.CacheTTLBlocksSeconds) * time.Second
	}
	if fc.CacheTTLDatabasesSeconds != nil {
		cfg.CacheTTLDatabases = time.Duration(*fc.CacheTTLDatabasesSeconds) * time.Second
	}
	if fc.CacheTTLDataSourcesSeconds != nil {
		cfg.CacheTTLDataSources = time.Duration(*fc.CacheTTLDataSourcesSeconds) * time.Second
	}
	if fc.CacheMaxSize != nil {
		cfg.CacheMaxSize = *fc.CacheMaxSize
	}

	return cfg, nil
}
