// Package notion is a typed client for the Notion API with retry,
// connection pooling, response caching and a fixed error taxonomy.
//
// # Basic Usage
//
//	client, err := notion.NewClient(os.Getenv("NOTION_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	page, err := client.GetPage(ctx, "page-id")
//	if notion.IsNotFound(err) {
//		// ...
//	}
//
// Configuration is applied through options or loaded from a YAML file:
//
//	client, err := notion.NewClient(key,
//		notion.WithLogging("debug"),
//		notion.WithMaxRetries(5),
//		notion.WithCacheTTLs(10*time.Minute, 10*time.Minute, time.Hour, time.Hour),
//	)
//
//	cfg, err := notion.LoadConfig("notion.yaml")
//	client, err := notion.NewClientFromConfig(cfg)
//
// # Caching
//
// Reads of pages, databases, data source schemas and block-children
// listings are served from per-kind TTL caches; writes invalidate the
// affected ids after the remote call succeeds, so the next read fetches
// fresh data. Note that in Notion a page id is also a block id: writes to
// such ids fan out across caches. CacheStats and ClearCache expose the
// cache state; a failed call never changes it.
//
// # Errors
//
// Every failure surfaces as one of the taxonomy kinds: Authentication
// (401), Validation (400), RateLimit (429), NotFound (404), Conflict
// (409), the catch-all APIError for other statuses, and Timeout or
// Connection for transport failures. All API-originated kinds unwrap to
// *APIError, which carries the status code and parsed error body. Retries
// happen below this layer; an error you observe has already exhausted its
// retry budget.
package notion
