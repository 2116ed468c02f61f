package notion

import (
	"context"
	"net/http"
)

// Search queries pages and databases by title. filterType may be "page"
// or "database" to restrict the object kind, or empty for both. Search
// results are not cached: the query space is unbounded and results span
// resource kinds.
func (c *Client) Search(ctx context.Context, query, filterType string, pageSize int) (map[string]any, error) {
	payload := map[string]any{"page_size": clampPageSize(pageSize)}
	if query != "" {
		payload["query"] = query
	}
	if filterType != "" {
		payload["filter"] = map[string]any{"value": filterType, "property": "object"}
	}

	return c.do(ctx, http.MethodPost, "search", payload, nil)
}

// GetAllDatabases returns every database the integration can access.
func (c *Client) GetAllDatabases(ctx context.Context) ([]map[string]any, error) {
	result, err := c.Search(ctx, "", "database", 0)
	if err != nil {
		return nil, err
	}
	return resultsOf(result), nil
}

// GetAllPages returns every page the integration can access.
func (c *Client) GetAllPages(ctx context.Context) ([]map[string]any, error) {
	result, err := c.Search(ctx, "", "page", 0)
	if err != nil {
		return nil, err
	}
	return resultsOf(result), nil
}
