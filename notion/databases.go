package notion

import (
	"context"
	"net/http"

	"github.com/goliatone/go-notion-client/cache"
)

// GetDatabase retrieves database metadata by id, cached under the
// database id.
//
// A database is a container of data sources (tables); this call returns
// only its metadata (title, description, icon, data source listing). Use
// GetDataSource for a table's schema and QueryDataSource for its rows.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (map[string]any, error) {
	if cached, ok := c.caches.Get(cache.KindDatabases, databaseID); ok {
		return cached, nil
	}

	result, err := c.do(ctx, http.MethodGet, "databases/"+databaseID, nil, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Set(cache.KindDatabases, databaseID, result)
	return result, nil
}

// CreateDatabase creates a database with an initial data source under a
// parent page. The title, when given, is a rich text array.
//
// On success the parent page id is invalidated with ScopeAll rather than a
// narrower scope: the parent id is also a block id, and its cached child
// listing is now stale.
func (c *Client) CreateDatabase(ctx context.Context, parentPageID string, initialProperties map[string]any, title []map[string]any) (map[string]any, error) {
	payload := map[string]any{
		"parent":              map[string]any{"type": "page_id", "page_id": parentPageID},
		"initial_data_source": map[string]any{"properties": initialProperties},
	}
	if len(title) > 0 {
		payload["title"] = title
	}

	result, err := c.do(ctx, http.MethodPost, "databases", payload, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(parentPageID, cache.ScopeAll)
	return result, nil
}

// UpdateDatabase patches database metadata. Empty arguments are omitted
// from the request. On success the database id is invalidated with
// ScopeAll.
func (c *Client) UpdateDatabase(ctx context.Context, databaseID string, title string, properties map[string]any) (map[string]any, error) {
	payload := map[string]any{}
	if title != "" {
		payload["title"] = []map[string]any{
			{"text": map[string]any{"content": title}},
		}
	}
	if properties != nil {
		payload["properties"] = properties
	}

	result, err := c.do(ctx, http.MethodPatch, "databases/"+databaseID, payload, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(databaseID, cache.ScopeAll)
	return result, nil
}
