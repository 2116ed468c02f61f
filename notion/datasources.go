package notion

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goliatone/go-notion-client/cache"
)

// QueryParams filters and paginates a data source query.
type QueryParams struct {
	// Filter is a Notion filter object ("and"/"or" conditions).
	Filter map[string]any

	// Sorts is a list of sort objects.
	Sorts []map[string]any

	// PageSize bounds the result count; clamped to 100, zero means 100.
	PageSize int

	// FilterProperties limits which properties are included per result.
	FilterProperties []string
}

// UpdateDataSourceParams describes a data source update. Nil fields are
// omitted from the request.
type UpdateDataSourceParams struct {
	// Properties holds schema updates; a nil entry value removes the
	// property.
	Properties map[string]any

	// Title is a rich text array.
	Title []map[string]any

	// Icon is an icon object.
	Icon map[string]any

	// InTrash moves the data source to (true) or out of (false) the trash.
	InTrash *bool

	// Parent moves the data source under a different database, e.g.
	// {"type": "database_id", "database_id": "..."}.
	Parent map[string]any
}

// GetDataSource retrieves a data source (table) schema by id, cached
// under the data source id.
func (c *Client) GetDataSource(ctx context.Context, dataSourceID string) (map[string]any, error) {
	if cached, ok := c.caches.Get(cache.KindDataSources, dataSourceID); ok {
		return cached, nil
	}

	result, err := c.do(ctx, http.MethodGet, "data_sources/"+dataSourceID, nil, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Set(cache.KindDataSources, dataSourceID, result)
	return result, nil
}

// QueryDataSource queries a data source for entries. Query results are
// not cached: the result space (filters, sorts, pagination cursors) is
// unbounded and row data churns faster than any schema.
func (c *Client) QueryDataSource(ctx context.Context, dataSourceID string, params QueryParams) (map[string]any, error) {
	payload := map[string]any{"page_size": clampPageSize(params.PageSize)}
	if params.Filter != nil {
		payload["filter"] = params.Filter
	}
	if len(params.Sorts) > 0 {
		payload["sorts"] = params.Sorts
	}

	var query url.Values
	if len(params.FilterProperties) > 0 {
		query = url.Values{"filter_properties[]": params.FilterProperties}
	}

	return c.do(ctx, http.MethodPost, "data_sources/"+dataSourceID+"/query", payload, query)
}

// GetDataSourceTemplates lists the templates of a data source.
func (c *Client) GetDataSourceTemplates(ctx context.Context, dataSourceID string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "data_sources/"+dataSourceID+"/templates", nil, nil)
}

// UpdateDataSource patches a data source's schema, title, icon, trash
// state or parent. On success the data source id is invalidated with
// ScopeDataSource; a data source id does not alias pages or blocks, so
// the narrow scope is safe. When the update moves the data source to a
// different database, that database's cached metadata is invalidated too.
func (c *Client) UpdateDataSource(ctx context.Context, dataSourceID string, params UpdateDataSourceParams) (map[string]any, error) {
	payload := map[string]any{}
	if params.Properties != nil {
		payload["properties"] = params.Properties
	}
	if params.Title != nil {
		payload["title"] = params.Title
	}
	if params.Icon != nil {
		payload["icon"] = params.Icon
	}
	if params.InTrash != nil {
		payload["in_trash"] = *params.InTrash
	}
	if params.Parent != nil {
		payload["parent"] = params.Parent
	}

	result, err := c.do(ctx, http.MethodPatch, "data_sources/"+dataSourceID, payload, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(dataSourceID, cache.ScopeDataSource)
	if databaseID, ok := params.Parent["database_id"].(string); ok && databaseID != "" {
		c.caches.Invalidate(databaseID, cache.ScopeDatabase)
	}
	return result, nil
}

// GetDataSourceEntries returns every entry of a data source's first
// result page. Convenience wrapper over QueryDataSource.
func (c *Client) GetDataSourceEntries(ctx context.Context, dataSourceID string) ([]map[string]any, error) {
	result, err := c.QueryDataSource(ctx, dataSourceID, QueryParams{})
	if err != nil {
		return nil, err
	}
	return resultsOf(result), nil
}

// pageSizeQuery builds the page_size query parameter listings share.
func pageSizeQuery(pageSize int) url.Values {
	return url.Values{"page_size": []string{strconv.Itoa(clampPageSize(pageSize))}}
}
