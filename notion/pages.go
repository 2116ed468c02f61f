package notion

import (
	"context"
	"net/http"

	"github.com/goliatone/go-notion-client/cache"
)

// ParentType names the kinds of parent a page can be created under.
type ParentType string

const (
	ParentPage       ParentType = "page_id"
	ParentDataSource ParentType = "data_source_id"
	ParentWorkspace  ParentType = "workspace"
)

// CreatePageParams describes a page to create.
type CreatePageParams struct {
	// ParentID is the id of the parent page or data source. Empty means a
	// workspace-level page (public integrations only).
	ParentID string

	// ParentType says how to interpret ParentID. Defaults to ParentPage
	// when a ParentID is given.
	ParentType ParentType

	// Properties of the new page. Under a page parent only "title" is
	// valid; under a data source parent they must match its schema.
	Properties map[string]any

	// Children are initial content blocks. Not allowed together with a
	// template other than {"type": "none"}.
	Children []map[string]any

	// Icon, Cover, Template and Position are optional page attributes,
	// passed through as-is. Position is only valid under a page parent.
	Icon     map[string]any
	Cover    map[string]any
	Template map[string]any
	Position map[string]any
}

// GetPage retrieves a page by id. Results are cached under the page id
// until the page cache TTL lapses or a write invalidates the entry.
func (c *Client) GetPage(ctx context.Context, pageID string) (map[string]any, error) {
	if cached, ok := c.caches.Get(cache.KindPages, pageID); ok {
		return cached, nil
	}

	result, err := c.do(ctx, http.MethodGet, "pages/"+pageID, nil, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Set(cache.KindPages, pageID, result)
	return result, nil
}

// UpdatePage patches page properties. On success the page id is
// invalidated with ScopeAll, since a page id is also a block id.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) (map[string]any, error) {
	result, err := c.do(ctx, http.MethodPatch, "pages/"+pageID, map[string]any{"properties": properties}, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(pageID, cache.ScopeAll)
	return result, nil
}

// CreatePage creates a page under a page, a data source, or the workspace.
// On success the parent id (when given) is invalidated with ScopeAll: its
// cached metadata or child listing may now be stale.
func (c *Client) CreatePage(ctx context.Context, params CreatePageParams) (map[string]any, error) {
	payload := map[string]any{}

	parentType := params.ParentType
	if parentType == "" {
		parentType = ParentPage
	}

	switch {
	case params.ParentID == "" || parentType == ParentWorkspace:
		payload["parent"] = map[string]any{"type": "workspace", "workspace": true}
	case parentType == ParentPage || parentType == ParentDataSource:
		payload["parent"] = map[string]any{
			"type":             string(parentType),
			string(parentType): params.ParentID,
		}
	default:
		return nil, newValidationError(
			"invalid parent type " + string(parentType) + ": must be page_id, data_source_id or workspace")
	}

	if params.Properties != nil {
		payload["properties"] = params.Properties
	}

	if params.Children != nil {
		if templateType, ok := params.Template["type"].(string); ok && templateType != "none" {
			return nil, newValidationError(
				"cannot specify children when using a template: the template overrides page content")
		}
		payload["children"] = params.Children
	}

	if params.Icon != nil {
		payload["icon"] = params.Icon
	}
	if params.Cover != nil {
		payload["cover"] = params.Cover
	}
	if params.Template != nil {
		payload["template"] = params.Template
	}

	if params.Position != nil {
		parent := payload["parent"].(map[string]any)
		if parent["type"] != string(ParentPage) {
			return nil, newValidationError("the position parameter is only valid when the parent is a page")
		}
		payload["position"] = params.Position
	}

	result, err := c.do(ctx, http.MethodPost, "pages", payload, nil)
	if err != nil {
		return nil, err
	}

	if params.ParentID != "" {
		c.caches.Invalidate(params.ParentID, cache.ScopeAll)
	}
	return result, nil
}
