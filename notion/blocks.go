package notion

import (
	"context"
	"net/http"

	"github.com/goliatone/go-notion-client/cache"
)

// GetBlock retrieves a single block by id. Not cached: single blocks are
// cheap to fetch and their ids alias pages, which have their own cache.
func (c *Client) GetBlock(ctx context.Context, blockID string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "blocks/"+blockID, nil, nil)
}

// GetBlockChildren lists the children of a block. Results are cached
// under the composite key "blockID:pageSize", since the listing depends
// on both.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string, pageSize int) (map[string]any, error) {
	size := clampPageSize(pageSize)
	key := cache.ChildrenKey(blockID, size)

	if cached, ok := c.caches.Get(cache.KindBlocks, key); ok {
		return cached, nil
	}

	result, err := c.do(ctx, http.MethodGet, "blocks/"+blockID+"/children", nil, pageSizeQuery(size))
	if err != nil {
		return nil, err
	}

	c.caches.Set(cache.KindBlocks, key, result)
	return result, nil
}

// AppendBlockChildren appends child blocks to a block. On success the
// block id is invalidated with ScopeAll: a block id is also a page id,
// and every cached child listing for it (any page size) is now stale.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []map[string]any) (map[string]any, error) {
	result, err := c.do(ctx, http.MethodPatch, "blocks/"+blockID+"/children", map[string]any{"children": children}, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(blockID, cache.ScopeAll)
	return result, nil
}

// UpdateBlock patches a block's content. The fields map is sent as the
// request body as-is. On success the block id is invalidated with
// ScopeAll.
func (c *Client) UpdateBlock(ctx context.Context, blockID string, fields map[string]any) (map[string]any, error) {
	result, err := c.do(ctx, http.MethodPatch, "blocks/"+blockID, fields, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(blockID, cache.ScopeAll)
	return result, nil
}

// DeleteBlock deletes (archives) a block. On success the block id is
// invalidated with ScopeAll.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) (map[string]any, error) {
	result, err := c.do(ctx, http.MethodDelete, "blocks/"+blockID, nil, nil)
	if err != nil {
		return nil, err
	}

	c.caches.Invalidate(blockID, cache.ScopeAll)
	return result, nil
}
