package notion

import (
	"context"
	"net/http"
)

// GetUsers lists the workspace's users.
func (c *Client) GetUsers(ctx context.Context, pageSize int) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "users", nil, pageSizeQuery(pageSize))
}

// GetUser retrieves a single user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "users/"+userID, nil, nil)
}

// GetBotUser retrieves the bot user of the current integration.
func (c *Client) GetBotUser(ctx context.Context) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "users/me", nil, nil)
}
