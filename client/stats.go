package client

import (
	"context"
	"net/http"

	"newsdeck/types"
)

// Trending fetches the site-wide trending dashboard data.
func (c *Client) Trending(ctx context.Context) (*types.TrendingResponse, error) {
	var resp types.TrendingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/stats/trending", nil, nil, &resp, "Failed to load trending data"); err != nil {
		return nil, err
	}
	return &resp, nil
}
