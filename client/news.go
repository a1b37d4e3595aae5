package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"newsdeck/types"
)

// FeedFilters is the feed page's filter state. Zero value means the
// plain personalized feed.
type FeedFilters struct {
	Search     string
	Categories []string
}

func (f FeedFilters) empty() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Categories) == 0
}

// Feed returns articles for the given filters. With no filters it calls
// the personalized feed endpoint with no query parameters; any search
// text or category selection routes to the search endpoint instead.
func (c *Client) Feed(ctx context.Context, filters FeedFilters) ([]types.Article, error) {
	var resp types.FeedResponse

	if filters.empty() {
		if err := c.doJSON(ctx, http.MethodGet, "/news/feed", nil, nil, &resp, "Failed to load feed"); err != nil {
			return nil, err
		}
		return resp.Articles, nil
	}

	query := url.Values{}
	if s := strings.TrimSpace(filters.Search); s != "" {
		query.Set("q", s)
	}
	if len(filters.Categories) > 0 {
		query.Set("categories", strings.Join(filters.Categories, ","))
	}
	if err := c.doJSON(ctx, http.MethodGet, "/news/search", query, nil, &resp, "Search failed"); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// Article fetches a single article with its saved flag and related list.
func (c *Client) Article(ctx context.Context, id string) (*types.ArticleDetails, error) {
	var resp types.ArticleDetails
	if err := c.doJSON(ctx, http.MethodGet, "/news/articles/"+url.PathEscape(id), nil, nil, &resp, "Failed to load article"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Save stores the full article server-side for the current user.
func (c *Client) Save(ctx context.Context, article types.Article) error {
	return c.doJSON(ctx, http.MethodPost, "/news/save", nil, article, nil, "Failed to save article")
}

// Unsave removes a saved article by ID.
func (c *Client) Unsave(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/news/save/"+url.PathEscape(id), nil, nil, nil, "Failed to remove article")
}

// Saved lists the user's saved articles.
func (c *Client) Saved(ctx context.Context) ([]types.Article, error) {
	var resp types.SavedResponse
	if err := c.doJSON(ctx, http.MethodGet, "/news/saved", nil, nil, &resp, "Failed to load saved articles"); err != nil {
		return nil, err
	}
	return resp.SavedArticles, nil
}

// RemoveSaved deletes from the saved list. The API exposes this under a
// second path alongside Unsave; both are kept to match the server.
func (c *Client) RemoveSaved(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/news/saved/"+url.PathEscape(id), nil, nil, nil, "Failed to remove article")
}
