// Package client is a thin HTTP wrapper for the aggregator REST API.
// It attaches the access token to outgoing requests and normalizes the
// API's assorted error payload shapes into a single displayable message.
package client

import (
	"net/http"
	"time"
)

// TokenSource supplies the current access token, or "" when logged out.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the aggregator API. Every call is a single request:
// no retries, no de-duplication, one shared timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates an API client. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
