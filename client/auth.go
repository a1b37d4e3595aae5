package client

import (
	"context"
	"net/http"

	"newsdeck/types"
)

// Login exchanges credentials for a token pair and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	req := types.LoginRequest{Email: email, Password: password}
	var resp types.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp, "Login failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account; the response shape matches Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error) {
	req := types.RegisterRequest{Name: name, Email: email, Password: password}
	var resp types.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &resp, "Registration failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the session server-side. The body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, "Logout failed")
}

// Profile fetches the current user for the presented access token.
func (c *Client) Profile(ctx context.Context) (*types.User, error) {
	var resp types.ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp, "Failed to load profile"); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateProfile submits partial profile changes and returns the server's
// updated representation, which replaces the local user wholesale.
func (c *Client) UpdateProfile(ctx context.Context, req types.ProfileUpdateRequest) (*types.User, error) {
	var resp types.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/auth/profile", nil, req, &resp, "Failed to update profile"); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateInterests replaces the user's interest list via the dedicated
// interests endpoint.
func (c *Client) UpdateInterests(ctx context.Context, interests []string) (*types.User, error) {
	req := types.InterestsUpdateRequest{Interests: interests}
	var resp types.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/auth/interests", nil, req, &resp, "Failed to update interests"); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Stats fetches the profile statistics shown on the profile page.
func (c *Client) Stats(ctx context.Context) (*types.UserStats, error) {
	var resp types.UserStats
	if err := c.doJSON(ctx, http.MethodGet, "/auth/stats", nil, nil, &resp, "Failed to load stats"); err != nil {
		return nil, err
	}
	return &resp, nil
}
