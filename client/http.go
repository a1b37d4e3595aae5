package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIError is a request failure carrying the normalized message for the
// UI and the HTTP status (0 for transport failures).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// doJSON performs a JSON request against the API. It marshals payload
// (nil for no body), attaches the bearer token when one is available,
// and decodes the response into result (nil to discard the body).
// Non-2xx responses become an *APIError whose message is extracted from
// the body via the fallback chain, defaulting to fallback.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, result interface{}, fallback string) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fallback}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    ExtractErrorMessage(bodyBytes, fallback),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ExtractErrorMessage maps an error response body to one human-readable
// string by checking, in order: a structured error.message field, a flat
// message field, a flat error string field, then the fallback.
func ExtractErrorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	if len(payload.Error) > 0 {
		var structured struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &structured); err == nil && structured.Message != "" {
			return structured.Message
		}
	}

	if payload.Message != "" {
		return payload.Message
	}

	if len(payload.Error) > 0 {
		var flat string
		if err := json.Unmarshal(payload.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}

	return fallback
}
