package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"structured error.message", `{"error":{"message":"X"}}`, "X"},
		{"flat message", `{"message":"X"}`, "X"},
		{"flat error string", `{"error":"X"}`, "X"},
		{"empty object", `{}`, "Something went wrong"},
		{"not json", `<html>502</html>`, "Something went wrong"},
		{"message wins over flat error", `{"message":"X","error":"Y"}`, "X"},
		{"structured wins over message", `{"error":{"message":"X"},"message":"Y"}`, "X"},
		{"structured without message falls through", `{"error":{"code":42},"message":"X"}`, "X"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractErrorMessage([]byte(c.body), "Something went wrong")
			if got != c.want {
				t.Fatalf("ExtractErrorMessage(%q) = %q; want %q", c.body, got, c.want)
			}
		})
	}
}

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestDoJSONAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken("abc123"))
	if err := c.doJSON(context.Background(), http.MethodGet, "/auth/profile", nil, nil, nil, "fail"); err != nil {
		t.Fatalf("doJSON: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestDoJSONOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, staticToken(""))
	if err := c.doJSON(context.Background(), http.MethodGet, "/news/feed", nil, nil, nil, "fail"); err != nil {
		t.Fatalf("doJSON: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestDoJSONNormalizesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already taken"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	err := c.doJSON(context.Background(), http.MethodPost, "/auth/register", nil, map[string]string{}, nil, "Registration failed")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "email already taken" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestDoJSONTransportFailureUsesFallback(t *testing.T) {
	// Point at a closed server to force a transport error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, 1*time.Second, nil)
	err := c.doJSON(context.Background(), http.MethodGet, "/news/feed", nil, nil, nil, "Failed to load feed")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Failed to load feed" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", apiErr.StatusCode)
	}
}
