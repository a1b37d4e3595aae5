package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsdeck/types"
)

func TestFeedEndpointRouting(t *testing.T) {
	cases := []struct {
		name      string
		filters   FeedFilters
		wantPath  string
		wantQuery map[string]string
	}{
		{
			name:      "no filters hits feed with no query",
			filters:   FeedFilters{},
			wantPath:  "/news/feed",
			wantQuery: map[string]string{},
		},
		{
			name:      "search routes to search endpoint",
			filters:   FeedFilters{Search: "ai"},
			wantPath:  "/news/search",
			wantQuery: map[string]string{"q": "ai"},
		},
		{
			name:      "categories route to search endpoint",
			filters:   FeedFilters{Categories: []string{"tech"}},
			wantPath:  "/news/search",
			wantQuery: map[string]string{"categories": "tech"},
		},
		{
			name:      "both combine on search endpoint",
			filters:   FeedFilters{Search: "go", Categories: []string{"tech", "science"}},
			wantPath:  "/news/search",
			wantQuery: map[string]string{"q": "go", "categories": "tech,science"},
		},
		{
			name:      "whitespace search is treated as empty",
			filters:   FeedFilters{Search: "   "},
			wantPath:  "/news/feed",
			wantQuery: map[string]string{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var gotPath string
			var gotQuery map[string][]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				json.NewEncoder(w).Encode(types.FeedResponse{Articles: []types.Article{{ID: "a1", Title: "t"}}})
			}))
			defer srv.Close()

			api := New(srv.URL, 5*time.Second, nil)
			articles, err := api.Feed(context.Background(), c.filters)
			if err != nil {
				t.Fatalf("Feed: %v", err)
			}
			if len(articles) != 1 {
				t.Fatalf("expected 1 article, got %d", len(articles))
			}

			if gotPath != c.wantPath {
				t.Fatalf("path = %q; want %q", gotPath, c.wantPath)
			}
			if len(gotQuery) != len(c.wantQuery) {
				t.Fatalf("query = %v; want %v", gotQuery, c.wantQuery)
			}
			for k, want := range c.wantQuery {
				if len(gotQuery[k]) != 1 || gotQuery[k][0] != want {
					t.Fatalf("query[%s] = %v; want %q", k, gotQuery[k], want)
				}
			}
		})
	}
}

func TestArticleFetchesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/articles/abc123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(types.ArticleDetails{
			Article: types.Article{ID: "abc123", Title: "Go 1.24 released"},
			Saved:   true,
			Related: []types.Article{{ID: "r1"}},
		})
	}))
	defer srv.Close()

	api := New(srv.URL, 5*time.Second, nil)
	details, err := api.Article(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if !details.Saved || details.Title != "Go 1.24 released" || len(details.Related) != 1 {
		t.Fatalf("unexpected details %+v", details)
	}
}

func TestSavedListAndRemoval(t *testing.T) {
	var removedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(types.SavedResponse{SavedArticles: []types.Article{{ID: "s1"}, {ID: "s2"}}})
		case http.MethodDelete:
			removedPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	api := New(srv.URL, 5*time.Second, nil)
	saved, err := api.Saved(context.Background())
	if err != nil {
		t.Fatalf("Saved: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved articles, got %d", len(saved))
	}

	if err := api.RemoveSaved(context.Background(), "s1"); err != nil {
		t.Fatalf("RemoveSaved: %v", err)
	}
	if removedPath != "/news/saved/s1" {
		t.Fatalf("unexpected delete path %q", removedPath)
	}
}
