package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"newsdeck/stubserver/store"
	"newsdeck/types"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewServer(s).NewRouter(), s
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v (body: %s)", method, path, err, w.Body.String())
		}
	}
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) types.AuthResponse {
	t.Helper()
	var resp types.AuthResponse
	w := doRequest(t, r, http.MethodPost, "/auth/register", "",
		types.RegisterRequest{Name: "Tester", Email: email, Password: "longenough"}, &resp)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}
	if resp.Token == "" || resp.User == nil {
		t.Fatalf("incomplete auth response: %+v", resp)
	}
	return resp
}

func TestRegisterLoginProfile(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")

	var login types.AuthResponse
	w := doRequest(t, r, http.MethodPost, "/auth/login", "",
		types.LoginRequest{Email: "reader@example.com", Password: "longenough"}, &login)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	if login.Token == auth.Token {
		t.Error("login reused the register token")
	}

	var profile types.ProfileResponse
	w = doRequest(t, r, http.MethodGet, "/auth/profile", login.Token, nil, &profile)
	if w.Code != http.StatusOK {
		t.Fatalf("profile status = %d", w.Code)
	}
	if profile.User == nil || profile.User.Email != "reader@example.com" {
		t.Errorf("unexpected profile: %+v", profile.User)
	}
}

func TestLoginFailureUsesStructuredError(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "reader@example.com")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "",
		types.LoginRequest{Email: "reader@example.com", Password: "wrongpass"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Message != "Invalid email or password" {
		t.Errorf("error message = %q", body.Error.Message)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "reader@example.com")

	w := doRequest(t, r, http.MethodPost, "/auth/register", "",
		types.RegisterRequest{Name: "Again", Email: "reader@example.com", Password: "longenough"}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/news/feed", "/auth/profile", "/stats/trending"} {
		w := doRequest(t, r, http.MethodGet, path, "", nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, w.Code)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/news/feed", "bogus-token", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bogus token: status = %d, want 401", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")

	w := doRequest(t, r, http.MethodPost, "/auth/logout", auth.Token, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	w = doRequest(t, r, http.MethodGet, "/auth/profile", auth.Token, nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("profile after logout: status = %d, want 401", w.Code)
	}
}

func TestUpdateProfileAndInterests(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")

	name := "Renamed"
	var profile types.ProfileResponse
	w := doRequest(t, r, http.MethodPut, "/auth/profile", auth.Token,
		types.ProfileUpdateRequest{Name: &name}, &profile)
	if w.Code != http.StatusOK {
		t.Fatalf("update profile status = %d", w.Code)
	}
	if profile.User.Name != "Renamed" {
		t.Errorf("name = %q", profile.User.Name)
	}

	w = doRequest(t, r, http.MethodPut, "/auth/interests", auth.Token,
		types.InterestsUpdateRequest{Interests: []string{"science", "health"}}, &profile)
	if w.Code != http.StatusOK {
		t.Fatalf("update interests status = %d", w.Code)
	}
	if len(profile.User.Interests) != 2 {
		t.Errorf("interests = %v", profile.User.Interests)
	}
	// Name change from the previous call survives.
	if profile.User.Name != "Renamed" {
		t.Errorf("interests update dropped name: %q", profile.User.Name)
	}
}

func seedArticles(t *testing.T, s *store.Store) {
	t.Helper()
	now := time.Now().UTC()
	articles := []types.Article{
		{ID: "a1", Title: "Go Generics Deep Dive", Description: "type parameters", URL: "https://example.com/a1", Source: "Tech Wire", Categories: []string{"technology"}, Tags: []string{"go"}, PublishedAt: now},
		{ID: "a2", Title: "Market Rally Continues", Description: "stocks climb", URL: "https://example.com/a2", Source: "Biz Daily", Categories: []string{"business"}, Tags: []string{"stocks"}, PublishedAt: now.Add(-time.Hour)},
		{ID: "a3", Title: "New Exoplanet Found", Description: "astronomy news", URL: "https://example.com/a3", Source: "Science Desk", Categories: []string{"science"}, Tags: []string{"space"}, PublishedAt: now.Add(-2 * time.Hour)},
	}
	for _, a := range articles {
		if err := s.UpsertArticle(a); err != nil {
			t.Fatalf("seed article %s: %v", a.ID, err)
		}
	}
}

func TestFeedAndSearch(t *testing.T) {
	r, s := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")
	seedArticles(t, s)

	var feed types.FeedResponse
	w := doRequest(t, r, http.MethodGet, "/news/feed", auth.Token, nil, &feed)
	if w.Code != http.StatusOK {
		t.Fatalf("feed status = %d", w.Code)
	}
	if len(feed.Articles) != 3 {
		t.Fatalf("feed size = %d, want 3", len(feed.Articles))
	}
	if feed.Articles[0].ID != "a1" {
		t.Errorf("feed not newest-first: %s", feed.Articles[0].ID)
	}

	var results types.FeedResponse
	w = doRequest(t, r, http.MethodGet, "/news/search?q=exoplanet", auth.Token, nil, &results)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	if len(results.Articles) != 1 || results.Articles[0].ID != "a3" {
		t.Errorf("search results = %v", results.Articles)
	}

	w = doRequest(t, r, http.MethodGet, "/news/search?categories=business,science", auth.Token, nil, &results)
	if w.Code != http.StatusOK {
		t.Fatalf("category search status = %d", w.Code)
	}
	if len(results.Articles) != 2 {
		t.Errorf("category filter returned %d articles, want 2", len(results.Articles))
	}
}

func TestFeedRanksInterestsFirst(t *testing.T) {
	r, s := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")
	seedArticles(t, s)

	var profile types.ProfileResponse
	doRequest(t, r, http.MethodPut, "/auth/interests", auth.Token,
		types.InterestsUpdateRequest{Interests: []string{"science"}}, &profile)

	var feed types.FeedResponse
	w := doRequest(t, r, http.MethodGet, "/news/feed", auth.Token, nil, &feed)
	if w.Code != http.StatusOK {
		t.Fatalf("feed status = %d", w.Code)
	}
	if len(feed.Articles) == 0 || feed.Articles[0].ID != "a3" {
		t.Errorf("science article not ranked first: %v", feed.Articles)
	}
}

func TestArticleDetailsAndSaveFlow(t *testing.T) {
	r, s := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")
	seedArticles(t, s)

	var details types.ArticleDetails
	w := doRequest(t, r, http.MethodGet, "/news/articles/a1", auth.Token, nil, &details)
	if w.Code != http.StatusOK {
		t.Fatalf("article status = %d", w.Code)
	}
	if details.ID != "a1" || details.Saved {
		t.Errorf("unexpected details: id=%s saved=%v", details.ID, details.Saved)
	}

	w = doRequest(t, r, http.MethodPost, "/news/save", auth.Token, details.Article, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
	}

	doRequest(t, r, http.MethodGet, "/news/articles/a1", auth.Token, nil, &details)
	if !details.Saved {
		t.Error("details.Saved = false after save")
	}

	var saved types.SavedResponse
	w = doRequest(t, r, http.MethodGet, "/news/saved", auth.Token, nil, &saved)
	if w.Code != http.StatusOK {
		t.Fatalf("saved status = %d", w.Code)
	}
	if len(saved.SavedArticles) != 1 || saved.SavedArticles[0].ID != "a1" {
		t.Errorf("saved list = %v", saved.SavedArticles)
	}

	w = doRequest(t, r, http.MethodDelete, "/news/saved/a1", auth.Token, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove status = %d", w.Code)
	}
	doRequest(t, r, http.MethodGet, "/news/saved", auth.Token, nil, &saved)
	if len(saved.SavedArticles) != 0 {
		t.Errorf("saved list after removal = %v", saved.SavedArticles)
	}
}

func TestMissingArticleUsesFlatMessage(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")

	w := doRequest(t, r, http.MethodGet, "/news/articles/nope", auth.Token, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Article not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestTrendingAggregation(t *testing.T) {
	r, s := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")
	seedArticles(t, s)

	var trending types.TrendingResponse
	w := doRequest(t, r, http.MethodGet, "/stats/trending", auth.Token, nil, &trending)
	if w.Code != http.StatusOK {
		t.Fatalf("trending status = %d", w.Code)
	}
	if trending.TotalArticles != 3 {
		t.Errorf("TotalArticles = %d, want 3", trending.TotalArticles)
	}
	if trending.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", trending.TotalUsers)
	}
	if len(trending.Categories) != 3 {
		t.Errorf("categories = %v", trending.Categories)
	}
	if len(trending.TrendingToday) == 0 {
		t.Error("TrendingToday empty despite recent articles")
	}
}

func TestStatsReflectSavedArticles(t *testing.T) {
	r, s := newTestRouter(t)
	auth := registerUser(t, r, "reader@example.com")
	seedArticles(t, s)

	a, err := s.ArticleByID("a1")
	if err != nil {
		t.Fatalf("ArticleByID: %v", err)
	}
	doRequest(t, r, http.MethodPost, "/news/save", auth.Token, a, nil)

	var stats types.UserStats
	w := doRequest(t, r, http.MethodGet, "/auth/stats", auth.Token, nil, &stats)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	if stats.SavedArticles != 1 {
		t.Errorf("SavedArticles = %d, want 1", stats.SavedArticles)
	}
	if len(stats.Categories) != 1 || stats.Categories[0] != "technology" {
		t.Errorf("Categories = %v", stats.Categories)
	}
	if stats.JoinDate == "" {
		t.Error("JoinDate empty")
	}
}
