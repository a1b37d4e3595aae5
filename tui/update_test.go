package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsdeck/chat"
	"newsdeck/client"
	"newsdeck/config"
	"newsdeck/session"
	"newsdeck/types"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	tokens := session.NewTokenStore(filepath.Join(t.TempDir(), "tokens.json"))
	api := client.New("http://127.0.0.1:0", time.Second, tokens)
	store := session.NewStore(api, tokens, nil)
	notices := make(chan Notice, 1)
	responder := chat.NewResponder(nil, nil, nil, nil)
	return New(config.Config{}, api, store, notices, responder)
}

func TestViewShowsSpinnerWhileSessionResolves(t *testing.T) {
	m := newTestModel(t)

	out := m.View()
	if !strings.Contains(out, "restoring session") {
		t.Errorf("view while resolving = %q, want spinner line", out)
	}
	if strings.Contains(out, "Email") {
		t.Error("login form rendered before session resolved")
	}
}

func TestSessionResolvedWithoutUserRoutesToLogin(t *testing.T) {
	m := newTestModel(t)
	// No persisted token, so resolution completes without a request.
	m.session.Initialize(context.Background())

	next, _ := m.Update(sessionResolvedMsg{})
	m = next.(Model)
	if m.page != PageLogin {
		t.Errorf("page = %v, want PageLogin", m.page)
	}
	if !strings.Contains(m.View(), "Email") {
		t.Error("login form not rendered after resolution")
	}
}

func TestStaleFeedResultDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.Feed.Seq = 2
	m.Feed.Loading = true

	stale := feedLoadedMsg{Seq: 1, Articles: []types.Article{{ID: "old"}}}
	next, _ := m.Update(stale)
	m = next.(Model)
	if !m.Feed.Loading || len(m.Feed.Articles) != 0 {
		t.Errorf("stale result applied: loading=%v articles=%v", m.Feed.Loading, m.Feed.Articles)
	}

	current := feedLoadedMsg{Seq: 2, Articles: []types.Article{{ID: "new"}}}
	next, _ = m.Update(current)
	m = next.(Model)
	if m.Feed.Loading || len(m.Feed.Articles) != 1 || m.Feed.Articles[0].ID != "new" {
		t.Errorf("current result not applied: loading=%v articles=%v", m.Feed.Loading, m.Feed.Articles)
	}
}

func TestStaleArticleResultDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.Article.Seq = 5
	m.Article.Loading = true

	details := &types.ArticleDetails{Article: types.Article{ID: "a1", Title: "Old"}}
	next, _ := m.Update(articleLoadedMsg{Seq: 4, Details: details})
	m = next.(Model)
	if m.Article.Details != nil {
		t.Error("stale article details applied")
	}
}

func TestLogoutResetsPageState(t *testing.T) {
	m := newTestModel(t)
	m.page = PageFeed
	m.Feed.Articles = []types.Article{{ID: "a1"}}
	m.Feed.Cursor = 1
	m.Saved.Articles = []types.Article{{ID: "a2"}}

	next, _ := m.Update(logoutDoneMsg{})
	m = next.(Model)
	if m.page != PageLogin {
		t.Errorf("page = %v, want PageLogin", m.page)
	}
	if len(m.Feed.Articles) != 0 || len(m.Saved.Articles) != 0 || m.Feed.Cursor != 0 {
		t.Error("page state survived logout")
	}
}

func TestSavedRemovalUpdatesList(t *testing.T) {
	m := newTestModel(t)
	m.Saved.Articles = []types.Article{{ID: "a1"}, {ID: "a2"}}
	m.Saved.Cursor = 1

	next, _ := m.Update(savedRemovedMsg{ID: "a2"})
	m = next.(Model)
	if len(m.Saved.Articles) != 1 || m.Saved.Articles[0].ID != "a1" {
		t.Errorf("saved list = %v", m.Saved.Articles)
	}
	if m.Saved.Cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.Saved.Cursor)
	}
}
