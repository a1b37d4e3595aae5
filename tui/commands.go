package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/session"
	"newsdeck/types"
)

// initSession resolves the persisted session exactly once at startup.
func initSession(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Initialize(context.Background())
		return sessionResolvedMsg{}
	}
}

// listenForNotices forwards one store notification into the program;
// Update re-issues it after each delivery.
func listenForNotices(ch <-chan Notice) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func loginCmd(store *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{Err: store.Login(context.Background(), email, password)}
	}
}

func registerCmd(store *session.Store, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{Err: store.Register(context.Background(), name, email, password)}
	}
}

func logoutCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

func (m Model) fetchFeed(seq int) tea.Cmd {
	filters := m.Feed.Filters
	return func() tea.Msg {
		articles, err := m.api.Feed(context.Background(), filters)
		return feedLoadedMsg{Seq: seq, Articles: articles, Err: err}
	}
}

func (m Model) fetchSaved(seq int) tea.Cmd {
	return func() tea.Msg {
		articles, err := m.api.Saved(context.Background())
		return savedLoadedMsg{Seq: seq, Articles: articles, Err: err}
	}
}

func (m Model) fetchArticle(seq int, id string) tea.Cmd {
	return func() tea.Msg {
		details, err := m.api.Article(context.Background(), id)
		return articleLoadedMsg{Seq: seq, Details: details, Err: err}
	}
}

func (m Model) fetchTrending(seq int) tea.Cmd {
	return func() tea.Msg {
		data, err := m.api.Trending(context.Background())
		return trendingLoadedMsg{Seq: seq, Data: data, Err: err}
	}
}

func (m Model) fetchStats(seq int) tea.Cmd {
	return func() tea.Msg {
		stats, err := m.api.Stats(context.Background())
		return statsLoadedMsg{Seq: seq, Stats: stats, Err: err}
	}
}

func (m Model) saveArticle(article types.Article) tea.Cmd {
	return func() tea.Msg {
		err := m.api.Save(context.Background(), article)
		return articleSavedMsg{ID: article.ID, Saved: true, Err: err}
	}
}

func (m Model) unsaveArticle(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.api.Unsave(context.Background(), id)
		return articleSavedMsg{ID: id, Saved: false, Err: err}
	}
}

func (m Model) removeSaved(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.api.RemoveSaved(context.Background(), id)
		return savedRemovedMsg{ID: id, Err: err}
	}
}

func (m Model) submitProfile(req types.ProfileUpdateRequest) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{Err: m.session.UpdateProfile(context.Background(), req)}
	}
}

func (m Model) submitInterests(interests []string) tea.Cmd {
	return func() tea.Msg {
		return interestsSavedMsg{Err: m.session.UpdateInterests(context.Background(), interests)}
	}
}

// scheduleBotReply delivers the canned answer after the fixed delay.
func scheduleBotReply(input string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return botReplyDueMsg{Input: input}
	})
}

// tickCmd drives the notice-expiry timer.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg{Time: t}
	})
}
