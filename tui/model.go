// Package tui is the bubbletea front end: authentication screens, the
// filterable feed, saved articles, profile/settings, the trending
// dashboard, and the help chat panel. Each page fetches its own data on
// activation; the session store is the only cross-page state.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsdeck/chat"
	"newsdeck/client"
	"newsdeck/config"
	"newsdeck/session"
)

// Page identifies the active view.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageFeed
	PageSaved
	PageArticle
	PageProfile
	PageTrending
	PageChat
)

// Categories is the fixed set users pick interests and filters from.
var Categories = []string{
	"technology", "business", "science", "health",
	"sports", "entertainment", "politics", "world",
}

// notice is the currently displayed transient notification.
type notice struct {
	ID      int
	Level   session.NotifyLevel
	Text    string
	Expires time.Time
}

// Model is the root program model. It owns the route guard: nothing but
// a spinner renders while the session store is loading, and a nil user
// always lands on the login page.
type Model struct {
	cfg     config.Config
	api     *client.Client
	session *session.Store
	notices <-chan Notice

	page   Page
	width  int
	height int

	spin   spinner.Model
	notice *notice

	Login    LoginModel
	Register RegisterModel
	Feed     FeedModel
	Saved    SavedModel
	Article  ArticleModel
	Profile  ProfileModel
	Trending TrendingModel
	Chat     ChatModel
}

// New creates the root model. notices carries the session store's
// transient notifications into the program loop.
func New(cfg config.Config, api *client.Client, store *session.Store, notices <-chan Notice, responder *chat.Responder) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))

	return Model{
		cfg:      cfg,
		api:      api,
		session:  store,
		notices:  notices,
		page:     PageLogin,
		spin:     sp,
		Login:    NewLoginModel(),
		Register: NewRegisterModel(),
		Feed:     NewFeedModel(),
		Saved:    NewSavedModel(),
		Article:  NewArticleModel(),
		Profile:  NewProfileModel(),
		Trending: NewTrendingModel(),
		Chat:     NewChatModel(responder),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		initSession(m.session),
		listenForNotices(m.notices),
		tickCmd(),
	)
}

// loggedIn reports whether the route guard admits protected pages.
func (m Model) loggedIn() bool {
	return !m.session.Loading() && m.session.User() != nil
}

// showNotice replaces the banner and arms its expiry.
func (m *Model) showNotice(level session.NotifyLevel, text string) {
	id := 0
	if m.notice != nil {
		id = m.notice.ID + 1
	}
	m.notice = &notice{
		ID:      id,
		Level:   level,
		Text:    text,
		Expires: time.Now().Add(4 * time.Second),
	}
}

// switchTo activates a protected page and kicks off its fetch.
func (m Model) switchTo(page Page) (Model, tea.Cmd) {
	m.page = page
	switch page {
	case PageFeed:
		m.Feed.Seq++
		m.Feed.Loading = true
		return m, m.fetchFeed(m.Feed.Seq)
	case PageSaved:
		m.Saved.Seq++
		m.Saved.Loading = true
		return m, m.fetchSaved(m.Saved.Seq)
	case PageTrending:
		m.Trending.Seq++
		m.Trending.Loading = true
		return m, m.fetchTrending(m.Trending.Seq)
	case PageProfile:
		m.Profile.Seq++
		m.Profile.Loading = true
		m.Profile.Mode = ProfileViewing
		return m, m.fetchStats(m.Profile.Seq)
	case PageChat:
		return m, nil
	}
	return m, nil
}
