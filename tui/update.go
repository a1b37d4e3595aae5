package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Article.Viewport.Width = msg.Width - 4
		if msg.Height > 8 {
			m.Article.Viewport.Height = msg.Height - 8
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tickMsg:
		if m.notice != nil && time.Now().After(m.notice.Expires) {
			m.notice = nil
		}
		return m, tickCmd()

	case sessionResolvedMsg:
		return m.handleSessionResolved()
	case Notice:
		m.showNotice(msg.Level, msg.Text)
		return m, listenForNotices(m.notices)
	case authDoneMsg:
		return m.handleAuthDone(msg)
	case logoutDoneMsg:
		return m.handleLogoutDone()

	case feedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case savedLoadedMsg:
		return m.handleSavedLoaded(msg)
	case articleLoadedMsg:
		return m.handleArticleLoaded(msg)
	case trendingLoadedMsg:
		return m.handleTrendingLoaded(msg)
	case statsLoadedMsg:
		return m.handleStatsLoaded(msg)
	case articleSavedMsg:
		return m.handleArticleSaved(msg)
	case savedRemovedMsg:
		return m.handleSavedRemoved(msg)
	case profileSavedMsg:
		return m.handleProfileSaved(msg.Err)
	case interestsSavedMsg:
		return m.handleProfileSaved(msg.Err)
	case botReplyDueMsg:
		m.Chat.Responder.Respond(msg.Input)
		m.Chat.Typing = false
		return m, nil
	}

	return m.dispatchToPage(msg)
}

// textEntryActive reports whether the active page is capturing free
// typing, which suppresses the global shortcut keys.
func (m Model) textEntryActive() bool {
	switch m.page {
	case PageLogin, PageRegister:
		return true
	case PageFeed:
		return m.Feed.Searching
	case PageChat:
		return m.Chat.Focused
	case PageProfile:
		return m.Profile.Mode == ProfileEditName || m.Profile.Mode == ProfileEditAvatar
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route guard: nothing is interactive until the session resolves.
	if m.session.Loading() {
		return m, nil
	}

	if m.loggedIn() && !m.textEntryActive() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1":
			return m.switchTo(PageFeed)
		case "2":
			return m.switchTo(PageSaved)
		case "3":
			return m.switchTo(PageTrending)
		case "4":
			return m.switchTo(PageProfile)
		case "5":
			return m.switchTo(PageChat)
		case "ctrl+l":
			return m, logoutCmd(m.session)
		}
	}

	return m.dispatchToPage(msg)
}

func (m Model) dispatchToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.page {
	case PageLogin:
		return m.updateLogin(msg)
	case PageRegister:
		return m.updateRegister(msg)
	case PageFeed:
		return m.updateFeed(msg)
	case PageSaved:
		return m.updateSaved(msg)
	case PageArticle:
		return m.updateArticle(msg)
	case PageProfile:
		return m.updateProfile(msg)
	case PageTrending:
		return m.updateTrending(msg)
	case PageChat:
		return m.updateChat(msg)
	}
	return m, nil
}

func (m Model) handleSessionResolved() (tea.Model, tea.Cmd) {
	if m.session.User() != nil {
		return m.switchTo(PageFeed)
	}
	m.page = PageLogin
	return m, nil
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.Login.Pending = false
	m.Register.Pending = false
	if msg.Err != nil {
		// The store already emitted the normalized error notice and
		// left prior state untouched.
		return m, nil
	}
	m.Login.Password.SetValue("")
	m.Register.Password.SetValue("")
	return m.switchTo(PageFeed)
}

func (m Model) handleLogoutDone() (tea.Model, tea.Cmd) {
	// Drop all per-page state from the previous identity.
	m.Feed = NewFeedModel()
	m.Saved = NewSavedModel()
	m.Article = NewArticleModel()
	m.Profile = NewProfileModel()
	m.Trending = NewTrendingModel()
	m.Login = NewLoginModel()
	m.page = PageLogin
	return m, nil
}

func (m Model) handleFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Feed.Seq {
		return m, nil // stale response from a superseded fetch
	}
	m.Feed.Loading = false
	if msg.Err != nil {
		m.Feed.Err = msg.Err.Error()
		return m, nil
	}
	m.Feed.Err = ""
	m.Feed.Articles = msg.Articles
	if m.Feed.Cursor >= len(msg.Articles) {
		m.Feed.Cursor = 0
	}
	return m, nil
}

func (m Model) handleSavedLoaded(msg savedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Saved.Seq {
		return m, nil
	}
	m.Saved.Loading = false
	if msg.Err != nil {
		m.Saved.Err = msg.Err.Error()
		return m, nil
	}
	m.Saved.Err = ""
	m.Saved.Articles = msg.Articles
	if m.Saved.Cursor >= len(msg.Articles) {
		m.Saved.Cursor = 0
	}
	return m, nil
}

func (m Model) handleArticleLoaded(msg articleLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Article.Seq {
		return m, nil
	}
	if msg.Err != nil {
		m.Article.Loading = false
		m.Article.Err = msg.Err.Error()
		return m, nil
	}
	m.Article.Err = ""
	m.Article.setDetails(msg.Details, m.width-4, m.height)
	return m, nil
}

func (m Model) handleTrendingLoaded(msg trendingLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Trending.Seq {
		return m, nil
	}
	m.Trending.Loading = false
	if msg.Err != nil {
		m.Trending.Err = msg.Err.Error()
		return m, nil
	}
	m.Trending.Err = ""
	m.Trending.Data = msg.Data
	return m, nil
}

func (m Model) handleStatsLoaded(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Profile.Seq {
		return m, nil
	}
	m.Profile.Loading = false
	if msg.Err != nil {
		m.Profile.Err = msg.Err.Error()
		return m, nil
	}
	m.Profile.Err = ""
	m.Profile.Stats = msg.Stats
	return m, nil
}

func (m Model) handleArticleSaved(msg articleSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.showNotice("error", msg.Err.Error())
		return m, nil
	}
	m.Feed.SavedIDs[msg.ID] = msg.Saved
	if m.Article.Details != nil && m.Article.Details.ID == msg.ID {
		m.Article.Details.Saved = msg.Saved
	}
	if msg.Saved {
		m.showNotice("success", "Article saved")
	} else {
		m.showNotice("success", "Article removed from saved")
	}
	return m, nil
}

func (m Model) handleSavedRemoved(msg savedRemovedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.showNotice("error", msg.Err.Error())
		return m, nil
	}
	kept := m.Saved.Articles[:0]
	for _, article := range m.Saved.Articles {
		if article.ID != msg.ID {
			kept = append(kept, article)
		}
	}
	m.Saved.Articles = kept
	if m.Saved.Cursor >= len(kept) && m.Saved.Cursor > 0 {
		m.Saved.Cursor = len(kept) - 1
	}
	m.showNotice("success", "Article removed from saved")
	return m, nil
}

func (m Model) handleProfileSaved(err error) (tea.Model, tea.Cmd) {
	m.Profile.Pending = false
	if err != nil {
		// Store already surfaced the error; stay in the edit mode so
		// the user can retry.
		return m, nil
	}
	m.Profile.Mode = ProfileViewing
	m.Profile.Input.Blur()
	return m, nil
}
