package tui

import (
	"strings"
)

// View implements tea.Model. It owns the route guard: while the session
// is resolving only a spinner renders, and a logged-out user only ever
// sees the login or register page.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextAppTitle))
	b.WriteString("\n")

	if m.session.Loading() {
		b.WriteString(m.spin.View() + InfoStyle.Render(" restoring session..."))
		b.WriteString("\n")
		return b.String()
	}

	if banner := m.viewNotice(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.session.User() == nil {
		// Redirect: the originally requested page is discarded.
		if m.page == PageRegister {
			b.WriteString(m.viewRegister())
		} else {
			b.WriteString(m.viewLogin())
		}
		return b.String()
	}

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch m.page {
	case PageFeed:
		b.WriteString(m.viewFeed())
	case PageSaved:
		b.WriteString(m.viewSaved())
	case PageArticle:
		b.WriteString(m.viewArticle())
	case PageProfile:
		b.WriteString(m.viewProfile())
	case PageTrending:
		b.WriteString(m.viewTrending())
	case PageChat:
		b.WriteString(m.viewChat())
	default:
		b.WriteString(m.viewFeed())
	}

	return b.String()
}

func (m Model) viewTabs() string {
	tabs := []struct {
		page  Page
		label string
	}{
		{PageFeed, "1 Feed"},
		{PageSaved, "2 Saved"},
		{PageTrending, "3 Trending"},
		{PageProfile, "4 Profile"},
		{PageChat, "5 Help"},
	}

	var rendered []string
	for _, tab := range tabs {
		active := m.page == tab.page || (m.page == PageArticle && tab.page == m.Article.ReturnTo)
		if active {
			rendered = append(rendered, ActiveTabStyle.Render(tab.label))
		} else {
			rendered = append(rendered, TabStyle.Render(tab.label))
		}
	}
	return strings.Join(rendered, " ")
}

func (m Model) viewNotice() string {
	if m.notice == nil {
		return ""
	}
	switch m.notice.Level {
	case "error":
		return ErrorStyle.Render("✗ " + m.notice.Text)
	default:
		return SuccessStyle.Render("✓ " + m.notice.Text)
	}
}
