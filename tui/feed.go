package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/client"
	"newsdeck/types"
)

// FeedModel is the personalized, filterable article list. Filters route
// between the feed and search endpoints (see client.Feed). Seq tags
// fetches so stale responses are dropped instead of applied.
type FeedModel struct {
	Seq      int
	Loading  bool
	Articles []types.Article
	Cursor   int
	Err      string

	Filters     client.FeedFilters
	Searching   bool
	SearchInput textinput.Model
	CategoryIdx int // 0 = all, otherwise Categories[CategoryIdx-1]

	// SavedIDs marks articles saved during this page's lifetime; the
	// server remains the source of truth on the next fetch.
	SavedIDs map[string]bool
}

func NewFeedModel() FeedModel {
	search := textinput.New()
	search.Placeholder = "search articles"
	search.CharLimit = 64

	return FeedModel{
		SearchInput: search,
		SavedIDs:    make(map[string]bool),
	}
}

func (f *FeedModel) selected() *types.Article {
	if f.Cursor < 0 || f.Cursor >= len(f.Articles) {
		return nil
	}
	return &f.Articles[f.Cursor]
}

func (f *FeedModel) applyCategory() {
	if f.CategoryIdx == 0 {
		f.Filters.Categories = nil
	} else {
		f.Filters.Categories = []string{Categories[f.CategoryIdx-1]}
	}
}

func (m Model) updateFeed(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Search entry mode captures all typing until enter/esc.
	if m.Feed.Searching {
		switch key.String() {
		case "enter":
			m.Feed.Searching = false
			m.Feed.SearchInput.Blur()
			m.Feed.Filters.Search = m.Feed.SearchInput.Value()
			m.Feed.Seq++
			m.Feed.Loading = true
			return m, m.fetchFeed(m.Feed.Seq)
		case "esc":
			m.Feed.Searching = false
			m.Feed.SearchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.Feed.SearchInput, cmd = m.Feed.SearchInput.Update(msg)
			return m, cmd
		}
	}

	switch key.String() {
	case "up", "k":
		if m.Feed.Cursor > 0 {
			m.Feed.Cursor--
		}
	case "down", "j":
		if m.Feed.Cursor < len(m.Feed.Articles)-1 {
			m.Feed.Cursor++
		}
	case "enter":
		if article := m.Feed.selected(); article != nil {
			return m.openArticle(article.ID, PageFeed)
		}
	case "s":
		if article := m.Feed.selected(); article != nil {
			if m.Feed.SavedIDs[article.ID] {
				return m, m.unsaveArticle(article.ID)
			}
			return m, m.saveArticle(*article)
		}
	case "/":
		m.Feed.Searching = true
		m.Feed.SearchInput.SetValue(m.Feed.Filters.Search)
		m.Feed.SearchInput.Focus()
	case "c":
		m.Feed.CategoryIdx = (m.Feed.CategoryIdx + 1) % (len(Categories) + 1)
		m.Feed.applyCategory()
		m.Feed.Seq++
		m.Feed.Loading = true
		return m, m.fetchFeed(m.Feed.Seq)
	case "r":
		m.Feed.Seq++
		m.Feed.Loading = true
		return m, m.fetchFeed(m.Feed.Seq)
	}
	return m, nil
}

func (m Model) viewFeed() string {
	var b strings.Builder

	filter := "all categories"
	if m.Feed.CategoryIdx > 0 {
		filter = Categories[m.Feed.CategoryIdx-1]
	}
	if m.Feed.Filters.Search != "" {
		filter += fmt.Sprintf(" | search: %q", m.Feed.Filters.Search)
	}
	b.WriteString(AccentStyle.Render("Filters: " + filter))
	b.WriteString("\n")

	if m.Feed.Searching {
		b.WriteString(m.Feed.SearchInput.View())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterEditing))
		return b.String()
	}
	b.WriteString("\n")

	switch {
	case m.Feed.Loading:
		b.WriteString(m.spin.View() + InfoStyle.Render(" loading feed..."))
	case m.Feed.Err != "":
		b.WriteString(ErrorStyle.Render(m.Feed.Err))
	case len(m.Feed.Articles) == 0:
		b.WriteString(InfoStyle.Render(TextFeedEmpty))
	default:
		b.WriteString(m.renderArticleRows(m.Feed.Articles, m.Feed.Cursor, m.Feed.SavedIDs))
	}

	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(TextFooterFeed))
	return b.String()
}

// renderArticleRows renders an article list with a cursor and optional
// saved markers, shared by the feed and saved pages.
func (m Model) renderArticleRows(articles []types.Article, cursor int, saved map[string]bool) string {
	var b strings.Builder
	for i, article := range articles {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}

		mark := " "
		if saved != nil && saved[article.ID] {
			mark = SavedMarkStyle.Render("★")
		}

		meta := article.Source
		if !article.PublishedAt.IsZero() {
			meta += " · " + article.PublishedAt.Format("Jan 2 15:04")
		}
		if len(article.Categories) > 0 {
			meta += " · " + strings.Join(article.Categories, ", ")
		}

		line := fmt.Sprintf("%s%s %s", prefix, mark, article.Title)
		if i == cursor {
			b.WriteString(SelectedRowStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("     " + meta))
		b.WriteString("\n")
	}
	return b.String()
}
