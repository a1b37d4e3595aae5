package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/types"
)

// ArticleModel is the article reader. ReturnTo remembers which list the
// reader was opened from; esc goes back there.
type ArticleModel struct {
	Seq      int
	Loading  bool
	ID       string
	Details  *types.ArticleDetails
	Viewport viewport.Model
	ReturnTo Page
	Err      string
}

func NewArticleModel() ArticleModel {
	return ArticleModel{Viewport: viewport.New(80, 20), ReturnTo: PageFeed}
}

// openArticle activates the reader for the given article ID.
func (m Model) openArticle(id string, returnTo Page) (Model, tea.Cmd) {
	m.page = PageArticle
	m.Article.ID = id
	m.Article.ReturnTo = returnTo
	m.Article.Details = nil
	m.Article.Err = ""
	m.Article.Seq++
	m.Article.Loading = true
	return m, m.fetchArticle(m.Article.Seq, id)
}

// setDetails fills the viewport once the article arrives.
func (a *ArticleModel) setDetails(details *types.ArticleDetails, width, height int) {
	a.Details = details
	a.Loading = false

	if width > 0 {
		a.Viewport.Width = width
	}
	if height > 8 {
		a.Viewport.Height = height - 8
	}
	a.Viewport.SetContent(a.renderBody())
	a.Viewport.GotoTop()
}

func (a *ArticleModel) renderBody() string {
	d := a.Details
	var b strings.Builder

	meta := d.Source
	if d.Author != "" {
		meta += " · " + d.Author
	}
	if !d.PublishedAt.IsZero() {
		meta += " · " + d.PublishedAt.Format("Jan 2, 2006 15:04")
	}
	b.WriteString(InfoStyle.Render(meta))
	b.WriteString("\n\n")

	if d.Description != "" {
		b.WriteString(AccentStyle.Render(d.Description))
		b.WriteString("\n\n")
	}
	if d.Content != "" {
		b.WriteString(d.Content)
		b.WriteString("\n\n")
	}
	b.WriteString(InfoStyle.Render(d.URL))

	if len(d.Related) > 0 {
		b.WriteString("\n\n")
		b.WriteString(HighlightStyle.Render("Related"))
		b.WriteString("\n")
		for _, rel := range d.Related {
			b.WriteString(fmt.Sprintf("  • %s (%s)\n", rel.Title, rel.Source))
		}
	}
	return b.String()
}

func (m Model) updateArticle(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m.switchTo(m.Article.ReturnTo)
		case "s":
			if d := m.Article.Details; d != nil {
				if d.Saved {
					return m, m.unsaveArticle(d.ID)
				}
				return m, m.saveArticle(d.Article)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Article.Viewport, cmd = m.Article.Viewport.Update(msg)
	return m, cmd
}

func (m Model) viewArticle() string {
	var b strings.Builder

	switch {
	case m.Article.Loading:
		b.WriteString(m.spin.View() + InfoStyle.Render(" loading article..."))
	case m.Article.Err != "":
		b.WriteString(ErrorStyle.Render(m.Article.Err))
	case m.Article.Details != nil:
		saved := " "
		if m.Article.Details.Saved {
			saved = SavedMarkStyle.Render("★ saved")
		}
		b.WriteString(HighlightStyle.Render(m.Article.Details.Title) + " " + saved)
		b.WriteString("\n\n")
		b.WriteString(m.Article.Viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(TextFooterArticle))
	return b.String()
}
