package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/types"
)

// SavedModel is the saved-articles list.
type SavedModel struct {
	Seq      int
	Loading  bool
	Articles []types.Article
	Cursor   int
	Err      string
}

func NewSavedModel() SavedModel {
	return SavedModel{}
}

func (s *SavedModel) selected() *types.Article {
	if s.Cursor < 0 || s.Cursor >= len(s.Articles) {
		return nil
	}
	return &s.Articles[s.Cursor]
}

func (m Model) updateSaved(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.Saved.Cursor > 0 {
			m.Saved.Cursor--
		}
	case "down", "j":
		if m.Saved.Cursor < len(m.Saved.Articles)-1 {
			m.Saved.Cursor++
		}
	case "enter":
		if article := m.Saved.selected(); article != nil {
			return m.openArticle(article.ID, PageSaved)
		}
	case "d":
		if article := m.Saved.selected(); article != nil {
			return m, m.removeSaved(article.ID)
		}
	case "r":
		m.Saved.Seq++
		m.Saved.Loading = true
		return m, m.fetchSaved(m.Saved.Seq)
	}
	return m, nil
}

func (m Model) viewSaved() string {
	var b strings.Builder

	switch {
	case m.Saved.Loading:
		b.WriteString(m.spin.View() + InfoStyle.Render(" loading saved articles..."))
	case m.Saved.Err != "":
		b.WriteString(ErrorStyle.Render(m.Saved.Err))
	case len(m.Saved.Articles) == 0:
		b.WriteString(InfoStyle.Render(TextSavedEmpty))
	default:
		b.WriteString(m.renderArticleRows(m.Saved.Articles, m.Saved.Cursor, nil))
	}

	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(TextFooterSaved))
	return b.String()
}
