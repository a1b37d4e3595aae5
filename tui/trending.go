package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/types"
)

// TrendingModel is the read-only analytics dashboard.
type TrendingModel struct {
	Seq     int
	Loading bool
	Data    *types.TrendingResponse
	Err     string
}

func NewTrendingModel() TrendingModel {
	return TrendingModel{}
}

func (m Model) updateTrending(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
		m.Trending.Seq++
		m.Trending.Loading = true
		return m, m.fetchTrending(m.Trending.Seq)
	}
	return m, nil
}

func renderRanking(title string, entries []types.TrendingCategory, limit int) string {
	var b strings.Builder
	b.WriteString(AccentStyle.Render(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(InfoStyle.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	for i, entry := range entries {
		if i >= limit {
			break
		}
		b.WriteString(fmt.Sprintf("  %d. %-20s %d\n", i+1, entry.Name, entry.Count))
	}
	return b.String()
}

func (m Model) viewTrending() string {
	var b strings.Builder

	switch {
	case m.Trending.Loading:
		b.WriteString(m.spin.View() + InfoStyle.Render(" loading trending data..."))
	case m.Trending.Err != "":
		b.WriteString(ErrorStyle.Render(m.Trending.Err))
	case m.Trending.Data == nil:
		b.WriteString(InfoStyle.Render(TextTrendingEmpty))
	default:
		data := m.Trending.Data
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%d articles · %d readers", data.TotalArticles, data.TotalUsers)))
		b.WriteString("\n\n")
		b.WriteString(renderRanking("Top categories", data.Categories, 5))
		b.WriteString("\n")
		b.WriteString(renderRanking("Top sources", data.Sources, 5))
		b.WriteString("\n")
		b.WriteString(renderRanking("Top tags", data.Tags, 5))

		if len(data.TrendingToday) > 0 {
			b.WriteString("\n")
			b.WriteString(HighlightStyle.Render("Trending today"))
			b.WriteString("\n")
			for _, article := range data.TrendingToday {
				b.WriteString(fmt.Sprintf("  • %s (%s)\n", article.Title, article.Source))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(TextFooterTrending))
	return b.String()
}
