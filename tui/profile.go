package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/types"
)

// ProfileMode selects what the profile page is currently doing.
type ProfileMode int

const (
	ProfileViewing ProfileMode = iota
	ProfileEditName
	ProfileEditAvatar
	ProfileEditInterests
)

// ProfileModel shows the user plus their stats and hosts the edit
// flows. Interest edits are drafted locally and submitted as a whole
// list; the server's returned user then replaces the local one.
type ProfileModel struct {
	Seq     int
	Loading bool
	Stats   *types.UserStats
	Err     string

	Mode    ProfileMode
	Input   textinput.Model
	Pending bool

	InterestCursor int
	InterestDraft  map[string]bool
}

func NewProfileModel() ProfileModel {
	input := textinput.New()
	input.CharLimit = 256
	return ProfileModel{Input: input}
}

func (m Model) updateProfile(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.Profile.Mode == ProfileEditName || m.Profile.Mode == ProfileEditAvatar {
			var cmd tea.Cmd
			m.Profile.Input, cmd = m.Profile.Input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.Profile.Mode {
	case ProfileEditName, ProfileEditAvatar:
		switch key.String() {
		case "enter":
			if m.Profile.Pending {
				return m, nil
			}
			value := strings.TrimSpace(m.Profile.Input.Value())
			var req types.ProfileUpdateRequest
			if m.Profile.Mode == ProfileEditName {
				req.Name = &value
			} else {
				req.AvatarURL = &value
			}
			m.Profile.Pending = true
			return m, m.submitProfile(req)
		case "esc":
			m.Profile.Mode = ProfileViewing
			m.Profile.Input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.Profile.Input, cmd = m.Profile.Input.Update(msg)
			return m, cmd
		}

	case ProfileEditInterests:
		switch key.String() {
		case "up", "k":
			if m.Profile.InterestCursor > 0 {
				m.Profile.InterestCursor--
			}
		case "down", "j":
			if m.Profile.InterestCursor < len(Categories)-1 {
				m.Profile.InterestCursor++
			}
		case " ":
			cat := Categories[m.Profile.InterestCursor]
			m.Profile.InterestDraft[cat] = !m.Profile.InterestDraft[cat]
		case "enter":
			if m.Profile.Pending {
				return m, nil
			}
			var interests []string
			for _, cat := range Categories {
				if m.Profile.InterestDraft[cat] {
					interests = append(interests, cat)
				}
			}
			m.Profile.Pending = true
			return m, m.submitInterests(interests)
		case "esc":
			m.Profile.Mode = ProfileViewing
		}
		return m, nil

	default: // ProfileViewing
		switch key.String() {
		case "e":
			m.Profile.Mode = ProfileEditName
			if user := m.session.User(); user != nil {
				m.Profile.Input.SetValue(user.Name)
			}
			m.Profile.Input.Placeholder = "display name"
			m.Profile.Input.Focus()
		case "a":
			m.Profile.Mode = ProfileEditAvatar
			if user := m.session.User(); user != nil {
				m.Profile.Input.SetValue(user.AvatarURL)
			}
			m.Profile.Input.Placeholder = "avatar URL"
			m.Profile.Input.Focus()
		case "i":
			m.Profile.Mode = ProfileEditInterests
			m.Profile.InterestCursor = 0
			m.Profile.InterestDraft = make(map[string]bool)
			if user := m.session.User(); user != nil {
				for _, interest := range user.Interests {
					m.Profile.InterestDraft[interest] = true
				}
			}
		}
		return m, nil
	}
}

func (m Model) viewProfile() string {
	var b strings.Builder
	user := m.session.User()
	if user == nil {
		return ""
	}

	name := user.Name
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(HighlightStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(user.Email))
	b.WriteString("\n")
	if user.AvatarURL != "" {
		b.WriteString(InfoStyle.Render("avatar: " + user.AvatarURL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(user.Interests) > 0 {
		b.WriteString(AccentStyle.Render("Interests: " + strings.Join(user.Interests, ", ")))
	} else {
		b.WriteString(InfoStyle.Render("No interests yet. Press 'i' to pick some."))
	}
	b.WriteString("\n\n")

	switch {
	case m.Profile.Loading:
		b.WriteString(m.spin.View() + InfoStyle.Render(" loading stats..."))
		b.WriteString("\n")
	case m.Profile.Stats != nil:
		stats := m.Profile.Stats
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Saved articles: %d | Member since: %s", stats.SavedArticles, stats.JoinDate)))
		b.WriteString("\n")
		if len(stats.Categories) > 0 {
			b.WriteString(InfoStyle.Render("Reading mostly: " + strings.Join(stats.Categories, ", ")))
			b.WriteString("\n")
		}
	case m.Profile.Err != "":
		b.WriteString(ErrorStyle.Render(m.Profile.Err))
		b.WriteString("\n")
	}

	switch m.Profile.Mode {
	case ProfileEditName, ProfileEditAvatar:
		b.WriteString("\n")
		b.WriteString(m.Profile.Input.View())
		b.WriteString("\n")
		if m.Profile.Pending {
			b.WriteString(m.spin.View() + InfoStyle.Render(" saving..."))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render(TextFooterEditing))
	case ProfileEditInterests:
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render("Pick your interests (space toggles):"))
		b.WriteString("\n")
		for i, cat := range Categories {
			cursor := "  "
			if i == m.Profile.InterestCursor {
				cursor = "> "
			}
			check := "[ ]"
			if m.Profile.InterestDraft[cat] {
				check = "[x]"
			}
			line := cursor + check + " " + cat
			if i == m.Profile.InterestCursor {
				line = SelectedRowStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if m.Profile.Pending {
			b.WriteString(m.spin.View() + InfoStyle.Render(" saving..."))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render(TextFooterEditing))
	default:
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterProfile))
	}

	return b.String()
}
