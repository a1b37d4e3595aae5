package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel is the account-creation form.
type RegisterModel struct {
	Name     textinput.Model
	Email    textinput.Model
	Password textinput.Model
	Focus    int
	Pending  bool
}

func NewRegisterModel() RegisterModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 64
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return RegisterModel{Name: name, Email: email, Password: password}
}

func (r *RegisterModel) focusField(i int) {
	r.Focus = i
	inputs := []*textinput.Model{&r.Name, &r.Email, &r.Password}
	for idx, input := range inputs {
		if idx == i {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m Model) updateRegister(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.Register.focusField((m.Register.Focus + 1) % 3)
			return m, nil
		case "shift+tab", "up":
			m.Register.focusField((m.Register.Focus + 2) % 3)
			return m, nil
		case "enter":
			if m.Register.Pending {
				return m, nil
			}
			name := strings.TrimSpace(m.Register.Name.Value())
			email := strings.TrimSpace(m.Register.Email.Value())
			password := m.Register.Password.Value()
			if name == "" || email == "" || password == "" {
				m.showNotice("error", "Name, email and password are required")
				return m, nil
			}
			m.Register.Pending = true
			return m, registerCmd(m.session, name, email, password)
		case "esc":
			m.page = PageLogin
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.Register.Focus {
	case 0:
		m.Register.Name, cmd = m.Register.Name.Update(msg)
	case 1:
		m.Register.Email, cmd = m.Register.Email.Update(msg)
	default:
		m.Register.Password, cmd = m.Register.Password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewRegister() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Create account"))
	b.WriteString("\n\n")
	b.WriteString(m.Register.Name.View())
	b.WriteString("\n")
	b.WriteString(m.Register.Email.View())
	b.WriteString("\n")
	b.WriteString(m.Register.Password.View())
	b.WriteString("\n\n")
	if m.Register.Pending {
		b.WriteString(m.spin.View() + InfoStyle.Render(" creating account..."))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(TextFooterRegister))
	return b.String()
}
