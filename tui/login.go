package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the sign-in form. Pending disables submission while a
// request is in flight; that is the only concurrency control the
// session contract relies on.
type LoginModel struct {
	Email    textinput.Model
	Password textinput.Model
	Focus    int
	Pending  bool
}

func NewLoginModel() LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{Email: email, Password: password}
}

func (m Model) updateLogin(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.Login.Focus = 1 - m.Login.Focus
			if m.Login.Focus == 0 {
				m.Login.Email.Focus()
				m.Login.Password.Blur()
			} else {
				m.Login.Email.Blur()
				m.Login.Password.Focus()
			}
			return m, nil
		case "enter":
			if m.Login.Pending {
				return m, nil
			}
			email := strings.TrimSpace(m.Login.Email.Value())
			password := m.Login.Password.Value()
			if email == "" || password == "" {
				m.showNotice("error", "Email and password are required")
				return m, nil
			}
			m.Login.Pending = true
			return m, loginCmd(m.session, email, password)
		case "ctrl+r":
			m.page = PageRegister
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.Login.Focus == 0 {
		m.Login.Email, cmd = m.Login.Email.Update(msg)
	} else {
		m.Login.Password, cmd = m.Login.Password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.Login.Email.View())
	b.WriteString("\n")
	b.WriteString(m.Login.Password.View())
	b.WriteString("\n\n")
	if m.Login.Pending {
		b.WriteString(m.spin.View() + InfoStyle.Render(" signing in..."))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(TextFooterLogin))
	return b.String()
}
