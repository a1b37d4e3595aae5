package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/chat"
)

// ChatModel renders the canned-response help widget. The responder owns
// the log; replies are delivered after chat.ReplyDelay via a tick.
type ChatModel struct {
	Responder *chat.Responder
	Input     textinput.Model
	Typing    bool // a bot reply is pending
	Focused   bool
}

func NewChatModel(responder *chat.Responder) ChatModel {
	input := textinput.New()
	input.Placeholder = "ask the help bot"
	input.CharLimit = 256
	input.Focus()

	return ChatModel{Responder: responder, Input: input, Focused: true}
}

func (m Model) updateChat(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if !m.Chat.Focused {
				m.Chat.Focused = true
				m.Chat.Input.Focus()
				return m, nil
			}
			text := strings.TrimSpace(m.Chat.Input.Value())
			if text == "" || m.Chat.Typing {
				return m, nil
			}
			m.Chat.Responder.Submit(text)
			m.Chat.Input.SetValue("")
			m.Chat.Typing = true
			return m, scheduleBotReply(text, chat.ReplyDelay)
		case "esc":
			m.Chat.Focused = false
			m.Chat.Input.Blur()
			return m, nil
		}
	}

	if m.Chat.Focused {
		var cmd tea.Cmd
		m.Chat.Input, cmd = m.Chat.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) viewChat() string {
	var b strings.Builder

	b.WriteString(InfoStyle.Render(TextChatGreeting))
	b.WriteString("\n\n")

	for _, msg := range m.Chat.Responder.Messages() {
		ts := InfoStyle.Render(msg.Timestamp.Format("15:04"))
		switch msg.Sender {
		case chat.SenderUser:
			b.WriteString(ts + " " + ChatUserStyle.Render("you") + "  " + msg.Text)
		default:
			b.WriteString(ts + " " + ChatBotStyle.Render("bot") + "  " + msg.Text)
		}
		b.WriteString("\n")
	}

	if m.Chat.Typing {
		b.WriteString(m.spin.View() + InfoStyle.Render(" bot is typing..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.Chat.Input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(TextFooterChat))
	return b.String()
}
