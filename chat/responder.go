// Package chat implements the canned-response help widget. It keeps an
// append-only message log and picks replies by keyword matching; there
// is no model inference, persistence, or conversation memory.
package chat

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ReplyDelay is the fixed artificial pause before the bot answers.
const ReplyDelay = 900 * time.Millisecond

// Message is one entry of the visible chat log.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// Responder selects canned replies and owns the message log. The random
// source and clock are injected so tests get deterministic output.
type Responder struct {
	rules     []Rule
	fallbacks []string
	rng       *rand.Rand
	now       func() time.Time
	messages  []Message
}

// NewResponder builds a responder. A nil rng falls back to a
// time-seeded source; a nil now falls back to time.Now.
func NewResponder(rules []Rule, fallbacks []string, rng *rand.Rand, now func() time.Time) *Responder {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbacks()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Responder{rules: rules, fallbacks: fallbacks, rng: rng, now: now}
}

// Messages returns the full ordered log.
func (r *Responder) Messages() []Message {
	return r.messages
}

// Submit appends the user's message to the log and returns it.
func (r *Responder) Submit(text string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: r.now(),
	}
	r.messages = append(r.messages, msg)
	return msg
}

// Respond appends and returns the bot reply for the given user input.
// The UI layer is responsible for delaying delivery by ReplyDelay.
func (r *Responder) Respond(input string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Text:      r.ReplyTo(input),
		Sender:    SenderBot,
		Timestamp: r.now(),
	}
	r.messages = append(r.messages, msg)
	return msg
}

// ReplyTo picks the reply for input: the rules are tested in order
// against the lowercased input and the first substring match wins; with
// no match, a uniform pick from the fallback list.
func (r *Responder) ReplyTo(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range r.rules {
		for _, needle := range rule.Contains {
			if strings.Contains(lowered, needle) {
				return rule.Reply
			}
		}
	}
	return r.fallbacks[r.rng.Intn(len(r.fallbacks))]
}
