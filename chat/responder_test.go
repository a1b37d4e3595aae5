package chat

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestFirstMatchingRuleWins(t *testing.T) {
	rules := []Rule{
		{Contains: []string{"feed"}, Reply: "first"},
		{Contains: []string{"feed reader"}, Reply: "second"},
	}
	r := NewResponder(rules, []string{"fallback"}, rand.New(rand.NewSource(1)), fixedClock)

	if got := r.ReplyTo("My FEED READER is broken"); got != "first" {
		t.Fatalf("expected first rule to win, got %q", got)
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	r := NewResponder(nil, nil, rand.New(rand.NewSource(1)), fixedClock)

	if got := r.ReplyTo("HOW DO I SAVE THIS?"); got != DefaultRules()[1].Reply {
		t.Fatalf("expected save rule reply, got %q", got)
	}
}

func TestFallbackIsDeterministicUnderSeed(t *testing.T) {
	fallbacks := []string{"a", "b", "c", "d"}

	first := NewResponder([]Rule{}, fallbacks, rand.New(rand.NewSource(42)), fixedClock)
	second := NewResponder([]Rule{}, fallbacks, rand.New(rand.NewSource(42)), fixedClock)

	for i := 0; i < 10; i++ {
		got := first.ReplyTo("zzz unmatched input zzz")
		want := second.ReplyTo("zzz unmatched input zzz")
		if got != want {
			t.Fatalf("run %d: same seed diverged: %q vs %q", i, got, want)
		}
	}
}

func TestLogIsAppendOnlyAndOrdered(t *testing.T) {
	r := NewResponder(nil, nil, rand.New(rand.NewSource(1)), fixedClock)

	user := r.Submit("hello")
	bot := r.Respond("hello")

	msgs := r.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != user.ID || msgs[0].Sender != SenderUser {
		t.Fatalf("unexpected first message %+v", msgs[0])
	}
	if msgs[1].ID != bot.ID || msgs[1].Sender != SenderBot {
		t.Fatalf("unexpected second message %+v", msgs[1])
	}
	if msgs[0].ID == msgs[1].ID {
		t.Fatal("message IDs must be unique")
	}
	if !msgs[0].Timestamp.Equal(fixedClock()) {
		t.Fatalf("expected injected clock timestamp, got %v", msgs[0].Timestamp)
	}
}

func TestLoadRulesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
rules:
  - contains: ["Weather", "FORECAST"]
    reply: "I only know about news, not weather."
fallbacks:
  - "custom fallback"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, fallbacks, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 || len(fallbacks) != 1 {
		t.Fatalf("unexpected counts: %d rules, %d fallbacks", len(rules), len(fallbacks))
	}
	if rules[0].Contains[0] != "weather" || rules[0].Contains[1] != "forecast" {
		t.Fatalf("expected lowercased substrings, got %v", rules[0].Contains)
	}

	r := NewResponder(rules, fallbacks, rand.New(rand.NewSource(1)), fixedClock)
	if got := r.ReplyTo("what's the WEATHER like"); got != "I only know about news, not weather." {
		t.Fatalf("unexpected reply %q", got)
	}
	if got := r.ReplyTo("unrelated"); got != "custom fallback" {
		t.Fatalf("unexpected fallback %q", got)
	}
}
