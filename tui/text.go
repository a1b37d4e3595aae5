package tui

// UI Text Constants
const (
	TextAppTitle = "📰 newsdeck"

	// Footers
	TextFooterLogin    = "tab: switch field | enter: sign in | ctrl+r: register | ctrl+c: quit"
	TextFooterRegister = "tab: switch field | enter: create account | esc: back to login | ctrl+c: quit"
	TextFooterFeed     = "↑/↓: move | enter: open | s: save | /: search | c: category | r: refresh | 1-5: pages | ctrl+l: logout | q: quit"
	TextFooterSaved    = "↑/↓: move | enter: open | d: remove | r: refresh | 1-5: pages | q: quit"
	TextFooterArticle  = "↑/↓: scroll | s: save/unsave | esc: back | q: quit"
	TextFooterProfile  = "e: edit name | a: edit avatar | i: edit interests | 1-5: pages | q: quit"
	TextFooterEditing  = "enter: submit | esc: cancel"
	TextFooterTrending = "r: refresh | 1-5: pages | q: quit"
	TextFooterChat     = "type and press enter | esc: leave input | 1-5: pages | q: quit"

	// Empty states
	TextFeedEmpty     = "No articles match your filters. Press 'r' to refresh or '/' to change the search."
	TextSavedEmpty    = "Nothing saved yet. Press 's' on a feed article to save it."
	TextTrendingEmpty = "No trending data yet."

	TextChatGreeting = "Hi! I'm the newsdeck help bot. Ask me about the feed, saving articles, or your interests."
)
