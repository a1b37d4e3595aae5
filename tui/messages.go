package tui

import (
	"time"

	"newsdeck/session"
	"newsdeck/types"
)

// Messages for the tea program. Data-carrying messages include the
// sequence number captured when their fetch was dispatched; Update
// discards results whose sequence is stale, so a slow response that
// lands after the user navigated away never mutates the active page.

// sessionResolvedMsg is sent once the startup profile check finished.
type sessionResolvedMsg struct{}

// Notice surfaces a transient notification from the session store. It
// is exported so main can bridge the store's Notifier into the program.
type Notice struct {
	Level session.NotifyLevel
	Text  string
}

// authDoneMsg is sent when a login or register attempt finished. On
// failure the store has already emitted the error notice.
type authDoneMsg struct {
	Err error
}

// logoutDoneMsg is sent when logout completed (it always "succeeds").
type logoutDoneMsg struct{}

type feedLoadedMsg struct {
	Seq      int
	Articles []types.Article
	Err      error
}

type savedLoadedMsg struct {
	Seq      int
	Articles []types.Article
	Err      error
}

type articleLoadedMsg struct {
	Seq     int
	Details *types.ArticleDetails
	Err     error
}

type trendingLoadedMsg struct {
	Seq  int
	Data *types.TrendingResponse
	Err  error
}

type statsLoadedMsg struct {
	Seq   int
	Stats *types.UserStats
	Err   error
}

// articleSavedMsg reports a save/unsave toggle for the given article.
type articleSavedMsg struct {
	ID    string
	Saved bool
	Err   error
}

// savedRemovedMsg reports removal from the saved list.
type savedRemovedMsg struct {
	ID  string
	Err error
}

// profileSavedMsg / interestsSavedMsg report profile mutations; the
// session store already replaced the user and emitted notices.
type profileSavedMsg struct {
	Err error
}

type interestsSavedMsg struct {
	Err error
}

// botReplyDueMsg fires after the artificial reply delay.
type botReplyDueMsg struct {
	Input string
}

// tickMsg drives notice expiry checks.
type tickMsg struct {
	Time time.Time
}
