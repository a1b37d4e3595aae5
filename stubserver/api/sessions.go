package api

import (
	"sync"

	"github.com/google/uuid"
)

// sessionTable maps opaque access tokens to user IDs. Tokens live in
// memory only; restarting the stub invalidates them, which the client
// handles by clearing its persisted pair and showing the login page.
type sessionTable struct {
	mu      sync.RWMutex
	byToken map[string]string
}

func newSessionTable() *sessionTable {
	return &sessionTable{byToken: make(map[string]string)}
}

// issue mints an access/refresh token pair for the user.
func (t *sessionTable) issue(userID string) (access, refresh string) {
	access = uuid.NewString()
	refresh = uuid.NewString()
	t.mu.Lock()
	t.byToken[access] = userID
	t.mu.Unlock()
	return access, refresh
}

func (t *sessionTable) lookup(token string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byToken[token]
	return id, ok
}

func (t *sessionTable) revoke(token string) {
	t.mu.Lock()
	delete(t.byToken, token)
	t.mu.Unlock()
}
