package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"newsdeck/types"
)

// TokenStore persists the access/refresh token pair as a single JSON
// file under the client state dir. The pair is written together and
// cleared together, never one token at a time.
type TokenStore struct {
	mu   sync.RWMutex
	path string
	pair types.TokenPair
}

// NewTokenStore loads any previously persisted pair from path. A
// missing or unreadable file simply means "logged out".
func NewTokenStore(path string) *TokenStore {
	ts := &TokenStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return ts
	}
	var pair types.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return ts
	}
	ts.pair = pair
	return ts
}

// AccessToken implements client.TokenSource.
func (ts *TokenStore) AccessToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.pair.AccessToken
}

// RefreshToken returns the persisted refresh token, if any.
func (ts *TokenStore) RefreshToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.pair.RefreshToken
}

// Save persists both tokens atomically via a rename.
func (ts *TokenStore) Save(pair types.TokenPair) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.pair = pair

	if err := os.MkdirAll(filepath.Dir(ts.path), 0700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	tmp := ts.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}
	if err := os.Rename(tmp, ts.path); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}
	return nil
}

// Clear drops both tokens from memory and disk.
func (ts *TokenStore) Clear() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.pair = types.TokenPair{}
	_ = os.Remove(ts.path)
}
