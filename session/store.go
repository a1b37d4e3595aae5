// Package session is the single source of truth for "who is logged in".
// The Store is constructed once at startup and handed to the UI; it is
// deliberately not a package-level global so tests can run isolated
// sessions side by side.
package session

import (
	"context"
	"log"
	"sync"

	"newsdeck/client"
	"newsdeck/types"
)

// NotifyLevel classifies a transient notification for the UI layer.
type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// Notifier receives transient, user-facing notifications. A nil
// Notifier is a no-op.
type Notifier func(level NotifyLevel, message string)

// Store holds the current authenticated user and the identity-mutating
// operations. Operations are not mutually exclusive; the UI disables
// submit controls while a request is pending, so concurrent
// login/logout is a last-write-wins race the contract accepts.
type Store struct {
	mu sync.RWMutex

	api    *client.Client
	tokens *TokenStore
	notify Notifier

	user        *types.User
	loading     bool
	initialized bool
}

// NewStore creates a session store. It starts in the loading state;
// callers must invoke Initialize exactly once before gating on User.
func NewStore(api *client.Client, tokens *TokenStore, notify Notifier) *Store {
	return &Store{
		api:     api,
		tokens:  tokens,
		notify:  notify,
		loading: true,
	}
}

// User returns the current user, or nil when logged out. The returned
// value is replaced wholesale on every mutation, never edited in place.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether the startup profile check is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Initialize resolves the persisted session. With no stored access
// token it finishes immediately without touching the network. With one,
// it attempts a profile fetch: success restores the user, failure
// clears both tokens and is treated as "not logged in" rather than
// surfaced. Subsequent calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.mu.Unlock()

	defer s.setLoading(false)

	if s.tokens.AccessToken() == "" {
		return
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		// Expired or invalid token: silent downgrade to logged out.
		log.Printf("session: startup profile check failed: %v", err)
		s.tokens.Clear()
		s.setUser(nil)
		return
	}
	s.setUser(user)
}

// Login authenticates and persists the issued token pair. On failure
// the prior state is left untouched and the normalized error message is
// surfaced as a notification.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.emit(NotifyError, err.Error())
		return err
	}

	if err := s.tokens.Save(types.TokenPair{AccessToken: resp.Token, RefreshToken: resp.RefreshToken}); err != nil {
		log.Printf("session: failed to persist tokens: %v", err)
	}
	s.setUser(resp.User)
	s.emit(NotifySuccess, "Welcome back!")
	return nil
}

// Register creates an account; the contract mirrors Login.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.emit(NotifyError, err.Error())
		return err
	}

	if err := s.tokens.Save(types.TokenPair{AccessToken: resp.Token, RefreshToken: resp.RefreshToken}); err != nil {
		log.Printf("session: failed to persist tokens: %v", err)
	}
	s.setUser(resp.User)
	s.emit(NotifySuccess, "Account created")
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears
// tokens and user. A failing logout request is logged, not surfaced.
func (s *Store) Logout(ctx context.Context) {
	defer func() {
		s.tokens.Clear()
		s.setUser(nil)
	}()

	if err := s.api.Logout(ctx); err != nil {
		log.Printf("session: logout request failed: %v", err)
	}
}

// UpdateProfile submits name/avatar changes. On success the user is
// replaced with the server's representation; the server is the source
// of truth, not a local merge.
func (s *Store) UpdateProfile(ctx context.Context, req types.ProfileUpdateRequest) error {
	user, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		s.emit(NotifyError, err.Error())
		return err
	}
	s.setUser(user)
	s.emit(NotifySuccess, "Profile updated")
	return nil
}

// UpdateInterests replaces the interest list via the dedicated
// interests endpoint, with the same replace-from-server semantics.
func (s *Store) UpdateInterests(ctx context.Context, interests []string) error {
	user, err := s.api.UpdateInterests(ctx, interests)
	if err != nil {
		s.emit(NotifyError, err.Error())
		return err
	}
	s.setUser(user)
	s.emit(NotifySuccess, "Interests updated")
	return nil
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) emit(level NotifyLevel, message string) {
	if s.notify != nil {
		s.notify(level, message)
	}
}
