// Package session owns the client-side authentication lifecycle. A Session
// is the single source of truth for "who is the current user": every other
// component reads identity from it and never touches durable storage
// directly.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/kmaitland/testhub"
	"github.com/kmaitland/testhub/internal/apimachinery"
	"github.com/kmaitland/testhub/internal/storage"
)

// ErrBusy is returned when a login, registration, or logout is attempted
// while another of those operations is still in flight.
type ErrBusy struct{}

func (e *ErrBusy) Error() string {
	return "another session operation is already in progress"
}

// ErrNotInitialized is returned when an operation requiring an initialized
// session is attempted before Initialize has completed.
type ErrNotInitialized struct{}

func (e *ErrNotInitialized) Error() string {
	return "the session has not been initialized"
}

// Session tracks the current authenticated principal and the credential
// backing it. It moves between three states: initializing (during startup
// rehydration only), authenticated, and anonymous.
type Session struct {
	mu           sync.Mutex
	initialized  bool
	initializing bool
	busy         bool
	user         *testhub.User

	store    *storage.Store
	auth     testhub.AuthClient
	notifier apimachinery.Notifier
}

// New returns a Session backed by the given durable store and auth client.
// The session starts uninitialized; callers must run Initialize before
// Login or Register.
func New(
	store *storage.Store,
	auth testhub.AuthClient,
	notifier apimachinery.Notifier,
) *Session {
	if notifier == nil {
		notifier = &apimachinery.NopNotifier{}
	}
	return &Session{
		store:    store,
		auth:     auth,
		notifier: notifier,
	}
}

// Initialize rehydrates the session from durable storage. If a credential
// is stored, it is validated against the API server; on success the
// returned user is adopted and the snapshot refreshed, and on any failure
// at all durable storage is cleared and the session lands anonymous.
// Rehydration failure is an expected event (a token simply expired since
// the last run), so it is swallowed rather than surfaced. Initialize runs
// at most once; later calls are no-ops.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized || s.initializing {
		s.mu.Unlock()
		return
	}
	s.initializing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.initializing = false
		s.initialized = true
		s.mu.Unlock()
	}()

	token, err := s.store.Token()
	if err != nil || token == "" {
		return
	}
	// The cached snapshot is read but never trusted; the probe below
	// re-fetches the user, so an absent or unreadable snapshot only matters
	// if the probe fails too, and that path clears everything anyway.
	s.store.User() // nolint: errcheck

	user, err := s.auth.Me(ctx)
	if err != nil {
		// The stored credential is stale or the server is unreachable.
		// Either way the session cannot be trusted, so fail closed.
		s.store.Clear() // nolint: errcheck
		return
	}

	s.store.SaveUser(user) // nolint: errcheck
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login establishes a new session: it exchanges the given credentials for a
// bearer token, persists it, then fetches and caches the authenticated
// user. On any failure neither a credential nor a user survives, in memory
// or durably, so no caller can ever observe a half-established session.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	// The token has to be durably stored before the user fetch because the
	// gateway reads the credential from storage at dispatch time.
	if err = s.store.SaveToken(token.AccessToken); err != nil {
		return errors.Wrap(err, "error persisting credential")
	}
	user, err := s.auth.Me(ctx)
	if err != nil {
		s.store.Clear() // nolint: errcheck
		return err
	}
	if err = s.store.SaveUser(user); err != nil {
		s.store.Clear() // nolint: errcheck
		return errors.Wrap(err, "error persisting user snapshot")
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Register delegates account creation to the API server. It never mutates
// session state; a newly registered user still logs in explicitly.
func (s *Session) Register(
	ctx context.Context,
	username string,
	email string,
	password string,
) (testhub.User, error) {
	if err := s.begin(); err != nil {
		return testhub.User{}, err
	}
	defer s.end()

	return s.auth.Register(ctx, username, email, password)
}

// Logout clears the in-memory user and both durable entries and notifies
// the user. It is idempotent: logging out of an anonymous session clears
// already-empty storage and raises no error.
func (s *Session) Logout() error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return &ErrBusy{}
	}
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return errors.Wrap(err, "error clearing session storage")
	}
	s.notifier.Notify("Logged out.")
	return nil
}

// UpdateUser replaces the cached user wholesale, in memory and durably,
// without a network round trip. Used after out-of-band profile edits.
func (s *Session) UpdateUser(user testhub.User) error {
	if err := s.store.SaveUser(user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// CurrentUser returns the authenticated user, if any. While Initializing
// reports true, a false second return value means "not known yet" rather
// than "logged out".
func (s *Session) CurrentUser() (testhub.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return testhub.User{}, false
	}
	return *s.user, true
}

// Initializing reports whether startup rehydration is still in progress.
func (s *Session) Initializing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializing
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return &ErrNotInitialized{}
	}
	if s.busy {
		return &ErrBusy{}
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
