// Package session owns the client's authentication state machine. The
// Manager is the single source of truth for the session entity and the only
// component allowed to change its status; everything else observes it
// through snapshots or subscriptions.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rbmoura/sysportal/internal/client/api"
	"github.com/rbmoura/sysportal/internal/client/credstore"
	"github.com/rbmoura/sysportal/internal/client/models"
	"github.com/rbmoura/sysportal/internal/common"
)

// AuthAPI is the slice of the backend surface the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Register(ctx context.Context, email, password, confirmPassword string) error
}

// Listener receives an immutable session snapshot on every state
// transition.
type Listener func(models.Session)

// Manager implements the session state machine:
//
//	Unresolved ──(Resolve: stored credential found)──▶ Authenticated
//	Unresolved ──(Resolve: nothing stored)───────────▶ Unauthenticated
//	Unauthenticated ──(Login)──▶ Authenticating ──▶ Authenticated | Unauthenticated
//	Authenticated ──(Logout)──▶ Unauthenticated
//
// Rehydration is optimistic: a stored token is trusted without a backend
// round trip and only discovered stale on the first protected call.
type Manager struct {
	store credstore.Store
	api   AuthAPI

	mu        sync.Mutex
	session   models.Session
	resolved  bool
	listeners map[int]Listener
	nextID    int

	// resolveMu serializes rehydration so two early callers cannot both
	// hit the store.
	resolveMu sync.Mutex
}

// NewManager returns a manager in the Unresolved state. Nothing is read
// from the store until the first Resolve.
func NewManager(store credstore.Store, authAPI AuthAPI) *Manager {
	return &Manager{
		store:     store,
		api:       authAPI,
		session:   models.Session{Status: models.StatusUnresolved},
		listeners: make(map[int]Listener),
	}
}

// Current returns the latest session snapshot.
func (m *Manager) Current() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Token implements api.TokenSource. It returns the bearer token only while
// the session is authenticated, so requests issued after logout carry no
// stale credential.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Status != models.StatusAuthenticated {
		return ""
	}
	return m.session.Token
}

// Subscribe registers a listener invoked synchronously on every state
// transition. The returned function unsubscribes it; unsubscribing from
// inside a notification is safe.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Resolve rehydrates the session from the credential store on first use.
// A stored credential yields Authenticated without backend validation; an
// empty store yields Unauthenticated. Store failures also land in
// Unauthenticated and are reported to the caller. Subsequent calls return
// the already resolved snapshot.
func (m *Manager) Resolve(ctx context.Context) (models.Session, error) {
	m.resolveMu.Lock()
	defer m.resolveMu.Unlock()

	m.mu.Lock()
	if m.resolved {
		s := m.session
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	rec, ok, err := m.store.Load(ctx)
	next := models.Session{Status: models.StatusUnauthenticated}
	if err == nil && ok {
		next = models.Session{
			Status:   models.StatusAuthenticated,
			Token:    rec.Token,
			Identity: models.Identity{Email: rec.Email},
		}
	}
	m.transition(next)
	if err != nil {
		return next, fmt.Errorf("rehydrate session: %w", err)
	}
	return next, nil
}

// Login authenticates against the backend. Already authenticated sessions
// are left untouched and the current identity is returned. On success the
// credential is persisted and every subscriber is notified before Login
// returns, so a redirect issued right after it sees the updated state. On
// failure the session lands back in Unauthenticated and the typed error is
// returned; no partial state is retained.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Identity, error) {
	if err := validateLogin(email, password); err != nil {
		return models.Identity{}, err
	}

	m.mu.Lock()
	if m.session.Status == models.StatusAuthenticated {
		identity := m.session.Identity
		m.mu.Unlock()
		return identity, nil
	}
	m.mu.Unlock()

	m.transition(models.Session{Status: models.StatusAuthenticating})

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.transition(models.Session{Status: models.StatusUnauthenticated})
		return models.Identity{}, err
	}

	identity := res.User
	if identity.Email == "" {
		identity.Email = email
	}

	rec := credstore.Record{Token: res.Token, Email: identity.Email, SavedAt: time.Now()}
	if err := m.store.Save(ctx, rec); err != nil {
		m.transition(models.Session{Status: models.StatusUnauthenticated})
		return models.Identity{}, fmt.Errorf("persist credential: %w", err)
	}

	m.transition(models.Session{
		Status:   models.StatusAuthenticated,
		Token:    res.Token,
		Identity: identity,
	})
	return identity, nil
}

// Register creates a new account. Validation failures are detected before
// any network call; registration never changes the session state.
func (m *Manager) Register(ctx context.Context, email, password, confirmPassword string) error {
	if err := validateRegistration(email, password, confirmPassword); err != nil {
		return err
	}
	return m.api.Register(ctx, email, password, confirmPassword)
}

// Logout flips the session to Unauthenticated immediately; the persisted
// credential is cleared afterwards and a clearing failure does not undo
// the transition.
func (m *Manager) Logout(ctx context.Context) error {
	m.transition(models.Session{Status: models.StatusUnauthenticated})
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// transition installs the new snapshot and notifies subscribers outside
// the lock, so a listener may read, subscribe, or unsubscribe freely.
func (m *Manager) transition(next models.Session) {
	m.mu.Lock()
	m.session = next
	m.resolved = true
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

func validateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return api.NewValidationError("email and password are required")
	}
	return nil
}

func validateRegistration(email, password, confirmPassword string) error {
	if strings.TrimSpace(email) == "" {
		return api.NewValidationError("email is required")
	}
	if len(password) < common.MinPasswordLength {
		return api.NewValidationError("password must be at least %d characters", common.MinPasswordLength)
	}
	if password != confirmPassword {
		return api.NewValidationError("passwords do not match")
	}
	return nil
}
