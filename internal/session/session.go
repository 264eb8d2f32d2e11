// Package session holds process-wide authentication state: the current user
// or none, backed by the cookie session the API client's jar manages.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"flowtask/internal/model"
)

var log = logrus.StandardLogger()

// State is the session state. Loading exists only until the first who-am-i
// call resolves; afterwards the manager is always in one of the two terminal
// states.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Routes the manager navigates to as part of auth transitions.
const (
	RouteDashboard   = "dashboard"
	RouteSignIn      = "signin"
	RouteVerifyEmail = "verify-email"
)

// API is the slice of the backend client the manager needs.
type API interface {
	Me(ctx context.Context) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, email, password, fullName string) error
	Logout(ctx context.Context) error
	GitHubCallback(ctx context.Context, code string) error
}

// Navigator receives the navigation side effects of login, register, and
// logout. The TUI switches screens; the CLI prints the destination.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

// Manager owns the session state machine.
type Manager struct {
	api API
	nav Navigator

	mu          sync.RWMutex
	state       State
	user        *model.User
	nextSubID   int
	subscribers map[int]func(State)
}

// NewManager creates a Manager in the loading state. Call Refresh to resolve
// it against the backend.
func NewManager(api API, nav Navigator) *Manager {
	return &Manager{
		api:         api,
		nav:         nav,
		state:       StateLoading,
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the current user, or nil when unauthenticated.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Subscribe registers fn to run on every state transition and returns a
// function that removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) transition(state State, user *model.User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	fns := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// Refresh re-runs the who-am-i check. Any failure means "not authenticated";
// it is never surfaced as an error.
func (m *Manager) Refresh(ctx context.Context) {
	user, err := m.api.Me(ctx)
	if err != nil {
		m.transition(StateUnauthenticated, nil)
		return
	}
	m.transition(StateAuthenticated, user)
}

// Login authenticates with email and password. On success the manager
// transitions to authenticated with the server's user and navigates to the
// dashboard; on failure it stays unauthenticated and the error carries the
// normalized message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.transition(StateUnauthenticated, nil)
		return err
	}
	m.transition(StateAuthenticated, user)
	m.nav.NavigateTo(RouteDashboard)
	return nil
}

// Register creates an account. Success does not authenticate: the account
// must verify its email first, so the manager only navigates there.
func (m *Manager) Register(ctx context.Context, email, password, fullName string) error {
	if err := m.api.Register(ctx, email, password, fullName); err != nil {
		return err
	}
	m.nav.NavigateTo(RouteVerifyEmail)
	return nil
}

// Logout ends the session. The backend call is best-effort; the manager
// transitions to unauthenticated and navigates to sign-in regardless.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		log.Warnf("logout request failed: %v", err)
	}
	m.transition(StateUnauthenticated, nil)
	m.nav.NavigateTo(RouteSignIn)
}

// CompleteGitHubLogin finishes an OAuth flow: it posts the provider code,
// then re-validates the session. A nil return guarantees an authenticated
// state with a non-nil user; if the follow-up who-am-i fails the callers get
// ErrNotAuthenticated rather than a half-open session.
func (m *Manager) CompleteGitHubLogin(ctx context.Context, code string) error {
	if err := m.api.GitHubCallback(ctx, code); err != nil {
		return err
	}
	m.Refresh(ctx)
	if m.State() != StateAuthenticated {
		return model.ErrNotAuthenticated
	}
	m.nav.NavigateTo(RouteDashboard)
	return nil
}
