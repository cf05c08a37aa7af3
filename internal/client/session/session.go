// Package session holds the client-side authentication state: which principal
// is signed in, whether that is still being determined, and the last error.
// All route-gating decisions derive from its snapshots.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carelink/hospital-portal/internal/client/portal"
	"github.com/carelink/hospital-portal/internal/core/domain"
)

// State is the session machine's current phase.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[State][]State{
	StateUninitialized: {StateLoading},
	StateLoading:       {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateLoading, StateAnonymous},
	StateAnonymous:     {StateLoading, StateAnonymous}, // logout while anonymous is a no-op
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Snapshot is an immutable view of the session for UI layers. While the state
// is Loading no gating decision may be made from it.
type Snapshot struct {
	State State
	User  *domain.User
	Err   string
}

// Authenticated reports whether a principal is signed in.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// API is the network boundary the machine suspends on.
type API interface {
	Login(ctx context.Context, email, password string) (*portal.AuthResult, error)
	Register(ctx context.Context, in portal.RegisterInput) (*portal.AuthResult, error)
	Me(ctx context.Context, token string) (*domain.User, error)
}

// Machine drives the session lifecycle:
//
//	Uninitialized → Loading → {Authenticated, Anonymous}
//
// Network failures always resolve to Anonymous; the machine never stays in
// Loading. It never returns errors across the boundary either — callers
// observe state through Snapshot.
type Machine struct {
	mu     sync.Mutex
	state  State
	user   *domain.User
	err    string
	api    API
	tokens TokenStore
	log    zerolog.Logger
}

func NewMachine(api API, tokens TokenStore, log zerolog.Logger) *Machine {
	return &Machine{state: StateUninitialized, api: api, tokens: tokens, log: log}
}

// Snapshot returns the current session view.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, User: m.user, Err: m.err}
}

// Rehydrate resolves the startup state: a persisted token is exchanged for a
// principal via the who-am-I endpoint. Any failure — expired token, network
// error, missing token — clears the stored token and lands in Anonymous.
func (m *Machine) Rehydrate(ctx context.Context) Snapshot {
	m.transition(StateLoading, nil, "")

	tok, err := m.tokens.Load()
	if err != nil || tok == "" {
		if err != nil {
			m.log.Warn().Err(err).Msg("token store read failed")
		}
		return m.transition(StateAnonymous, nil, "")
	}

	user, err := m.api.Me(ctx, tok)
	if err != nil {
		m.log.Debug().Err(err).Msg("stored token rejected, clearing")
		m.clearToken()
		return m.transition(StateAnonymous, nil, "")
	}
	return m.transition(StateAuthenticated, user, "")
}

// Login performs the credential exchange. On success the returned token is
// persisted and the machine becomes Authenticated; on failure it becomes
// Anonymous with the error message recorded for display.
func (m *Machine) Login(ctx context.Context, email, password string) Snapshot {
	m.transition(StateLoading, nil, "")

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return m.transition(StateAnonymous, nil, err.Error())
	}
	m.saveToken(res.Token)
	return m.transition(StateAuthenticated, res.User, "")
}

// Register mirrors Login for account creation.
func (m *Machine) Register(ctx context.Context, in portal.RegisterInput) Snapshot {
	m.transition(StateLoading, nil, "")

	res, err := m.api.Register(ctx, in)
	if err != nil {
		return m.transition(StateAnonymous, nil, err.Error())
	}
	m.saveToken(res.Token)
	return m.transition(StateAuthenticated, res.User, "")
}

// Logout clears the persisted token and the in-memory principal. It is purely
// local; stateless tokens have nothing to revoke server-side.
func (m *Machine) Logout() Snapshot {
	m.clearToken()
	return m.transition(StateAnonymous, nil, "")
}

func (m *Machine) transition(next State, user *domain.User, errMsg string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.canTransitionTo(next) {
		// Last-write-wins is acceptable for the single-threaded UI driving
		// this machine, but a structurally impossible transition is a bug.
		m.log.Warn().
			Str("from", string(m.state)).
			Str("to", string(next)).
			Msg("ignoring invalid session transition")
		return Snapshot{State: m.state, User: m.user, Err: m.err}
	}

	m.state = next
	m.user = user
	m.err = errMsg
	return Snapshot{State: m.state, User: m.user, Err: m.err}
}

func (m *Machine) saveToken(tok string) {
	if err := m.tokens.Save(tok); err != nil {
		m.log.Warn().Err(err).Msg("token store write failed")
	}
}

func (m *Machine) clearToken() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("token store clear failed")
	}
}
