package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/logger"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// State is the session lifecycle state. Transitions are one-directional per
// manager: Loading resolves to Authenticated or Unauthenticated exactly
// once; only an explicit Logout/SetAuth cycle changes it afterwards.
type State int

const (
	// StateLoading means startup validation has not run yet
	StateLoading State = iota
	// StateAuthenticated means the stored token was accepted and a user
	// record is loaded
	StateAuthenticated
	// StateUnauthenticated means there is no valid session
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ErrNotAuthenticated is returned by Require when no valid session exists.
var ErrNotAuthenticated = auth.ErrNotAuthenticated

// ProfileAPI is the slice of the backend client the manager needs to
// validate a stored token.
type ProfileAPI interface {
	GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error)
}

// Manager is the single source of truth for "who is logged in and as
// what". It owns the in-memory user record and mediates all access to the
// persisted session. Not safe for concurrent use; commands run it from a
// single goroutine.
type Manager struct {
	serverURL   string
	store       auth.SessionStore
	api         ProfileAPI
	state       State
	user        *models.Usuario
	initialized bool
}

// NewManager creates a session manager for one backend server
func NewManager(serverURL string, api ProfileAPI) *Manager {
	return &Manager{
		serverURL: serverURL,
		store:     auth.Default,
		api:       api,
		state:     StateLoading,
	}
}

// SetStore substitutes the session store (used in tests)
func (m *Manager) SetStore(store auth.SessionStore) {
	m.store = store
}

// State returns the current session state
func (m *Manager) State() State {
	return m.state
}

// User returns the authenticated user record, or nil outside
// StateAuthenticated.
func (m *Manager) User() *models.Usuario {
	if m.state != StateAuthenticated {
		return nil
	}
	return m.user
}

// Initialize validates any persisted session against the backend. It runs
// at most once per manager; later calls are no-ops.
//
// No persisted token resolves directly to unauthenticated. A persisted
// token is validated by fetching the profile for the stored role; on
// success the stored role is merged into the returned record (the profile
// endpoint does not echo it). Any failure clears the persisted session and
// resolves to unauthenticated without surfacing an error: the user simply
// lands on the login hint.
func (m *Manager) Initialize(ctx context.Context) {
	if m.initialized {
		return
	}
	m.initialized = true

	token, role, err := m.store.Load(m.serverURL)
	if err != nil {
		// No session persisted; nothing to clear
		m.state = StateUnauthenticated
		return
	}
	if token == "" {
		m.state = StateUnauthenticated
		return
	}

	user, err := m.api.GetProfile(ctx, role)
	if err != nil {
		logger.Logger.Debug().Err(err).Msg("session validation failed, clearing stored session")
		if clearErr := m.store.Clear(m.serverURL); clearErr != nil {
			logger.Logger.Debug().Err(clearErr).Msg("failed to clear stored session")
		}
		m.user = nil
		m.state = StateUnauthenticated
		return
	}

	user.Role = role
	m.user = user
	m.state = StateAuthenticated
	logger.Logger.Debug().Str("role", string(role)).Msg("session validated")
}

// SetAuth replaces the in-memory user record wholesale and marks the
// session authenticated. Callers supply the complete record they want
// visible; there is no partial merge.
func (m *Manager) SetAuth(user *models.Usuario) {
	m.initialized = true
	m.user = user
	m.state = StateAuthenticated
}

// Logout clears the persisted session, then resets the in-memory record.
// Storage is cleared first so nothing can re-read a stale session during
// the reset. Calling Logout on an already-empty session is not an error.
func (m *Manager) Logout() error {
	if err := m.store.Clear(m.serverURL); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.user = nil
	m.initialized = true
	m.state = StateUnauthenticated
	return nil
}

// Require is the protected-command gate. It resolves the session if still
// loading and returns the user record when authenticated, or
// ErrNotAuthenticated when not. Protected commands call this before doing
// anything else.
func (m *Manager) Require(ctx context.Context) (*models.Usuario, error) {
	if m.state == StateLoading {
		m.Initialize(ctx)
	}
	if m.state != StateAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return m.user, nil
}

// TokenClaims is the best-effort decoded content of a stored bearer token.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

// TokenInfo decodes the stored token's claims without verifying the
// signature (the CLI never holds the signing secret). Tokens are treated as
// opaque by every other code path; this exists only so `status` can show
// expiry when the backend happens to issue JWTs.
func (m *Manager) TokenInfo() (*TokenClaims, error) {
	token, _, err := m.store.Load(m.serverURL)
	if err != nil {
		return nil, err
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, errors.New("token is not a JWT")
	}

	info := &TokenClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info, nil
}
