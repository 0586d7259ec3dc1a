package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// mockSessionStore is an in-memory session store
type mockSessionStore struct {
	token      string
	role       models.Role
	clearCalls int
}

func (m *mockSessionStore) Save(serverURL, token string, role models.Role) error {
	m.token = token
	m.role = role
	return nil
}

func (m *mockSessionStore) Load(serverURL string) (string, models.Role, error) {
	if m.token == "" {
		return "", "", auth.ErrNotAuthenticated
	}
	return m.token, m.role, nil
}

func (m *mockSessionStore) Clear(serverURL string) error {
	m.clearCalls++
	m.token = ""
	m.role = ""
	return nil
}

// mockProfileAPI simulates the backend profile endpoint
type mockProfileAPI struct {
	user      *models.Usuario
	err       error
	calls     int
	lastRole  models.Role
	lastToken string
}

func (m *mockProfileAPI) GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error) {
	m.calls++
	m.lastRole = role
	if m.err != nil {
		return nil, m.err
	}
	// Return a copy so mutation by the manager doesn't touch the fixture
	u := *m.user
	return &u, nil
}

func newTestManager(store *mockSessionStore, api *mockProfileAPI) *Manager {
	m := NewManager("https://api.agreenbyte.test", api)
	m.SetStore(store)
	return m
}

func TestInitialize_NoToken(t *testing.T) {
	store := &mockSessionStore{}
	api := &mockProfileAPI{}
	m := newTestManager(store, api)

	if m.State() != StateLoading {
		t.Fatalf("expected initial state loading, got %s", m.State())
	}

	m.Initialize(context.Background())

	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
	if api.calls != 0 {
		t.Errorf("expected no profile calls without a token, got %d", api.calls)
	}
	if m.User() != nil {
		t.Error("expected nil user when unauthenticated")
	}
}

func TestInitialize_ValidToken_MergesRole(t *testing.T) {
	store := &mockSessionStore{token: "tok-abc", role: models.RoleAgricultor}
	api := &mockProfileAPI{user: &models.Usuario{ID: "u1", Nombre: "Rosa", Email: "rosa@x.com"}}
	m := newTestManager(store, api)

	m.Initialize(context.Background())

	if m.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", m.State())
	}
	if api.lastRole != models.RoleAgricultor {
		t.Errorf("expected farmer profile endpoint, got role %q", api.lastRole)
	}

	user := m.User()
	if user == nil {
		t.Fatal("expected a user record")
	}
	// The profile endpoint does not echo the role; the stored role must be
	// merged in
	if user.Role != models.RoleAgricultor {
		t.Errorf("expected merged role agricultor, got %q", user.Role)
	}
	if user.Nombre != "Rosa" {
		t.Errorf("unexpected user record: %+v", user)
	}
}

func TestInitialize_RejectedToken_ClearsSession(t *testing.T) {
	store := &mockSessionStore{token: "tok-stale", role: models.RoleAdmin}
	api := &mockProfileAPI{err: errors.New("request failed (status 401)")}
	m := newTestManager(store, api)

	m.Initialize(context.Background())

	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated after rejected token, got %s", m.State())
	}
	if store.token != "" || store.role != "" {
		t.Errorf("expected session store cleared, got token=%q role=%q", store.token, store.role)
	}
	if m.User() != nil {
		t.Error("expected nil user after failed validation")
	}
}

func TestInitialize_RunsAtMostOnce(t *testing.T) {
	store := &mockSessionStore{token: "tok-abc", role: models.RoleAdmin}
	api := &mockProfileAPI{user: &models.Usuario{ID: "u1", Nombre: "Ana"}}
	m := newTestManager(store, api)

	m.Initialize(context.Background())
	m.Initialize(context.Background())

	if api.calls != 1 {
		t.Errorf("expected exactly one profile call, got %d", api.calls)
	}
}

func TestSetAuth_ReplacesWholesale(t *testing.T) {
	m := newTestManager(&mockSessionStore{}, &mockProfileAPI{})

	m.SetAuth(&models.Usuario{ID: "u1", Nombre: "Ana", Role: models.RoleAdmin})
	m.SetAuth(&models.Usuario{ID: "u2", Nombre: "Rosa", Role: models.RoleAgricultor})

	user := m.User()
	if user == nil || user.ID != "u2" {
		t.Fatalf("expected wholesale replacement with u2, got %+v", user)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated after SetAuth, got %s", m.State())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	store := &mockSessionStore{token: "tok-abc", role: models.RoleAdmin}
	api := &mockProfileAPI{user: &models.Usuario{ID: "u1"}}
	m := newTestManager(store, api)

	m.Initialize(context.Background())
	if m.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", m.State())
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}

	if store.token != "" || store.role != "" {
		t.Errorf("expected empty store after logout, got token=%q role=%q", store.token, store.role)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated after logout, got %s", m.State())
	}
	if store.clearCalls != 2 {
		t.Errorf("expected clear called on both logouts, got %d", store.clearCalls)
	}
}

func TestRequire_Unauthenticated(t *testing.T) {
	m := newTestManager(&mockSessionStore{}, &mockProfileAPI{})

	if _, err := m.Require(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRequire_ResolvesLoadingFirst(t *testing.T) {
	store := &mockSessionStore{token: "tok-abc", role: models.RoleAdmin}
	api := &mockProfileAPI{user: &models.Usuario{ID: "u1", Nombre: "Ana"}}
	m := newTestManager(store, api)

	user, err := m.Require(context.Background())
	if err != nil {
		t.Fatalf("expected authenticated session, got %v", err)
	}
	if user.Nombre != "Ana" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected admin role merged, got %q", user.Role)
	}
}

func TestTokenInfo_OpaqueToken(t *testing.T) {
	store := &mockSessionStore{token: "not-a-jwt", role: models.RoleAdmin}
	m := newTestManager(store, &mockProfileAPI{})

	if _, err := m.TokenInfo(); err == nil {
		t.Error("expected error for opaque token, got nil")
	}
}
