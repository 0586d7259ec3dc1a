package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// mockDashboardAPI counts which endpoint families the dashboard touches
type mockDashboardAPI struct {
	huertos   []models.Huerto
	mine      []models.Huerto
	listCalls int
	listAgrs  int
	mineCalls int
}

func (m *mockDashboardAPI) GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error) {
	return &models.Usuario{ID: "user-1", Nombre: "Test User", Email: "user@example.com"}, nil
}

func (m *mockDashboardAPI) ListHuertos(ctx context.Context) ([]models.Huerto, error) {
	m.listCalls++
	return m.huertos, nil
}

func (m *mockDashboardAPI) ListAgricultores(ctx context.Context) ([]models.Agricultor, error) {
	m.listAgrs++
	return []models.Agricultor{{ID: "a-1", Nombre: "Farmer", Email: "farmer@example.com"}}, nil
}

func (m *mockDashboardAPI) MyHuertos(ctx context.Context) ([]models.Huerto, error) {
	m.mineCalls++
	return m.mine, nil
}

func TestDashboard_AdminGetsManagementOverview(t *testing.T) {
	mockAPI := &mockDashboardAPI{
		huertos: []models.Huerto{
			{ID: "h-1", Nombre: "Norte", Ubicacion: "Valle Alto", TipoCultivo: "Maíz", Temperatura: 18.5, Humedad: 55},
		},
	}
	var output bytes.Buffer

	err := runDashboard(
		context.Background(), "", false,
		WithDashboardAPI(mockAPI),
		WithDashboardSessionStore(adminStore()),
		WithDashboardServer(testServer()),
		WithDashboardOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "administrator") {
		t.Errorf("expected admin greeting, got: %s", out)
	}
	if !strings.Contains(out, "Gardens: 1") || !strings.Contains(out, "Farmers: 1") {
		t.Errorf("expected counts in overview, got: %s", out)
	}
	if mockAPI.mineCalls != 0 {
		t.Error("admin dashboard must not touch the farmer endpoint family")
	}
}

func TestDashboard_FarmerGetsAssignedGardens(t *testing.T) {
	mockAPI := &mockDashboardAPI{
		mine: []models.Huerto{
			{ID: "h-1", Nombre: "Norte", Ubicacion: "Valle Alto", TipoCultivo: "Maíz", Temperatura: 18.5, Humedad: 55},
		},
	}
	store := &memSessionStore{token: "jwt-token-abc", role: models.RoleAgricultor}
	var output bytes.Buffer

	err := runDashboard(
		context.Background(), "", false,
		WithDashboardAPI(mockAPI),
		WithDashboardSessionStore(store),
		WithDashboardServer(testServer()),
		WithDashboardOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "farmer") {
		t.Errorf("expected farmer greeting, got: %s", out)
	}
	if !strings.Contains(out, "Norte") {
		t.Errorf("expected assigned garden in view, got: %s", out)
	}
	if mockAPI.mineCalls != 1 {
		t.Errorf("expected one MyHuertos call, got %d", mockAPI.mineCalls)
	}
	if mockAPI.listCalls != 0 || mockAPI.listAgrs != 0 {
		t.Error("farmer dashboard must not touch the admin endpoint family")
	}
}

func TestDashboard_FarmerSeesFrostHint(t *testing.T) {
	mockAPI := &mockDashboardAPI{
		mine: []models.Huerto{
			{ID: "h-1", Nombre: "Norte", TipoCultivo: "Maíz", Temperatura: 1.5, Humedad: 60},
		},
	}
	store := &memSessionStore{token: "jwt-token-abc", role: models.RoleAgricultor}
	var output bytes.Buffer

	err := runDashboard(
		context.Background(), "", false,
		WithDashboardAPI(mockAPI),
		WithDashboardSessionStore(store),
		WithDashboardServer(testServer()),
		WithDashboardOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !strings.Contains(output.String(), "frost risk") {
		t.Errorf("expected frost-risk hint for a 1.5°C reading, got: %s", output.String())
	}
}

func TestDashboard_RequiresSession(t *testing.T) {
	mockAPI := &mockDashboardAPI{}
	var output bytes.Buffer

	err := runDashboard(
		context.Background(), "", false,
		WithDashboardAPI(mockAPI),
		WithDashboardSessionStore(&memSessionStore{}),
		WithDashboardServer(testServer()),
		WithDashboardOutput(&output),
	)
	if err == nil {
		t.Fatal("expected the dashboard to require a session")
	}
	if mockAPI.listCalls != 0 && mockAPI.mineCalls != 0 {
		t.Error("expected no data fetch without a session")
	}
}
