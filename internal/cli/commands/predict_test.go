package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/history"
)

// mockPredictAPI simulates the ML prediction service
type mockPredictAPI struct {
	alert      *client.FrostAlert
	prediction float64
	calls      int
}

func (m *mockPredictAPI) GetFrostAlert(ctx context.Context) (*client.FrostAlert, error) {
	m.calls++
	return m.alert, nil
}

func (m *mockPredictAPI) PredictTemperature(ctx context.Context, scenario client.TemperatureRequest) (*client.TemperatureResponse, error) {
	m.calls++
	return &client.TemperatureResponse{PrediccionTemperatura: m.prediction}, nil
}

// mockHistoryStore records predictions in memory
type mockHistoryStore struct {
	records []history.Prediction
}

func (m *mockHistoryStore) Record(p *history.Prediction) error {
	m.records = append(m.records, *p)
	return nil
}

func (m *mockHistoryStore) Recent(limit int) ([]history.Prediction, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func TestPredictFrost_AlertShown(t *testing.T) {
	alert := &client.FrostAlert{
		AlertaHelada: true,
		Mensaje:      "Se pronostica helada esta noche",
		Ubicacion:    "Cochabamba",
	}
	alert.Condiciones.Max = 14
	alert.Condiciones.Min = -1
	mockAPI := &mockPredictAPI{alert: alert}
	var output bytes.Buffer

	err := runPredictFrost(
		context.Background(),
		WithPredictAPI(mockAPI),
		WithPredictOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "FROST ALERT") {
		t.Errorf("expected frost alert banner, got: %s", out)
	}
	if !strings.Contains(out, "Cochabamba") {
		t.Errorf("expected location in output, got: %s", out)
	}
}

func TestPredictFrost_NoRisk(t *testing.T) {
	alert := &client.FrostAlert{
		AlertaHelada: false,
		Mensaje:      "Sin riesgo de helada",
		Ubicacion:    "Cochabamba",
	}
	mockAPI := &mockPredictAPI{alert: alert}
	var output bytes.Buffer

	err := runPredictFrost(
		context.Background(),
		WithPredictAPI(mockAPI),
		WithPredictOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !strings.Contains(output.String(), "No frost risk") {
		t.Errorf("expected all-clear message, got: %s", output.String())
	}
}

func TestPredictTemperature_RecordsHistory(t *testing.T) {
	mockAPI := &mockPredictAPI{prediction: -2.5}
	store := &mockHistoryStore{}
	var output bytes.Buffer

	scenario := client.TemperatureRequest{TempMax: 15, TempMin: 2, Lluvia: 0, Mes: 6}
	err := runPredictTemperature(
		context.Background(), scenario,
		WithPredictAPI(mockAPI),
		WithPredictHistory(store),
		WithPredictOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !strings.Contains(output.String(), "-2.5°C") {
		t.Errorf("expected predicted temperature in output, got: %s", output.String())
	}
	if !strings.Contains(output.String(), "Frost risk") {
		t.Errorf("expected frost warning for sub-zero prediction, got: %s", output.String())
	}

	if len(store.records) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(store.records))
	}
	rec := store.records[0]
	if rec.PredictedTemp != -2.5 || !rec.FrostRisk || rec.Mes != 6 {
		t.Errorf("unexpected history record: %+v", rec)
	}
}

func TestPredictTemperature_InvalidScenarioNeverReachesService(t *testing.T) {
	mockAPI := &mockPredictAPI{prediction: 5}
	store := &mockHistoryStore{}
	var output bytes.Buffer

	// Month 13 does not exist
	scenario := client.TemperatureRequest{TempMax: 15, TempMin: 2, Lluvia: 0, Mes: 13}
	err := runPredictTemperature(
		context.Background(), scenario,
		WithPredictAPI(mockAPI),
		WithPredictHistory(store),
		WithPredictOutput(&output),
	)
	if err == nil {
		t.Fatal("expected validation error for month 13")
	}
	if mockAPI.calls != 0 {
		t.Error("expected no request to reach the prediction service")
	}
	if len(store.records) != 0 {
		t.Error("expected no history record for a rejected scenario")
	}
}

func TestPredictTemperature_MinAboveMaxRejected(t *testing.T) {
	mockAPI := &mockPredictAPI{}
	var output bytes.Buffer

	scenario := client.TemperatureRequest{TempMax: 5, TempMin: 10, Lluvia: 0, Mes: 6}
	err := runPredictTemperature(
		context.Background(), scenario,
		WithPredictAPI(mockAPI),
		WithPredictHistory(&mockHistoryStore{}),
		WithPredictOutput(&output),
	)
	if err == nil {
		t.Fatal("expected validation error for min above max")
	}
	if mockAPI.calls != 0 {
		t.Error("expected no request to reach the prediction service")
	}
}

func TestPredictHistory_ShowsRecentRuns(t *testing.T) {
	store := &mockHistoryStore{
		records: []history.Prediction{
			{ID: "01HZX", TempMax: 15, TempMin: 2, Lluvia: 0, Mes: 6, PredictedTemp: -2.5, FrostRisk: true},
		},
	}
	var output bytes.Buffer

	err := runPredictHistory(10, WithPredictHistory(store), WithPredictOutput(&output))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "-2.5°C") {
		t.Errorf("expected predicted temperature in history, got: %s", out)
	}
	if !strings.Contains(out, "month 6") {
		t.Errorf("expected scenario summary in history, got: %s", out)
	}
}

func TestPredictHistory_Empty(t *testing.T) {
	var output bytes.Buffer

	err := runPredictHistory(10, WithPredictHistory(&mockHistoryStore{}), WithPredictOutput(&output))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !strings.Contains(output.String(), "No prediction runs") {
		t.Errorf("expected empty-history message, got: %s", output.String())
	}
}

func TestLoadScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	content := "temp_max: 15.5\ntemp_min: 2\nlluvia: 1.2\nmes: 6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	scenario, err := loadScenarioFile(path)
	if err != nil {
		t.Fatalf("expected scenario to load, got error: %v", err)
	}

	if scenario.TempMax != 15.5 || scenario.TempMin != 2 || scenario.Lluvia != 1.2 || scenario.Mes != 6 {
		t.Errorf("unexpected scenario: %+v", scenario)
	}
}

func TestLoadScenarioFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte("temp_max: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadScenarioFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
