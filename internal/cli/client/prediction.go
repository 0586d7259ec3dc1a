package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PredictionClient talks to the external ML frost-prediction service.
// It is a separate collaborator with its own base URL and no
// authentication.
type PredictionClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPrediction creates a client for the prediction service
func NewPrediction(baseURL string) *PredictionClient {
	return &PredictionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (p *PredictionClient) SetHTTPClient(httpClient *http.Client) {
	p.httpClient = httpClient
}

// FrostAlert is the automatic frost-risk assessment for the detected
// location
type FrostAlert struct {
	AlertaHelada bool   `json:"alerta_helada"`
	Mensaje      string `json:"mensaje"`
	Ubicacion    string `json:"ubicacion"`
	Condiciones  struct {
		Max    float64 `json:"max"`
		Min    float64 `json:"min"`
		Lluvia float64 `json:"lluvia"`
	} `json:"condiciones_hoy"`
}

// TemperatureRequest is a manual prediction scenario
type TemperatureRequest struct {
	TempMax float64 `json:"temp_max"`
	TempMin float64 `json:"temp_min"`
	Lluvia  float64 `json:"lluvia"`
	Mes     int     `json:"mes"`
}

// TemperatureResponse is the predicted minimum temperature for the scenario
type TemperatureResponse struct {
	PrediccionTemperatura float64 `json:"prediccion_temperatura"`
}

// GetFrostAlert fetches the automatic frost-risk prediction
func (p *PredictionClient) GetFrostAlert(ctx context.Context) (*FrostAlert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/v1/prediccion/helada-automatica", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prediction service returned status %d: %s", resp.StatusCode, string(body))
	}

	var alert FrostAlert
	if err := json.NewDecoder(resp.Body).Decode(&alert); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &alert, nil
}

// PredictTemperature runs a manual prediction scenario
func (p *PredictionClient) PredictTemperature(ctx context.Context, scenario TemperatureRequest) (*TemperatureResponse, error) {
	jsonData, err := json.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/prediccion/temperatura", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prediction service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result TemperatureResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &result, nil
}
