package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultPlantAPIURL is the Perenual species database used by the plant
// search screen.
const DefaultPlantAPIURL = "https://perenual.com/api"

// PlantClient queries the Perenual species database
type PlantClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPlants creates a client for the plant species API
func NewPlants(baseURL, apiKey string) *PlantClient {
	if baseURL == "" {
		baseURL = DefaultPlantAPIURL
	}
	return &PlantClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (p *PlantClient) SetHTTPClient(httpClient *http.Client) {
	p.httpClient = httpClient
}

// Plant is a single species entry
type Plant struct {
	ID             int      `json:"id"`
	CommonName     string   `json:"common_name"`
	ScientificName []string `json:"scientific_name"`
	Cycle          string   `json:"cycle"`
	Watering       string   `json:"watering"`
	Sunlight       []string `json:"sunlight"`
}

// SearchPlants searches the species list by free-text query
func (p *PlantClient) SearchPlants(ctx context.Context, query string) ([]Plant, error) {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/species-list?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach plant API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("plant API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Plant `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode plant API response: %w", err)
	}

	return result.Data, nil
}
