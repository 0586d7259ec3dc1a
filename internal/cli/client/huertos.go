package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// CreateHuertoRequest represents the garden creation request
type CreateHuertoRequest struct {
	Nombre            string `json:"nombre"`
	Ubicacion         string `json:"ubicacion"`
	TipoCultivo       string `json:"tipoCultivo"`
	CodigoDispositivo string `json:"codigoDispositivo"`
}

// UpdateHuertoRequest represents the garden update request
type UpdateHuertoRequest struct {
	Nombre      string `json:"nombre"`
	Ubicacion   string `json:"ubicacion"`
	TipoCultivo string `json:"tipoCultivo"`
}

// ListHuertos returns all gardens owned by the authenticated administrator
func (c *Client) ListHuertos(ctx context.Context) ([]models.Huerto, error) {
	var huertos []models.Huerto
	if err := c.do(ctx, http.MethodGet, "/api/huertos", nil, &huertos, true); err != nil {
		return nil, fmt.Errorf("failed to list gardens: %w", err)
	}
	return huertos, nil
}

// CreateHuerto creates a new garden bound to an IoT device code
func (c *Client) CreateHuerto(ctx context.Context, req CreateHuertoRequest) (*models.Huerto, error) {
	var huerto models.Huerto
	if err := c.do(ctx, http.MethodPost, "/api/huertos", req, &huerto, true); err != nil {
		return nil, fmt.Errorf("failed to create garden: %w", err)
	}
	return &huerto, nil
}

// UpdateHuerto replaces a garden's editable fields
func (c *Client) UpdateHuerto(ctx context.Context, huertoID string, req UpdateHuertoRequest) (*models.Huerto, error) {
	var huerto models.Huerto
	if err := c.do(ctx, http.MethodPut, "/api/huertos/"+huertoID, req, &huerto, true); err != nil {
		return nil, fmt.Errorf("failed to update garden: %w", err)
	}
	return &huerto, nil
}

// DeleteHuerto deletes a garden by ID
func (c *Client) DeleteHuerto(ctx context.Context, huertoID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/huertos/"+huertoID, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete garden: %w", err)
	}
	return nil
}

// AssignAgricultor assigns a farmer to a garden by email
func (c *Client) AssignAgricultor(ctx context.Context, huertoID, email string) error {
	reqBody := struct {
		Email string `json:"email"`
	}{Email: email}

	if err := c.do(ctx, http.MethodPost, "/api/huertos/agricultor/"+huertoID, reqBody, nil, true); err != nil {
		return fmt.Errorf("failed to assign farmer: %w", err)
	}
	return nil
}

// RemoveAgricultor removes a farmer from a garden
func (c *Client) RemoveAgricultor(ctx context.Context, huertoID, agricultorID string) error {
	reqBody := struct {
		AgricultorID string `json:"agricultorId"`
	}{AgricultorID: agricultorID}

	if err := c.do(ctx, http.MethodPut, "/api/huertos/remover-agricultor/"+huertoID, reqBody, nil, true); err != nil {
		return fmt.Errorf("failed to remove farmer: %w", err)
	}
	return nil
}

// MyHuertos returns the gardens assigned to the authenticated farmer,
// including their latest sensor readings
func (c *Client) MyHuertos(ctx context.Context) ([]models.Huerto, error) {
	var huertos []models.Huerto
	if err := c.do(ctx, http.MethodGet, "/api/agricultores/mis-huertos", nil, &huertos, true); err != nil {
		return nil, fmt.Errorf("failed to list assigned gardens: %w", err)
	}
	return huertos, nil
}
