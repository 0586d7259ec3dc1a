package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// CreateAgricultorRequest represents the farmer account creation request
type CreateAgricultorRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListAgricultores returns all farmer accounts managed by the administrator
func (c *Client) ListAgricultores(ctx context.Context) ([]models.Agricultor, error) {
	var agricultores []models.Agricultor
	if err := c.do(ctx, http.MethodGet, "/api/agricultores", nil, &agricultores, true); err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return agricultores, nil
}

// CreateAgricultor creates a new farmer account
func (c *Client) CreateAgricultor(ctx context.Context, req CreateAgricultorRequest) (*models.Agricultor, error) {
	var agricultor models.Agricultor
	if err := c.do(ctx, http.MethodPost, "/api/agricultores", req, &agricultor, true); err != nil {
		return nil, fmt.Errorf("failed to create farmer: %w", err)
	}
	return &agricultor, nil
}

// DeleteAgricultor deletes a farmer account by ID
func (c *Client) DeleteAgricultor(ctx context.Context, agricultorID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/agricultores/"+agricultorID, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete farmer: %w", err)
	}
	return nil
}
