package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response. The backend returns the
// account record alongside the token.
type LoginResponse struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Login authenticates against the endpoint family for the given role and
// returns the bearer token plus the account record. The caller is
// responsible for persisting the session.
func (c *Client) Login(ctx context.Context, role models.Role, email, password string) (*LoginResponse, error) {
	reqBody := LoginRequest{
		Email:    email,
		Password: password,
	}

	var loginResp LoginResponse
	if err := c.do(ctx, http.MethodPost, role.LoginPath(), reqBody, &loginResp, false); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &loginResp, nil
}

// GoogleLogin performs federated admin login with a Google ID token.
// Only administrators can use federated login; the command layer rejects
// the farmer role before calling this.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*LoginResponse, error) {
	reqBody := struct {
		IDToken string `json:"idToken"`
	}{IDToken: idToken}

	var loginResp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/administradores/google-login", reqBody, &loginResp, false); err != nil {
		return nil, fmt.Errorf("google login failed: %w", err)
	}

	return &loginResp, nil
}

// RegisterRequest represents the admin registration request
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new administrator account. The backend sends a
// confirmation email; the account stays inactive until confirmed.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.do(ctx, http.MethodPost, "/api/administradores", req, nil, false); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// ConfirmAccount confirms a new account with the emailed token.
func (c *Client) ConfirmAccount(ctx context.Context, role models.Role, token string) error {
	if err := c.do(ctx, http.MethodGet, role.ConfirmPath(token), nil, nil, false); err != nil {
		return fmt.Errorf("account confirmation failed: %w", err)
	}
	return nil
}

// ForgotPassword requests a password reset email for the account.
func (c *Client) ForgotPassword(ctx context.Context, role models.Role, email string) error {
	reqBody := struct {
		Email string `json:"email"`
	}{Email: email}

	if err := c.do(ctx, http.MethodPost, role.ForgotPasswordPath(""), reqBody, nil, false); err != nil {
		return fmt.Errorf("password reset request failed: %w", err)
	}
	return nil
}

// CheckResetToken verifies a password reset token before accepting a new
// password, mirroring the reset screen's initial check.
func (c *Client) CheckResetToken(ctx context.Context, role models.Role, token string) error {
	if err := c.do(ctx, http.MethodGet, role.ForgotPasswordPath(token), nil, nil, false); err != nil {
		return fmt.Errorf("reset token check failed: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, role models.Role, token, password string) error {
	reqBody := struct {
		Password string `json:"password"`
	}{Password: password}

	if err := c.do(ctx, http.MethodPost, role.ForgotPasswordPath(token), reqBody, nil, false); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	return nil
}

// GetProfile fetches the authenticated account's profile from the endpoint
// family matching the role. The response does not carry the role; callers
// merge the stored role in.
func (c *Client) GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error) {
	var user models.Usuario
	if err := c.do(ctx, http.MethodGet, role.ProfilePath(), nil, &user, true); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces the profile wholesale and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, role models.Role, user *models.Usuario) (*models.Usuario, error) {
	var updated models.Usuario
	if err := c.do(ctx, http.MethodPut, role.ProfilePath(), user, &updated, true); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &updated, nil
}
