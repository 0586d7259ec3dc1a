package models

import "strings"

// Role identifies which kind of account a session belongs to.
// The backend exposes a separate endpoint family per role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAgricultor Role = "agricultor"
)

// ParseRole normalizes a stored or user-supplied role string.
// Anything that is not explicitly the farmer role resolves to admin,
// matching the backend's dual-role contract.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAgricultor)) {
		return RoleAgricultor
	}
	return RoleAdmin
}

// APIPrefix returns the backend path segment for this role's endpoint family.
func (r Role) APIPrefix() string {
	if r == RoleAgricultor {
		return "/api/agricultores"
	}
	return "/api/administradores"
}

// LoginPath returns the login endpoint for this role.
func (r Role) LoginPath() string {
	return r.APIPrefix() + "/login"
}

// ProfilePath returns the profile fetch/update endpoint for this role.
func (r Role) ProfilePath() string {
	return r.APIPrefix() + "/perfil"
}

// ConfirmPath returns the account confirmation endpoint for this role.
func (r Role) ConfirmPath(token string) string {
	return r.APIPrefix() + "/confirmar/" + token
}

// ForgotPasswordPath returns the password recovery endpoint for this role.
// With an empty token it addresses the "request reset email" endpoint,
// otherwise the token check / new password endpoint.
func (r Role) ForgotPasswordPath(token string) string {
	if token == "" {
		return r.APIPrefix() + "/olvide-password"
	}
	return r.APIPrefix() + "/olvide-password/" + token
}

// Display returns the role name shown to users.
func (r Role) Display() string {
	if r == RoleAgricultor {
		return "Agricultor"
	}
	return "Administrador"
}

// Usuario is the authenticated account record returned by the profile
// endpoints. The backend does not echo the role; the session layer merges
// the stored role in after fetching.
type Usuario struct {
	ID        string `json:"_id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// Huerto is a garden/growing site managed by an administrator. Sensor
// readings (temperatura/humedad) are populated by the backend from the
// garden's IoT device; zero values mean no reading yet.
type Huerto struct {
	ID                string       `json:"_id"`
	Nombre            string       `json:"nombre"`
	Ubicacion         string       `json:"ubicacion"`
	TipoCultivo       string       `json:"tipoCultivo"`
	CodigoDispositivo string       `json:"codigoDispositivo,omitempty"`
	Temperatura       float64      `json:"temperatura,omitempty"`
	Humedad           float64      `json:"humedad,omitempty"`
	Agricultores      []Agricultor `json:"agricultores,omitempty"`
}

// Agricultor is a farmer account created and assigned by an administrator.
type Agricultor struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}
