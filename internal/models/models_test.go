package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"agricultor", RoleAgricultor},
		{"AGRICULTOR", RoleAgricultor},
		{" agricultor ", RoleAgricultor},
		{"admin", RoleAdmin},
		{"", RoleAdmin},
		{"something-else", RoleAdmin},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRolePaths(t *testing.T) {
	tests := []struct {
		role Role
		got  string
		want string
	}{
		{RoleAdmin, RoleAdmin.LoginPath(), "/api/administradores/login"},
		{RoleAgricultor, RoleAgricultor.LoginPath(), "/api/agricultores/login"},
		{RoleAdmin, RoleAdmin.ProfilePath(), "/api/administradores/perfil"},
		{RoleAgricultor, RoleAgricultor.ProfilePath(), "/api/agricultores/perfil"},
		{RoleAdmin, RoleAdmin.ConfirmPath("tok"), "/api/administradores/confirmar/tok"},
		{RoleAgricultor, RoleAgricultor.ForgotPasswordPath(""), "/api/agricultores/olvide-password"},
		{RoleAgricultor, RoleAgricultor.ForgotPasswordPath("tok"), "/api/agricultores/olvide-password/tok"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("role %q: got %q, want %q", tt.role, tt.got, tt.want)
		}
	}
}
