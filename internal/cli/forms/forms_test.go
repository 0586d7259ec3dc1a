package forms

import (
	"errors"
	"strings"
	"testing"
)

func TestLoginForm(t *testing.T) {
	tests := []struct {
		name      string
		form      LoginForm
		wantField string
	}{
		{
			name: "valid",
			form: LoginForm{Email: "a@x.com", Password: "secret1"},
		},
		{
			name:      "empty email",
			form:      LoginForm{Password: "secret1"},
			wantField: "Email",
		},
		{
			name:      "malformed email",
			form:      LoginForm{Email: "not-an-email", Password: "secret1"},
			wantField: "Email",
		},
		{
			name:      "empty password",
			form:      LoginForm{Email: "a@x.com"},
			wantField: "Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.form)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid form, got %v", err)
				}
				return
			}

			var fieldErrs FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fieldErrs[tt.wantField]; !ok {
				t.Errorf("expected error on field %s, got %v", tt.wantField, fieldErrs)
			}
		})
	}
}

func TestRegisterForm_PasswordMismatch(t *testing.T) {
	form := RegisterForm{
		Nombre:         "Ana",
		Email:          "ana@x.com",
		Password:       "secretpassword",
		RepeatPassword: "differentpassword",
	}

	err := Check(form)
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if msg, ok := fieldErrs["RepeatPassword"]; !ok || !strings.Contains(msg, "must match") {
		t.Errorf("expected RepeatPassword mismatch error, got %v", fieldErrs)
	}
}

func TestHuertoForm_AllFieldsRequired(t *testing.T) {
	err := Check(HuertoForm{})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, field := range []string{"Nombre", "Ubicacion", "TipoCultivo", "CodigoDispositivo"} {
		if _, ok := fieldErrs[field]; !ok {
			t.Errorf("expected error on field %s", field)
		}
	}

	valid := HuertoForm{
		Nombre:            "Huerto Norte",
		Ubicacion:         "Quito",
		TipoCultivo:       "Tomate",
		CodigoDispositivo: "DEV-1",
	}
	if err := Check(valid); err != nil {
		t.Errorf("expected valid form, got %v", err)
	}
}

func TestScenarioForm_CrossField(t *testing.T) {
	tests := []struct {
		name      string
		form      ScenarioForm
		wantField string
	}{
		{
			name: "valid",
			form: ScenarioForm{TempMax: 22, TempMin: 8, Lluvia: 0, Mes: 7},
		},
		{
			name:      "min above max",
			form:      ScenarioForm{TempMax: 10, TempMin: 15, Lluvia: 0, Mes: 7},
			wantField: "TempMin",
		},
		{
			name:      "negative rain",
			form:      ScenarioForm{TempMax: 22, TempMin: 8, Lluvia: -1, Mes: 7},
			wantField: "Lluvia",
		},
		{
			name:      "month out of range",
			form:      ScenarioForm{TempMax: 22, TempMin: 8, Lluvia: 0, Mes: 13},
			wantField: "Mes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.form)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid scenario, got %v", err)
				}
				return
			}

			var fieldErrs FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fieldErrs[tt.wantField]; !ok {
				t.Errorf("expected error on field %s, got %v", tt.wantField, fieldErrs)
			}
		})
	}
}

func TestFieldErrors_MessageListsAllFields(t *testing.T) {
	err := Check(LoginForm{})
	msg := err.Error()
	if !strings.Contains(msg, "Email") || !strings.Contains(msg, "Password") {
		t.Errorf("expected both fields in message, got %q", msg)
	}
}
