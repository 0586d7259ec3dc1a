package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across all form checks
var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginForm is the credential pair submitted to a login endpoint
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// EmailForm validates a lone email field (password recovery)
type EmailForm struct {
	Email string `validate:"required,email"`
}

// RegisterForm is the admin sign-up form
type RegisterForm struct {
	Nombre         string `validate:"required"`
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=8"`
	RepeatPassword string `validate:"required,eqfield=Password"`
}

// HuertoForm is the garden creation form. Every field is required: a
// garden without a device code has no sensor feed.
type HuertoForm struct {
	Nombre            string `validate:"required"`
	Ubicacion         string `validate:"required"`
	TipoCultivo       string `validate:"required"`
	CodigoDispositivo string `validate:"required"`
}

// AgricultorForm is the farmer account creation form
type AgricultorForm struct {
	Nombre   string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// ScenarioForm is a manual temperature prediction scenario. The minimum
// must stay below the maximum and the month must be a real month.
type ScenarioForm struct {
	TempMax float64 `validate:"gte=-50,lte=60"`
	TempMin float64 `validate:"ltfield=TempMax"`
	Lluvia  float64 `validate:"gte=0"`
	Mes     int     `validate:"gte=1,lte=12"`
}

// FieldErrors maps form field names to user-facing messages
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(f))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return "invalid input:\n  " + strings.Join(msgs, "\n  ")
}

// Check validates a form and returns FieldErrors describing every invalid
// field, or nil when the form is valid. Validation runs before any request
// is issued; a failing form never reaches the backend.
func Check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fieldErrs[fe.Field()] = message(fe)
	}
	return fieldErrs
}

// message translates a validator tag into a user-facing message
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "must match " + fe.Param()
	case "ltfield":
		return "must be less than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
