package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// PasswordAPI is the slice of the API client the password commands need
type PasswordAPI interface {
	ForgotPassword(ctx context.Context, role models.Role, email string) error
	CheckResetToken(ctx context.Context, role models.Role, token string) error
	ResetPassword(ctx context.Context, role models.Role, token, password string) error
}

type passwordOptions struct {
	api    PasswordAPI
	server *config.Server
	out    io.Writer
}

// PasswordOption overrides a password command dependency (used in tests)
type PasswordOption func(*passwordOptions)

// WithPasswordAPI injects the API client
func WithPasswordAPI(api PasswordAPI) PasswordOption {
	return func(o *passwordOptions) { o.api = api }
}

// WithPasswordServer injects the resolved server
func WithPasswordServer(server *config.Server) PasswordOption {
	return func(o *passwordOptions) { o.server = server }
}

// WithPasswordOutput injects the output writer
func WithPasswordOutput(w io.Writer) PasswordOption {
	return func(o *passwordOptions) { o.out = w }
}

// NewForgotPasswordCmd creates the forgot-password command
func NewForgotPasswordCmd() *cobra.Command {
	var email, role, serverAlias string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForgotPassword(cmd.Context(), email, role, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	cmd.Flags().StringVar(&role, "role", "", "Account role: admin or agricultor (defaults to admin)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runForgotPassword(ctx context.Context, email, roleFlag, serverAlias string, opts ...PasswordOption) error {
	o := passwordOptions{
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := forms.Check(forms.EmailForm{Email: email}); err != nil {
		return err
	}

	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.api == nil {
		o.api = client.New(o.server.URL)
	}

	role := models.ParseRole(roleFlag)
	if err := o.api.ForgotPassword(ctx, role, email); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Reset email sent. Check your inbox, then run")
	fmt.Fprintln(o.out, "  'agreenbyte reset-password <token>' with the emailed token.")
	return nil
}

// NewResetPasswordCmd creates the reset-password command
func NewResetPasswordCmd() *cobra.Command {
	var password, role, serverAlias string

	cmd := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResetPassword(cmd.Context(), args[0], password, role, serverAlias)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (will prompt if not provided)")
	cmd.Flags().StringVar(&role, "role", "", "Account role: admin or agricultor (defaults to admin)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runResetPassword(ctx context.Context, token, password, roleFlag, serverAlias string, opts ...PasswordOption) error {
	o := passwordOptions{
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.api == nil {
		o.api = client.New(o.server.URL)
	}

	role := models.ParseRole(roleFlag)

	// Verify the token before asking for a new password, like the reset
	// screen does before showing the form
	if err := o.api.CheckResetToken(ctx, role, token); err != nil {
		return err
	}

	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password)")
		}
		var err error
		if password, err = promptPassword(o.out, "New password: "); err != nil {
			return err
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if err := o.api.ResetPassword(ctx, role, token, password); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Password updated! Run 'agreenbyte login' to sign in.")
	return nil
}
