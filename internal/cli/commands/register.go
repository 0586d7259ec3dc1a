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
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RegisterAPI is the slice of the API client the register command needs
type RegisterAPI interface {
	Register(ctx context.Context, req client.RegisterRequest) error
}

type registerOptions struct {
	api    RegisterAPI
	server *config.Server
	out    io.Writer
}

// RegisterOption overrides a register dependency (used in tests)
type RegisterOption func(*registerOptions)

// WithRegisterAPI injects the API client
func WithRegisterAPI(api RegisterAPI) RegisterOption {
	return func(o *registerOptions) { o.api = api }
}

// WithRegisterServer injects the resolved server
func WithRegisterServer(server *config.Server) RegisterOption {
	return func(o *registerOptions) { o.server = server }
}

// WithRegisterOutput injects the output writer
func WithRegisterOutput(w io.Writer) RegisterOption {
	return func(o *registerOptions) { o.out = w }
}

// NewRegisterCmd creates the register command. Only administrator accounts
// self-register; farmer accounts are created by an administrator.
func NewRegisterCmd() *cobra.Command {
	var nombre, email, password, repeat, serverAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), nombre, email, password, repeat, serverAlias)
		},
	}

	cmd.Flags().StringVar(&nombre, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&repeat, "repeat-password", "", "Password confirmation (will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runRegister(ctx context.Context, nombre, email, password, repeat, serverAlias string, opts ...RegisterOption) error {
	o := registerOptions{
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

	if password == "" && term.IsTerminal(int(syscall.Stdin)) {
		var err error
		if password, err = promptPassword(o.out, "Password: "); err != nil {
			return err
		}
		if repeat, err = promptPassword(o.out, "Repeat password: "); err != nil {
			return err
		}
	}
	if repeat == "" {
		repeat = password
	}

	form := forms.RegisterForm{
		Nombre:         nombre,
		Email:          email,
		Password:       password,
		RepeatPassword: repeat,
	}
	if err := forms.Check(form); err != nil {
		return err
	}

	req := client.RegisterRequest{
		Nombre:   nombre,
		Email:    email,
		Password: password,
	}
	if err := o.api.Register(ctx, req); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Account created!")
	fmt.Fprintln(o.out, "  Check your email for the confirmation link, then run")
	fmt.Fprintln(o.out, "  'agreenbyte confirm <token>' to activate the account.")

	return nil
}

// promptPassword reads a password without echoing it
func promptPassword(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(out)
	return string(bytePassword), nil
}
