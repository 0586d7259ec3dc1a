package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
)

// ProfileAPI is the slice of the API client the profile commands need
type ProfileAPI interface {
	GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error)
	UpdateProfile(ctx context.Context, role models.Role, user *models.Usuario) (*models.Usuario, error)
}

type profileOptions struct {
	api      ProfileAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// ProfileOption overrides a profile dependency (used in tests)
type ProfileOption func(*profileOptions)

// WithProfileAPI injects the API client
func WithProfileAPI(api ProfileAPI) ProfileOption {
	return func(o *profileOptions) { o.api = api }
}

// WithProfileSessionStore injects the session store
func WithProfileSessionStore(store auth.SessionStore) ProfileOption {
	return func(o *profileOptions) { o.sessions = store }
}

// WithProfileServer injects the resolved server
func WithProfileServer(server *config.Server) ProfileOption {
	return func(o *profileOptions) { o.server = server }
}

// WithProfileOutput injects the output writer
func WithProfileOutput(w io.Writer) ProfileOption {
	return func(o *profileOptions) { o.out = w }
}

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated account's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileShow(cmd.Context(), serverAlias)
		},
	}

	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	var nombre, email, telefono, direccion string
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileUpdate(cmd.Context(), serverAlias, nombre, email, telefono, direccion)
		},
	}
	updateCmd.Flags().StringVar(&nombre, "name", "", "Full name")
	updateCmd.Flags().StringVar(&email, "email", "", "Email address")
	updateCmd.Flags().StringVar(&telefono, "phone", "", "Phone number")
	updateCmd.Flags().StringVar(&direccion, "address", "", "Address")
	cmd.AddCommand(updateCmd)

	return cmd
}

func (o *profileOptions) resolve(serverAlias string) error {
	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.api == nil {
		c := client.New(o.server.URL)
		if o.sessions != nil {
			c.SetSessionStore(o.sessions)
		}
		o.api = c
	}

	return nil
}

func runProfileShow(ctx context.Context, serverAlias string, opts ...ProfileOption) error {
	o := profileOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}

	user, err := requireUser(ctx, o.server, o.sessions, o.api)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Profile on %s (%s):\n\n", o.server.Alias, o.server.URL)
	fmt.Fprintf(o.out, "  Name:    %s\n", user.Nombre)
	fmt.Fprintf(o.out, "  Email:   %s\n", user.Email)
	fmt.Fprintf(o.out, "  Role:    %s\n", user.Role.Display())
	if user.Telefono != "" {
		fmt.Fprintf(o.out, "  Phone:   %s\n", user.Telefono)
	}
	if user.Direccion != "" {
		fmt.Fprintf(o.out, "  Address: %s\n", user.Direccion)
	}

	return nil
}

// runProfileUpdate replaces the profile wholesale: unset flags keep their
// current value by copying it from the fetched record first.
func runProfileUpdate(ctx context.Context, serverAlias, nombre, email, telefono, direccion string, opts ...ProfileOption) error {
	o := profileOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}

	user, err := requireUser(ctx, o.server, o.sessions, o.api)
	if err != nil {
		return err
	}

	updated := *user
	if nombre != "" {
		updated.Nombre = nombre
	}
	if email != "" {
		updated.Email = email
	}
	if telefono != "" {
		updated.Telefono = telefono
	}
	if direccion != "" {
		updated.Direccion = direccion
	}

	if err := forms.Check(forms.EmailForm{Email: updated.Email}); err != nil {
		return err
	}

	result, err := o.api.UpdateProfile(ctx, user.Role, &updated)
	if err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Profile updated!")
	fmt.Fprintf(o.out, "  Name:  %s\n", result.Nombre)
	fmt.Fprintf(o.out, "  Email: %s\n", result.Email)

	return nil
}
