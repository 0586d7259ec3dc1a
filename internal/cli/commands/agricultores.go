package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
)

// AgricultoresAPI is the slice of the API client the farmer commands need
type AgricultoresAPI interface {
	GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error)
	ListAgricultores(ctx context.Context) ([]models.Agricultor, error)
	CreateAgricultor(ctx context.Context, req client.CreateAgricultorRequest) (*models.Agricultor, error)
	DeleteAgricultor(ctx context.Context, agricultorID string) error
}

type agricultoresOptions struct {
	api      AgricultoresAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// AgricultoresOption overrides a farmer command dependency (used in tests)
type AgricultoresOption func(*agricultoresOptions)

// WithAgricultoresAPI injects the API client
func WithAgricultoresAPI(api AgricultoresAPI) AgricultoresOption {
	return func(o *agricultoresOptions) { o.api = api }
}

// WithAgricultoresSessionStore injects the session store
func WithAgricultoresSessionStore(store auth.SessionStore) AgricultoresOption {
	return func(o *agricultoresOptions) { o.sessions = store }
}

// WithAgricultoresServer injects the resolved server
func WithAgricultoresServer(server *config.Server) AgricultoresOption {
	return func(o *agricultoresOptions) { o.server = server }
}

// WithAgricultoresOutput injects the output writer
func WithAgricultoresOutput(w io.Writer) AgricultoresOption {
	return func(o *agricultoresOptions) { o.out = w }
}

// NewAgricultoresCmd creates the agricultores command group (administrator only)
func NewAgricultoresCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "agricultores",
		Aliases: []string{"farmers"},
		Short:   "Manage farmer accounts (administrator only)",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all farmers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgricultoresList(cmd.Context(), serverAlias)
		},
	}
	cmd.AddCommand(listCmd)

	var nombre, email, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a farmer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgricultoresCreate(cmd.Context(), serverAlias, nombre, email, password)
		},
	}
	createCmd.Flags().StringVar(&nombre, "name", "", "Farmer name")
	createCmd.Flags().StringVar(&email, "email", "", "Farmer email")
	createCmd.Flags().StringVar(&password, "password", "", "Initial password (prompted if not provided)")
	cmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:     "rm <farmer-email>",
		Aliases: []string{"delete"},
		Short:   "Delete a farmer account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgricultoresDelete(cmd.Context(), serverAlias, args[0])
		},
	}
	cmd.AddCommand(deleteCmd)

	return cmd
}

func (o *agricultoresOptions) resolve(serverAlias string) error {
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

func (o *agricultoresOptions) requireAdmin(ctx context.Context) (*models.Usuario, error) {
	user, err := requireUser(ctx, o.server, o.sessions, o.api)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAgricultor {
		return nil, fmt.Errorf("farmer management requires an administrator account")
	}
	return user, nil
}

func runAgricultoresList(ctx context.Context, serverAlias string, opts ...AgricultoresOption) error {
	o := agricultoresOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	agricultores, err := o.api.ListAgricultores(ctx)
	if err != nil {
		return err
	}

	if len(agricultores) == 0 {
		fmt.Fprintln(o.out, "No farmers found.")
		fmt.Fprintln(o.out, "\nCreate one with: agreenbyte agricultores create --name <name> --email <email>")
		return nil
	}

	fmt.Fprintf(o.out, "Farmers on %s (%s):\n\n", o.server.Alias, o.server.URL)

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL")
	fmt.Fprintln(w, "────\t─────")
	for _, a := range agricultores {
		fmt.Fprintf(w, "%s\t%s\n", a.Nombre, a.Email)
	}
	w.Flush()

	return nil
}

func runAgricultoresCreate(ctx context.Context, serverAlias, nombre, email, password string, opts ...AgricultoresOption) error {
	o := agricultoresOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	if password == "" {
		var err error
		password, err = promptPassword(o.out, "Initial password: ")
		if err != nil {
			return err
		}
	}

	form := forms.AgricultorForm{Nombre: nombre, Email: email, Password: password}
	if err := forms.Check(form); err != nil {
		return err
	}

	agricultor, err := o.api.CreateAgricultor(ctx, client.CreateAgricultorRequest{
		Nombre:   nombre,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Farmer '%s' (%s) created\n", agricultor.Nombre, agricultor.Email)
	fmt.Fprintln(o.out, "They must confirm their account from the email before logging in.")
	return nil
}

func runAgricultoresDelete(ctx context.Context, serverAlias, email string, opts ...AgricultoresOption) error {
	o := agricultoresOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	agricultores, err := o.api.ListAgricultores(ctx)
	if err != nil {
		return fmt.Errorf("failed to list farmers: %w", err)
	}

	var id string
	for _, a := range agricultores {
		if a.Email == email {
			id = a.ID
			break
		}
	}
	if id == "" {
		return fmt.Errorf("farmer '%s' not found", email)
	}

	if err := o.api.DeleteAgricultor(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Farmer '%s' deleted\n", email)
	return nil
}
