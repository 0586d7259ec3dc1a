package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// LoginAPI is the slice of the API client the login command needs
type LoginAPI interface {
	Login(ctx context.Context, role models.Role, email, password string) (*client.LoginResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*client.LoginResponse, error)
}

type loginOptions struct {
	api      LoginAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// LoginOption overrides a login dependency (used in tests)
type LoginOption func(*loginOptions)

// WithLoginAPI injects the API client
func WithLoginAPI(api LoginAPI) LoginOption {
	return func(o *loginOptions) { o.api = api }
}

// WithLoginSessionStore injects the session store
func WithLoginSessionStore(store auth.SessionStore) LoginOption {
	return func(o *loginOptions) { o.sessions = store }
}

// WithLoginServer injects the resolved server
func WithLoginServer(server *config.Server) LoginOption {
	return func(o *loginOptions) { o.server = server }
}

// WithLoginOutput injects the output writer
func WithLoginOutput(w io.Writer) LoginOption {
	return func(o *loginOptions) { o.out = w }
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, role, googleToken, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with an Agreenbyte backend",
		Long: `Authenticate with an Agreenbyte backend.

The role selects which endpoint family the credentials are sent to:
administrators and farmers have separate accounts. When --role is not
provided and the terminal is interactive, a role selector is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password, role, googleToken, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set AGREENBYTE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set AGREENBYTE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&role, "role", "", "Account role: admin or agricultor (prompts if not provided)")
	cmd.Flags().StringVar(&googleToken, "google", "", "Google ID token for federated admin login")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runLogin(ctx context.Context, email, password, roleFlag, googleToken, serverAlias string, opts ...LoginOption) error {
	o := loginOptions{
		sessions: auth.Default,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// A local .env is honored for CI and development setups
	_ = godotenv.Load()

	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("AGREENBYTE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("AGREENBYTE_PASSWORD")
	}

	// Resolve which server to use
	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.api == nil {
		c := client.New(o.server.URL)
		c.SetSessionStore(o.sessions)
		o.api = c
	}

	// Federated login is an admin-only flow
	if googleToken != "" {
		return runGoogleLogin(ctx, &o, roleFlag, googleToken)
	}

	// Resolve the role: explicit flag, then interactive prompt, then admin
	role, err := resolveRole(roleFlag)
	if err != nil {
		return err
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or AGREENBYTE_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(o.out, "Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Fprintln(o.out) // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or AGREENBYTE_PASSWORD env var)")
		}
	}

	// Validate before issuing any request
	if err := forms.Check(forms.LoginForm{Email: email, Password: password}); err != nil {
		return err
	}

	// Last login wins: drop any previous session before attempting
	if err := o.sessions.Clear(o.server.URL); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	fmt.Fprintf(o.out, "Logging in to %s (%s) as %s...\n", o.server.Alias, o.server.URL, role.Display())

	loginResp, err := o.api.Login(ctx, role, email, password)
	if err != nil {
		return err
	}

	// Save session record
	if err := o.sessions.Save(o.server.URL, loginResp.Token, role); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  User: %s (%s)\n", loginResp.Nombre, loginResp.Email)
	fmt.Fprintf(o.out, "  Role: %s\n", role.Display())
	fmt.Fprintln(o.out, "\nRun 'agreenbyte dashboard' to see your overview.")

	return nil
}

func runGoogleLogin(ctx context.Context, o *loginOptions, roleFlag, googleToken string) error {
	if models.ParseRole(roleFlag) == models.RoleAgricultor {
		return fmt.Errorf("google login is only available for administrators")
	}

	// Last login wins
	if err := o.sessions.Clear(o.server.URL); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	fmt.Fprintf(o.out, "Logging in to %s (%s) with Google...\n", o.server.Alias, o.server.URL)

	loginResp, err := o.api.GoogleLogin(ctx, googleToken)
	if err != nil {
		return err
	}

	if err := o.sessions.Save(o.server.URL, loginResp.Token, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  User: %s (%s)\n", loginResp.Nombre, loginResp.Email)
	fmt.Fprintf(o.out, "  Role: %s\n", models.RoleAdmin.Display())

	return nil
}

// resolveRole turns the --role flag into a Role, prompting interactively
// when the flag is absent and stdin is a terminal. Non-interactive runs
// default to admin, matching the stored-role fallback.
func resolveRole(roleFlag string) (models.Role, error) {
	if roleFlag != "" {
		return models.ParseRole(roleFlag), nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return models.RoleAdmin, nil
	}

	prompt := promptui.Select{
		Label: "Select your profile",
		Items: []string{models.RoleAdmin.Display(), models.RoleAgricultor.Display()},
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "{{ . | green }}",
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("role selection cancelled: %w", err)
	}

	if index == 1 {
		return models.RoleAgricultor, nil
	}
	return models.RoleAdmin, nil
}
