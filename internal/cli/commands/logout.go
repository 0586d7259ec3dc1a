package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/spf13/cobra"
)

type logoutOptions struct {
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// LogoutOption overrides a logout dependency (used in tests)
type LogoutOption func(*logoutOptions)

// WithLogoutSessionStore injects the session store
func WithLogoutSessionStore(store auth.SessionStore) LogoutOption {
	return func(o *logoutOptions) { o.sessions = store }
}

// WithLogoutServer injects the resolved server
func WithLogoutServer(server *config.Server) LogoutOption {
	return func(o *logoutOptions) { o.server = server }
}

// WithLogoutOutput injects the output writer
func WithLogoutOutput(w io.Writer) LogoutOption {
	return func(o *logoutOptions) { o.out = w }
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// runLogout clears the session record. Logging out with no session stored
// succeeds quietly; there is nothing to fail on.
func runLogout(serverAlias string, opts ...LogoutOption) error {
	o := logoutOptions{
		sessions: auth.Default,
		out:      os.Stdout,
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

	if err := o.sessions.Clear(o.server.URL); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Fprintf(o.out, "✓ Logged out of %s (%s)\n", o.server.Alias, o.server.URL)
	return nil
}
