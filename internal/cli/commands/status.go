package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/session"
	"github.com/spf13/cobra"
)

type statusOptions struct {
	api      session.ProfileAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// StatusOption overrides a status dependency (used in tests)
type StatusOption func(*statusOptions)

// WithStatusAPI injects the API client
func WithStatusAPI(api session.ProfileAPI) StatusOption {
	return func(o *statusOptions) { o.api = api }
}

// WithStatusSessionStore injects the session store
func WithStatusSessionStore(store auth.SessionStore) StatusOption {
	return func(o *statusOptions) { o.sessions = store }
}

// WithStatusServer injects the resolved server
func WithStatusServer(server *config.Server) StatusOption {
	return func(o *statusOptions) { o.server = server }
}

// WithStatusOutput injects the output writer
func WithStatusOutput(w io.Writer) StatusOption {
	return func(o *statusOptions) { o.out = w }
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session state for the selected server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runStatus(ctx context.Context, serverAlias string, opts ...StatusOption) error {
	o := statusOptions{out: os.Stdout}
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
		c := client.New(o.server.URL)
		if o.sessions != nil {
			c.SetSessionStore(o.sessions)
		}
		o.api = c
	}

	fmt.Fprintf(o.out, "Server:  %s (%s)\n", o.server.Alias, o.server.URL)

	mgr := session.NewManager(o.server.URL, o.api)
	if o.sessions != nil {
		mgr.SetStore(o.sessions)
	}
	mgr.Initialize(ctx)

	if mgr.State() != session.StateAuthenticated {
		fmt.Fprintln(o.out, "Session: not authenticated")
		fmt.Fprintln(o.out, "\nRun 'agreenbyte login' to authenticate.")
		return nil
	}

	user := mgr.User()
	fmt.Fprintln(o.out, "Session: authenticated")
	fmt.Fprintf(o.out, "Account: %s <%s>\n", user.Nombre, user.Email)
	fmt.Fprintf(o.out, "Role:    %s\n", user.Role.Display())

	// Expiry is best effort; the backend may issue opaque tokens
	if claims, err := mgr.TokenInfo(); err == nil && claims.ExpiresAt != nil {
		remaining := time.Until(*claims.ExpiresAt).Round(time.Minute)
		if remaining > 0 {
			fmt.Fprintf(o.out, "Token:   expires %s (%s)\n", claims.ExpiresAt.Format("2006-01-02 15:04"), remaining)
		} else {
			fmt.Fprintf(o.out, "Token:   expired %s\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
		}
	}

	return nil
}
