package commands

import (
	"context"
	"fmt"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/serverselect"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/session"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// getSelectedServer loads the config and returns the selected server.
// This is common logic used by most commands.
// If you need the config object itself, call config.LoadFromCurrentDir() separately.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	// Load config
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'agreenbyte init' to create a configuration file", err)
	}

	// Resolve which server to use
	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit agreenbyte.json and add a valid backend URL")
	}

	return server, nil
}

// requireUser resolves the persisted session against the backend and
// returns the authenticated user. Protected commands call this before any
// feature request; an invalid session is cleared and reported as the login
// hint.
func requireUser(ctx context.Context, server *config.Server, store auth.SessionStore, api session.ProfileAPI) (*models.Usuario, error) {
	if api == nil {
		c := client.New(server.URL)
		if store != nil {
			c.SetSessionStore(store)
		}
		api = c
	}

	mgr := session.NewManager(server.URL, api)
	if store != nil {
		mgr.SetStore(store)
	}

	return mgr.Require(ctx)
}
