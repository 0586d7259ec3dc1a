package auth

import (
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/userconfig"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// SessionStore persists the session record: the bearer token and the role
// it was issued for. The interface exists so tests can substitute an
// in-memory store for the keyring and user config.
type SessionStore interface {
	// Save replaces the session record wholesale. Last login wins.
	Save(serverURL, token string, role models.Role) error
	// Load returns the persisted token and role, or ErrNotAuthenticated
	// when no token is stored.
	Load(serverURL string) (token string, role models.Role, err error)
	// Clear removes the session record. Clearing an empty store is a no-op.
	Clear(serverURL string) error
}

// defaultSessionStore keeps the token in the OS keyring and the role in the
// user config file.
type defaultSessionStore struct{}

// Default is the production session store.
var Default SessionStore = &defaultSessionStore{}

func (d *defaultSessionStore) Save(serverURL, token string, role models.Role) error {
	if err := SaveToken(serverURL, token); err != nil {
		return err
	}
	return userconfig.SetRol(string(role))
}

func (d *defaultSessionStore) Load(serverURL string) (string, models.Role, error) {
	token, err := LoadToken(serverURL)
	if err != nil {
		return "", "", err
	}
	rol, err := userconfig.GetRol()
	if err != nil {
		return "", "", err
	}
	return token, models.ParseRole(rol), nil
}

func (d *defaultSessionStore) Clear(serverURL string) error {
	if err := DeleteToken(serverURL); err != nil {
		return err
	}
	return userconfig.SetRol("")
}
