package auth

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/zalando/go-keyring"
)

const (
	service = "agreenbyte-cli"
)

// ErrNotAuthenticated is returned when no token is stored for a server.
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'agreenbyte login' first")

// getKeyringKey returns a unique key for storing bearer tokens per server.
// Tokens are keyed by host so http/https and trailing-slash variants of the
// same server share one session.
func getKeyringKey(serverURL string) string {
	host := serverURL
	if u, err := url.Parse(serverURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("token-%s", host)
}

// SaveToken persists the bearer token securely in the OS keychain/credential manager
func SaveToken(serverURL, token string) error {
	key := getKeyringKey(serverURL)
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the bearer token from the OS keychain/credential manager
func LoadToken(serverURL string) (string, error) {
	key := getKeyringKey(serverURL)
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the bearer token from the OS keychain/credential manager.
// Deleting an absent token is not an error.
func DeleteToken(serverURL string) error {
	key := getKeyringKey(serverURL)
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
