package commands

import (
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

// memSessionStore is an in-memory session store shared by the command tests
type memSessionStore struct {
	token      string
	role       models.Role
	saveCalls  int
	clearCalls int
}

func (m *memSessionStore) Save(serverURL, token string, role models.Role) error {
	m.token = token
	m.role = role
	m.saveCalls++
	return nil
}

func (m *memSessionStore) Load(serverURL string) (string, models.Role, error) {
	if m.token == "" {
		return "", "", auth.ErrNotAuthenticated
	}
	return m.token, m.role, nil
}

func (m *memSessionStore) Clear(serverURL string) error {
	m.token = ""
	m.role = ""
	m.clearCalls++
	return nil
}
