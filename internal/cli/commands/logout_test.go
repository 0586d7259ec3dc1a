package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ArdannyR/agreenbyte-cli/internal/models"
)

func TestLogout_ClearsSession(t *testing.T) {
	store := &memSessionStore{token: "jwt-token-abc", role: models.RoleAdmin}
	var output bytes.Buffer

	err := runLogout(
		"",
		WithLogoutSessionStore(store),
		WithLogoutServer(testServer()),
		WithLogoutOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected successful logout, got error: %v", err)
	}

	if store.token != "" {
		t.Errorf("expected session to be cleared, got token '%s'", store.token)
	}
	if !strings.Contains(output.String(), "Logged out") {
		t.Errorf("expected logout confirmation, got: %s", output.String())
	}
}

func TestLogout_IdempotentWhenNoSession(t *testing.T) {
	store := &memSessionStore{}
	var output bytes.Buffer

	// Logging out twice in a row must succeed both times
	for i := 0; i < 2; i++ {
		err := runLogout(
			"",
			WithLogoutSessionStore(store),
			WithLogoutServer(testServer()),
			WithLogoutOutput(&output),
		)
		if err != nil {
			t.Fatalf("logout run %d: expected success, got error: %v", i+1, err)
		}
	}

	if store.clearCalls != 2 {
		t.Errorf("expected 2 clear calls, got %d", store.clearCalls)
	}
}
