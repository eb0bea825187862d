// Package auth manages the stored API token and the login flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned when no usable API token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// NotLoggedInMessage is shown to users by commands that need a token.
const NotLoggedInMessage = "No account found, please log in by running `structure login`"

// Authenticator exchanges credentials for an API token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Manager reads and writes the API token.
type Manager struct {
	store  ports.TokenStore
	logger *zap.Logger
}

// NewManager creates a Manager on top of store.
func NewManager(store ports.TokenStore, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logging.OrNop(logger)}
}

// Token returns the stored API token, or ErrNotLoggedIn when there is none.
// An empty token or the literal "None" left by older clients counts as none.
func (m *Manager) Token() (string, error) {
	token, err := m.store.Get()
	if err != nil {
		if !errors.Is(err, ports.ErrTokenNotFound) {
			m.logger.Debug("Reading token failed", zap.Error(err))
		}
		return "", ErrNotLoggedIn
	}
	token = strings.TrimSpace(token)
	if token == "" || token == "None" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// LoggedIn reports whether a token is stored.
func (m *Manager) LoggedIn() bool {
	_, err := m.Token()
	return err == nil
}

// Login authenticates with the given credentials and stores the token.
func (m *Manager) Login(ctx context.Context, a Authenticator, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	token, err := a.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("login response did not include a token")
	}

	if err := m.store.Set(token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	m.logger.Debug("Stored API token")
	return nil
}

// Logout removes the stored token. Logging out twice is not an error.
func (m *Manager) Logout() error {
	return m.store.Delete()
}
