// Package keyringstore provides a token store adapter backed by the OS keyring.
package keyringstore

import (
	"errors"
	"fmt"

	"github.com/structuresh/structure/internal/ports"
	"github.com/zalando/go-keyring"
)

const (
	// DefaultService is the keyring service the API token is stored under.
	DefaultService = "structure.sh"
	// DefaultUser is the keyring account name for the API token.
	DefaultUser = "login"
)

// KeyringStore implements ports.TokenStore using zalando/go-keyring.
type KeyringStore struct {
	service string
	user    string
}

// New creates a KeyringStore for the default service and account.
func New() *KeyringStore {
	return NewWithService(DefaultService, DefaultUser)
}

// NewWithService creates a KeyringStore for an explicit service and account.
func NewWithService(service, user string) *KeyringStore {
	return &KeyringStore{service: service, user: user}
}

// Get returns the stored token or ports.ErrTokenNotFound.
func (s *KeyringStore) Get() (string, error) {
	token, err := keyring.Get(s.service, s.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("reading keyring: %w", err)
	}
	return token, nil
}

// Set stores the token, replacing any previous value.
func (s *KeyringStore) Set(token string) error {
	if err := keyring.Set(s.service, s.user, token); err != nil {
		return fmt.Errorf("writing keyring: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.service, s.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting keyring entry: %w", err)
	}
	return nil
}

// Compile-time check that KeyringStore implements ports.TokenStore.
var _ ports.TokenStore = (*KeyringStore)(nil)
