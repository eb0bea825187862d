package mocks

import (
	"github.com/structuresh/structure/internal/ports"
)

// MockTokenStore implements ports.TokenStore in memory.
type MockTokenStore struct {
	// Token is the stored token; empty means none
	Token string
	// Errors maps method names to errors
	Errors map[string]error
	// SetCalls records tokens passed to Set
	SetCalls []string
	// DeleteCalls counts calls to Delete
	DeleteCalls int
}

// NewMockTokenStore creates an empty mock token store.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{Errors: make(map[string]error)}
}

// Get returns the stored token or ports.ErrTokenNotFound.
func (m *MockTokenStore) Get() (string, error) {
	if err, ok := m.Errors["Get"]; ok {
		return "", err
	}
	if m.Token == "" {
		return "", ports.ErrTokenNotFound
	}
	return m.Token, nil
}

// Set stores the token.
func (m *MockTokenStore) Set(token string) error {
	m.SetCalls = append(m.SetCalls, token)
	if err, ok := m.Errors["Set"]; ok {
		return err
	}
	m.Token = token
	return nil
}

// Delete clears the stored token.
func (m *MockTokenStore) Delete() error {
	m.DeleteCalls++
	if err, ok := m.Errors["Delete"]; ok {
		return err
	}
	m.Token = ""
	return nil
}

// Compile-time check that MockTokenStore implements ports.TokenStore.
var _ ports.TokenStore = (*MockTokenStore)(nil)
