package ports

import "errors"

// ErrTokenNotFound is returned by TokenStore.Get when no token is stored.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore abstracts API token persistence for testability.
// Production code uses the keyring adapter; tests use MockTokenStore.
type TokenStore interface {
	// Get returns the stored token or ErrTokenNotFound.
	Get() (string, error)

	// Set stores the token, replacing any previous value.
	Set(token string) error

	// Delete removes the stored token. Deleting a missing token is not an error.
	Delete() error
}
