package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/structuresh/structure/internal/mocks"
)

type fakeAuthenticator struct {
	token string
	err   error
	email string
}

func (f *fakeAuthenticator) Login(_ context.Context, email, _ string) (string, error) {
	f.email = email
	return f.token, f.err
}

func TestTokenNotLoggedIn(t *testing.T) {
	store := mocks.NewMockTokenStore()
	m := NewManager(store, nil)

	_, err := m.Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, m.LoggedIn())

	for _, stale := range []string{"", "  ", "None"} {
		store.Token = stale
		_, err := m.Token()
		assert.ErrorIs(t, err, ErrNotLoggedIn, "token %q", stale)
	}
}

func TestTokenStoreFailureIsNotLoggedIn(t *testing.T) {
	store := mocks.NewMockTokenStore()
	store.Errors["Get"] = errors.New("keyring locked")

	_, err := NewManager(store, nil).Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoginStoresToken(t *testing.T) {
	store := mocks.NewMockTokenStore()
	m := NewManager(store, nil)
	a := &fakeAuthenticator{token: "abc"}

	require.NoError(t, m.Login(context.Background(), a, "  me@example.com ", "pw"))
	assert.Equal(t, "me@example.com", a.email)

	tok, err := m.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestLoginFailures(t *testing.T) {
	m := NewManager(mocks.NewMockTokenStore(), nil)

	assert.Error(t, m.Login(context.Background(), &fakeAuthenticator{token: "x"}, "", "pw"))
	assert.Error(t, m.Login(context.Background(), &fakeAuthenticator{token: "x"}, "me", ""))
	assert.Error(t, m.Login(context.Background(), &fakeAuthenticator{}, "me", "pw"))

	denied := errors.New("Invalid credentials")
	assert.ErrorIs(t, m.Login(context.Background(), &fakeAuthenticator{err: denied}, "me", "pw"), denied)
	assert.False(t, m.LoggedIn())
}

func TestLogout(t *testing.T) {
	store := mocks.NewMockTokenStore()
	store.Token = "abc"
	m := NewManager(store, nil)

	require.NoError(t, m.Logout())
	assert.False(t, m.LoggedIn())
	assert.NoError(t, m.Logout(), "second logout should succeed")
}

func TestTerminalPrompterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte("me@example.com\r\nsecret"), 0600))
	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	var out strings.Builder
	p := NewTerminalPrompter(in, &out)

	email, err := p.Prompt("Email: ")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", email)

	pw, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Equal(t, "Email: Password: ", out.String())

	_, err = p.Prompt("More: ")
	assert.Error(t, err)
}
