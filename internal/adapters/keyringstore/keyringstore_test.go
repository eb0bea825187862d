package keyringstore

import (
	"errors"
	"testing"

	"github.com/structuresh/structure/internal/ports"
	"github.com/zalando/go-keyring"
)

func TestKeyringStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := New()

	if _, err := store.Get(); !errors.Is(err, ports.ErrTokenNotFound) {
		t.Fatalf("Get on empty keyring = %v, expected ErrTokenNotFound", err)
	}

	if err := store.Set("tok-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	token, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, expected %q", token, "tok-123")
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(); !errors.Is(err, ports.ErrTokenNotFound) {
		t.Errorf("Get after Delete = %v, expected ErrTokenNotFound", err)
	}
}

func TestKeyringStoreDeleteMissing(t *testing.T) {
	keyring.MockInit()
	store := NewWithService("structure-test", "nobody")

	if err := store.Delete(); err != nil {
		t.Errorf("Delete of missing token should succeed, got %v", err)
	}
}
