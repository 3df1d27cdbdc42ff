package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finman/internal/storage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "finman.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "Alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Usernames are lowercased, so login with any casing works.
	session, err := svc.Login(ctx, "ALICE", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Username != "alice" || session.UserID == 0 {
		t.Errorf("session = %+v", session)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"empty username", "", "secret", ErrEmptyUsername},
		{"blank username", "   ", "secret", ErrEmptyUsername},
		{"short password", "bob", "abc", ErrShortPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Register(ctx, tc.username, tc.password); !errors.Is(err, tc.want) {
				t.Errorf("Register = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Register(ctx, " Alice ", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate Register = %v, want %v", err, ErrUsernameTaken)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown user and wrong password yield the same error, so callers
	// cannot probe for registered usernames.
	if _, err := svc.Login(ctx, "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("empty credentials = %v, want %v", err, ErrInvalidCredentials)
	}
}
