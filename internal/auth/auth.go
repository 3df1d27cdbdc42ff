// Package auth handles user registration and login. Credentials live
// in the same SQLite store as the ledger; passwords are stored as
// bcrypt hashes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"finman/internal/core"
	"finman/internal/log"
	"finman/internal/storage"
)

var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrShortPassword = errors.New("password must be at least 4 characters long")
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers unknown usernames and wrong
	// passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Session identifies the authenticated owner. It is an explicit value
// passed into every core call; there is no process-global current user.
type Session struct {
	UserID   int64
	Username string
}

type Service struct {
	store  *storage.Store
	logger *log.Logger
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store, logger: log.ForComponent(log.ComponentAuth)}
}

// Register creates a new user. Usernames are trimmed and lowercased
// before the uniqueness check.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return ErrEmptyUsername
	}
	if len(password) < 4 {
		return ErrShortPassword
	}

	_, err := s.store.UserByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	id, err := s.store.CreateUser(ctx, username, string(hash))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", "username", username, log.FieldOwner, id)
	return nil
}

// Login verifies credentials and returns a session for the owner.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.store.UserByUsername(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	s.logger.DebugContext(ctx, "Login succeeded", "username", user.Username, log.FieldOwner, user.ID)
	return Session{UserID: user.ID, Username: user.Username}, nil
}
