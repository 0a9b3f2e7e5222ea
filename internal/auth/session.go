// Package auth signs listeners in. Sign-in failures are reported as a false
// result and logged; they never abort the flow.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingAPIKey      = errors.New("firebase API key required: set FIREBASE_API_KEY or run 'curate config set-key firebase'")
)

// User is a signed-in account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	IDToken      string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Provider verifies email credentials.
type Provider interface {
	SignInWithEmail(ctx context.Context, email, password string) (*User, error)
}

// Session tracks the current user. It is safe for concurrent use.
type Session struct {
	provider Provider
	logger   *slog.Logger

	mu   sync.Mutex
	user *User
}

func NewSession(provider Provider, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{provider: provider, logger: logger}
}

// SignInWithEmail returns true and replaces the current user on success.
func (s *Session) SignInWithEmail(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		s.logger.Warn("email sign-in skipped", "reason", "empty email or password")
		return false
	}

	user, err := s.provider.SignInWithEmail(ctx, email, password)
	if err != nil {
		s.logger.Error("email sign-in failed", "email", email, "error", err)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("signed in", "provider", "email", "user", user.ID)

	return true
}

// SignInWithGoogle needs a browser redirect, which a terminal session cannot
// complete.
func (s *Session) SignInWithGoogle(_ context.Context) bool {
	s.logger.Warn("google sign-in unavailable", "reason", "requires a browser redirect")
	return false
}

// SignOut clears the current user. It reports whether someone was signed in.
func (s *Session) SignOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return false
	}

	s.logger.Info("signed out", "user", s.user.ID)
	s.user = nil

	return true
}

// CurrentUser returns a copy of the signed-in user.
func (s *Session) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}

	return *s.user, true
}
