package ports

import (
	"context"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// RegisterInput carries everything needed to provision an account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      domain.Role
}

// Session is the signed token handed to the browser after a login.
type Session struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, *domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// SessionRevocations remembers logged-out token ids until they expire.
type SessionRevocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
