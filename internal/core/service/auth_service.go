package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodforms/questionnaire/internal/pkg/metrics"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// AuthService implements account provisioning, login and logout.
type AuthService struct {
	repo       ports.UserRepository
	revoked    ports.SessionRevocations
	secret     string
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(repo ports.UserRepository, revoked ports.SessionRevocations, secret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		revoked:    revoked,
		secret:     secret,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role != domain.RoleUser && in.Role != domain.RoleAdministrator {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks the credentials and signs a fresh session token. Unknown
// usernames and wrong passwords both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Session, *domain.User, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return session, user, nil
}

// Logout revokes the token id for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) issueSession(user *domain.User) (*ports.Session, error) {
	tokenID := uuid.NewString()
	expiresAt := s.now().Add(s.sessionTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      tokenID,
		"exp":      expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &ports.Session{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}
