package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models an account that can sign in and own form records.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name the way the dashboard prefills it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// DisplayName falls back to the username when no name was recorded.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName()); name != "" {
		return name
	}
	return u.Username
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
