package ports

import (
	"context"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListByRole returns every user holding role, ordered by username.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
