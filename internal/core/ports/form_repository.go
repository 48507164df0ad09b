package ports

import (
	"context"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// FormFilter narrows a form record listing.
type FormFilter struct {
	OwnerID   string // empty = every owner
	Completed bool
}

// FormRepository defines persistence operations for form records.
type FormRepository interface {
	Create(ctx context.Context, f *domain.FormRecord) error
	FindByID(ctx context.Context, id string) (*domain.FormRecord, error)
	List(ctx context.Context, filter FormFilter) ([]*domain.FormRecord, error)
	// MarkCompleted writes content and flips completed in one conditional
	// update. It returns domain.ErrFormAlreadyCompleted when the record is no
	// longer in the assigned state or is not owned by ownerID.
	MarkCompleted(ctx context.Context, id, ownerID string, content domain.FormContent, at time.Time) error
}
