package ports

import (
	"context"
	"io"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// PhotoUpload is the image attached to a form submission.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CompleteFormInput is the already-validated content of a submission.
type CompleteFormInput struct {
	FormID    string
	Name      string
	Email     string
	Telephone string
	DOB       time.Time
	Food      string
	Photo     PhotoUpload
}

// FormPrefill is one outstanding assignment rendered on the user dashboard.
type FormPrefill struct {
	AssignedFormID string
	Name           string
	Email          string
	Telephone      string
	Food           string
}

// HistoryEntry is a completed record together with its owner's username.
type HistoryEntry struct {
	Record        *domain.FormRecord
	OwnerUsername string
}

// FormService defines the questionnaire use cases.
type FormService interface {
	AssignForm(ctx context.Context, caller domain.Caller, targetUserID string) (*domain.User, *domain.FormRecord, error)
	CompleteForm(ctx context.Context, caller domain.Caller, in CompleteFormInput) (*domain.FormRecord, error)
	PendingForms(ctx context.Context, caller domain.Caller) ([]FormPrefill, error)
	History(ctx context.Context, caller domain.Caller) ([]HistoryEntry, error)
	AssignableUsers(ctx context.Context) ([]*domain.User, error)
}
