package domain

import (
	"errors"
	"time"
)

// FormState is the lifecycle position of a questionnaire assignment.
// FormUnassigned is conceptual only: no record exists yet.
type FormState string

const (
	FormUnassigned FormState = "unassigned"
	FormAssigned   FormState = "assigned"
	FormCompleted  FormState = "completed"
)

var (
	ErrFormNotFound         = errors.New("no assigned form was found")
	ErrFormAlreadyCompleted = errors.New("this form has already been completed")
	ErrNotFormOwner         = errors.New("form belongs to another user")
)

// FormContent is everything the owner supplies when completing a form.
type FormContent struct {
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Telephone string    `json:"telephone" bson:"telephone"`
	Photo     string    `json:"photo" bson:"photo"`
	DOB       time.Time `json:"dob" bson:"dob"`
	Food      string    `json:"food" bson:"food"`
}

// FormRecord is one favourite-food questionnaire assigned to one user.
type FormRecord struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	AssignedBy  string      `json:"assigned_by,omitempty"`
	Content     FormContent `json:"content"`
	Completed   bool        `json:"completed"`
	AssignedAt  time.Time   `json:"assigned_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// NewAssignment builds a fresh record in the assigned state with empty content.
func NewAssignment(ownerID, assignedBy string, now time.Time) *FormRecord {
	return &FormRecord{
		OwnerID:    ownerID,
		AssignedBy: assignedBy,
		AssignedAt: now,
	}
}

func (f *FormRecord) State() FormState {
	if f == nil {
		return FormUnassigned
	}
	if f.Completed {
		return FormCompleted
	}
	return FormAssigned
}

// Complete writes the submitted content and moves the record to the
// completed state. A completed record never changes again.
func (f *FormRecord) Complete(content FormContent, now time.Time) error {
	if f.Completed {
		return ErrFormAlreadyCompleted
	}
	f.Content = content
	f.Completed = true
	f.CompletedAt = &now
	return nil
}
