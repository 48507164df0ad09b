package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foodforms/questionnaire/internal/pkg/metrics"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

type FormService struct {
	forms  ports.FormRepository
	users  ports.UserRepository
	photos ports.PhotoStore
	log    zerolog.Logger
	now    func() time.Time
}

func NewFormService(forms ports.FormRepository, users ports.UserRepository, photos ports.PhotoStore, log zerolog.Logger) *FormService {
	return &FormService{
		forms:  forms,
		users:  users,
		photos: photos,
		log:    log,
		now:    time.Now,
	}
}

// AssignForm creates an empty questionnaire owned by targetUserID.
func (s *FormService) AssignForm(ctx context.Context, caller domain.Caller, targetUserID string) (*domain.User, *domain.FormRecord, error) {
	target, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, nil, err
	}

	record := domain.NewAssignment(target.ID, caller.UserID, s.now().UTC())
	if err := s.forms.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("user_id", target.ID).Msg("failed to assign form")
		return nil, nil, fmt.Errorf("assign form: %w", err)
	}

	metrics.FormsAssignedTotal.Inc()
	s.log.Info().
		Str("form_id", record.ID).
		Str("owner", target.Username).
		Str("assigned_by", caller.Username).
		Msg("form assigned")

	return target, record, nil
}

// CompleteForm moves an assigned record owned by the caller to the completed
// state. Existence is checked before the completed flag, and the completed
// flag before ownership.
func (s *FormService) CompleteForm(ctx context.Context, caller domain.Caller, in ports.CompleteFormInput) (*domain.FormRecord, error) {
	record, err := s.forms.FindByID(ctx, in.FormID)
	if err != nil {
		s.reject(err)
		return nil, err
	}
	if record.Completed {
		s.reject(domain.ErrFormAlreadyCompleted)
		return nil, domain.ErrFormAlreadyCompleted
	}
	if !caller.Owns(record) {
		s.reject(domain.ErrNotFormOwner)
		return nil, domain.ErrNotFormOwner
	}

	photoKey, err := s.photos.Put(ctx, photoKey(record.ID, in.Photo.Filename), in.Photo.Body, in.Photo.Size, in.Photo.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	content := domain.FormContent{
		Name:      in.Name,
		Email:     in.Email,
		Telephone: in.Telephone,
		Photo:     photoKey,
		DOB:       in.DOB,
		Food:      in.Food,
	}
	now := s.now().UTC()
	if err := s.forms.MarkCompleted(ctx, record.ID, caller.UserID, content, now); err != nil {
		s.discardPhoto(ctx, record.ID, photoKey)
		s.reject(err)
		return nil, err
	}
	// record was read in the assigned state above, so this cannot fail.
	_ = record.Complete(content, now)

	metrics.FormsCompletedTotal.Inc()
	s.log.Info().Str("form_id", record.ID).Str("owner", caller.Username).Msg("form completed")
	return record, nil
}

// PendingForms lists the caller's outstanding assignments, each prefilled
// with the caller's own name and email.
func (s *FormService) PendingForms(ctx context.Context, caller domain.Caller) ([]ports.FormPrefill, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	records, err := s.forms.List(ctx, ports.FormFilter{OwnerID: user.ID, Completed: false})
	if err != nil {
		return nil, fmt.Errorf("list pending forms: %w", err)
	}

	prefills := make([]ports.FormPrefill, 0, len(records))
	for _, r := range records {
		prefills = append(prefills, ports.FormPrefill{
			AssignedFormID: r.ID,
			Name:           user.FullName(),
			Email:          user.Email,
			Telephone:      r.Content.Telephone,
			Food:           r.Content.Food,
		})
	}
	return prefills, nil
}

// History returns completed records: all of them for an administrator, only
// the caller's own otherwise.
func (s *FormService) History(ctx context.Context, caller domain.Caller) ([]ports.HistoryEntry, error) {
	filter := ports.FormFilter{Completed: true}
	if !caller.IsAdministrator() {
		filter.OwnerID = caller.UserID
	}

	records, err := s.forms.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	owners := make(map[string]string)
	entries := make([]ports.HistoryEntry, 0, len(records))
	for _, r := range records {
		name, ok := owners[r.OwnerID]
		if !ok {
			name = s.ownerName(ctx, r.OwnerID)
			owners[r.OwnerID] = name
		}
		entries = append(entries, ports.HistoryEntry{Record: r, OwnerUsername: name})
	}
	return entries, nil
}

func (s *FormService) AssignableUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *FormService) ownerName(ctx context.Context, id string) string {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("history owner lookup failed")
		return ""
	}
	return u.Username
}

// discardPhoto removes an upload whose record was never written. It runs even
// when the request context is already cancelled.
func (s *FormService) discardPhoto(ctx context.Context, formID, key string) {
	if err := s.photos.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn().Err(err).Str("form_id", formID).Str("photo", key).Msg("failed to delete orphaned photo")
	}
}

func (s *FormService) reject(err error) {
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrFormNotFound):
		reason = "not_found"
	case errors.Is(err, domain.ErrFormAlreadyCompleted):
		reason = "already_completed"
	case errors.Is(err, domain.ErrNotFormOwner):
		reason = "not_owner"
	}
	metrics.FormCompletionRejectedTotal.WithLabelValues(reason).Inc()
}

// photoKey returns uploads/<formID>-<uuid><ext>.
func photoKey(formID, filename string) string {
	return fmt.Sprintf("uploads/%s-%s%s", formID, uuid.NewString(), filepath.Ext(filename))
}
