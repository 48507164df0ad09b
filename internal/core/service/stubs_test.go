package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) seed(username string, role domain.Role) *domain.User {
	u, err := r.Create(context.Background(), &domain.User{
		Username:  username,
		FirstName: "First-" + username,
		LastName:  "Last-" + username,
		Email:     username + "@example.com",
		Role:      role,
	})
	if err != nil {
		panic(err)
	}
	return u
}

// ---------------------------------------------------------------------------
// In-memory form repository
// ---------------------------------------------------------------------------

type stubFormRepo struct {
	byID      map[string]*domain.FormRecord
	order     []string
	nextID    int
	createErr error
	markErr   error
	// beforeMark runs inside MarkCompleted ahead of the conditional check.
	beforeMark func()
	completes  int
}

func newStubFormRepo() *stubFormRepo {
	return &stubFormRepo{byID: make(map[string]*domain.FormRecord)}
}

func cloneForm(f *domain.FormRecord) *domain.FormRecord {
	clone := *f
	return &clone
}

func (r *stubFormRepo) Create(_ context.Context, f *domain.FormRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	f.ID = fmt.Sprintf("f%d", r.nextID)
	r.byID[f.ID] = cloneForm(f)
	r.order = append(r.order, f.ID)
	return nil
}

func (r *stubFormRepo) FindByID(_ context.Context, id string) (*domain.FormRecord, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFormNotFound
	}
	return cloneForm(f), nil
}

func (r *stubFormRepo) List(_ context.Context, filter ports.FormFilter) ([]*domain.FormRecord, error) {
	var out []*domain.FormRecord
	for _, id := range r.order {
		f := r.byID[id]
		if filter.OwnerID != "" && f.OwnerID != filter.OwnerID {
			continue
		}
		if f.Completed != filter.Completed {
			continue
		}
		out = append(out, cloneForm(f))
	}
	return out, nil
}

// MarkCompleted mirrors the conditional update of the Mongo adapter.
func (r *stubFormRepo) MarkCompleted(_ context.Context, id, ownerID string, content domain.FormContent, at time.Time) error {
	if r.beforeMark != nil {
		r.beforeMark()
	}
	if r.markErr != nil {
		return r.markErr
	}
	f, ok := r.byID[id]
	if !ok || f.Completed || f.OwnerID != ownerID {
		return domain.ErrFormAlreadyCompleted
	}
	r.completes++
	return f.Complete(content, at)
}

// ---------------------------------------------------------------------------
// Photo store
// ---------------------------------------------------------------------------

type stubPhotoStore struct {
	keys      []string
	bodies    []string
	deleted   []string
	err       error
	deleteErr error
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubPhotoStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, _ := io.ReadAll(body)
	s.keys = append(s.keys, key)
	s.bodies = append(s.bodies, string(b))
	return key, nil
}
