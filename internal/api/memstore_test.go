package api

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// In-memory adapters behaving like the Mongo, Redis and MinIO ones.

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]domain.User
	nextID int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]domain.User)}
}

func (r *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := *user
	created.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[created.ID] = created
	return &created, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.User{}
	for _, u := range r.byID {
		if u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memForms struct {
	mu     sync.Mutex
	byID   map[string]domain.FormRecord
	order  []string
	nextID int
}

func newMemForms() *memForms {
	return &memForms{byID: make(map[string]domain.FormRecord)}
}

func (r *memForms) Create(_ context.Context, f *domain.FormRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = fmt.Sprintf("f%d", r.nextID)
	r.byID[f.ID] = *f
	r.order = append(r.order, f.ID)
	return nil
}

func (r *memForms) FindByID(_ context.Context, id string) (*domain.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFormNotFound
	}
	return &f, nil
}

func (r *memForms) List(_ context.Context, filter ports.FormFilter) ([]*domain.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.FormRecord{}
	for _, id := range r.order {
		f := r.byID[id]
		if f.Completed != filter.Completed {
			continue
		}
		if filter.OwnerID != "" && f.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, &f)
	}
	return out, nil
}

func (r *memForms) MarkCompleted(_ context.Context, id, ownerID string, content domain.FormContent, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return domain.ErrFormNotFound
	}
	if f.Completed || f.OwnerID != ownerID {
		return domain.ErrFormAlreadyCompleted
	}
	if err := f.Complete(content, at); err != nil {
		return err
	}
	r.byID[id] = f
	return nil
}

// pendingIDs returns the outstanding record ids of ownerID in assignment order.
func (r *memForms) pendingIDs(ownerID string) []string {
	recs, _ := r.List(context.Background(), ports.FormFilter{OwnerID: ownerID})
	ids := make([]string, 0, len(recs))
	for _, f := range recs {
		ids = append(ids, f.ID)
	}
	return ids
}

type memPhotos struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func (p *memPhotos) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.objs == nil {
		p.objs = make(map[string][]byte)
	}
	p.objs[key] = data
	return key, nil
}

func (p *memPhotos) Delete(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.objs, key)
	return nil
}

type memFlashes struct {
	mu     sync.Mutex
	queues map[string][]domain.FlashMessage
}

func (f *memFlashes) Push(_ context.Context, visitorID string, msg domain.FlashMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queues == nil {
		f.queues = make(map[string][]domain.FlashMessage)
	}
	f.queues[visitorID] = append(f.queues[visitorID], msg)
	return nil
}

func (f *memFlashes) Drain(_ context.Context, visitorID string) ([]domain.FlashMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.queues[visitorID]
	delete(f.queues, visitorID)
	return msgs, nil
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *memRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = make(map[string]time.Time)
	}
	r.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (r *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}
