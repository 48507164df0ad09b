package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodforms/questionnaire/internal/api/render"
	"github.com/foodforms/questionnaire/internal/api/session"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// stubRenderer records the last rendered page instead of executing templates.
type stubRenderer struct {
	name string
	page render.Page
}

func (r *stubRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(render.Page)
	_, err := io.WriteString(w, name)
	return err
}

type stubFlashStore struct {
	msgs []domain.FlashMessage
}

func (s *stubFlashStore) Push(_ context.Context, _ string, msg domain.FlashMessage) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *stubFlashStore) Drain(_ context.Context, _ string) ([]domain.FlashMessage, error) {
	out := s.msgs
	s.msgs = nil
	return out, nil
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (*ports.Session, *domain.User, error)
	logoutFn func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.Session, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

type stubFormService struct {
	assignFn     func(ctx context.Context, caller domain.Caller, targetUserID string) (*domain.User, *domain.FormRecord, error)
	completeFn   func(ctx context.Context, caller domain.Caller, in ports.CompleteFormInput) (*domain.FormRecord, error)
	pendingFn    func(ctx context.Context, caller domain.Caller) ([]ports.FormPrefill, error)
	historyFn    func(ctx context.Context, caller domain.Caller) ([]ports.HistoryEntry, error)
	assignableFn func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubFormService) AssignForm(ctx context.Context, caller domain.Caller, targetUserID string) (*domain.User, *domain.FormRecord, error) {
	return s.assignFn(ctx, caller, targetUserID)
}

func (s *stubFormService) CompleteForm(ctx context.Context, caller domain.Caller, in ports.CompleteFormInput) (*domain.FormRecord, error) {
	return s.completeFn(ctx, caller, in)
}

func (s *stubFormService) PendingForms(ctx context.Context, caller domain.Caller) ([]ports.FormPrefill, error) {
	return s.pendingFn(ctx, caller)
}

func (s *stubFormService) History(ctx context.Context, caller domain.Caller) ([]ports.HistoryEntry, error) {
	return s.historyFn(ctx, caller)
}

func (s *stubFormService) AssignableUsers(ctx context.Context) ([]*domain.User, error) {
	return s.assignableFn(ctx)
}

var (
	anonymous = domain.Anonymous()
	alice     = domain.Caller{UserID: "u1", Username: "alice", Role: domain.RoleUser}
	admin     = domain.Caller{UserID: "a1", Username: "admin", Role: domain.RoleAdministrator}
)

// testEnv is one request against a handler with the session already resolved.
type testEnv struct {
	e        *echo.Echo
	renderer *stubRenderer
	flashes  *stubFlashStore
}

func newTestEnv() *testEnv {
	e := echo.New()
	r := &stubRenderer{}
	e.Renderer = r
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	e.Validator = v
	return &testEnv{e: e, renderer: r, flashes: &stubFlashStore{}}
}

func (env *testEnv) request(req *http.Request, caller domain.Caller) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	session.SetCaller(c, caller)
	session.SetFlashes(c, session.NewFlashes(env.flashes, "visitor-1", zerolog.Nop()))
	return c, rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// multipartRequest builds a form submission; an empty filename omits the file part.
func multipartRequest(t *testing.T, target string, values map[string]string, filename string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("photo", filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = part.Write([]byte("\xff\xd8\xff\xe0fake-jpeg"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != to {
		t.Fatalf("expected redirect to %q, got %q", to, got)
	}
}

func assertText(t *testing.T, rec *httptest.ResponseRecorder, code int, body string) {
	t.Helper()
	if rec.Code != code || rec.Body.String() != body {
		t.Fatalf("expected %d %q, got %d %q", code, body, rec.Code, rec.Body.String())
	}
}

func (env *testEnv) assertFlash(t *testing.T, level domain.FlashLevel, text string) {
	t.Helper()
	for _, m := range env.flashes.msgs {
		if m.Level == level && m.Text == text {
			return
		}
	}
	t.Fatalf("flash %s %q not queued; have %+v", level, text, env.flashes.msgs)
}
