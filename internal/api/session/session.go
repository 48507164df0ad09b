// Package session carries the per-request identity and flash queue through
// the echo context, and owns the cookies that persist them between requests.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

const (
	// VisitorCookie identifies a browser, signed in or not. It keys the flash queue.
	VisitorCookie = "visitor"
	// SessionCookie holds the signed session token of a logged-in user.
	SessionCookie = "session"

	callerKey  = "session.caller"
	tokenKey   = "session.token"
	flashesKey = "session.flashes"
)

// Token identifies the session token presented with the current request.
type Token struct {
	ID        string
	ExpiresAt time.Time
}

// SetCaller attaches the resolved caller to the request.
func SetCaller(c echo.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the request's caller, or an anonymous one when the
// session middleware did not run.
func CallerFrom(c echo.Context) domain.Caller {
	caller, ok := c.Get(callerKey).(domain.Caller)
	if !ok {
		return domain.Anonymous()
	}
	return caller
}

func SetToken(c echo.Context, t Token) {
	c.Set(tokenKey, t)
}

func TokenFrom(c echo.Context) (Token, bool) {
	t, ok := c.Get(tokenKey).(Token)
	return t, ok
}

// SetSessionCookie stores the signed token in an HttpOnly cookie.
func SetSessionCookie(c echo.Context, s *ports.Session, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetVisitorCookie issues the long-lived visitor id.
func SetVisitorCookie(c echo.Context, visitorID string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     VisitorCookie,
		Value:    visitorID,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
