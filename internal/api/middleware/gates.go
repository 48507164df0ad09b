package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/api/session"
)

const (
	DefaultAuthenticationMessage = "authentication failed!"
	DefaultAdministratorMessage  = "Unauthorized!"
)

type gate struct {
	message  string
	redirect string
}

// GateOption customises the rejection of a gate.
type GateOption func(*gate)

// WithMessage replaces the plain-text body of the rejection.
func WithMessage(msg string) GateOption {
	return func(g *gate) { g.message = msg }
}

// WithRedirect turns the rejection into a 302 to target.
func WithRedirect(target string) GateOption {
	return func(g *gate) { g.redirect = target }
}

// RequireAuthenticated rejects anonymous callers with 400 or a redirect.
func RequireAuthenticated(opts ...GateOption) echo.MiddlewareFunc {
	g := newGate(DefaultAuthenticationMessage, opts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.CallerFrom(c).IsAuthenticated() {
				return g.reject(c, http.StatusBadRequest)
			}
			return next(c)
		}
	}
}

// RequireAdministrator rejects non-administrators with 401 or a redirect.
// Apply it after RequireAuthenticated.
func RequireAdministrator(opts ...GateOption) echo.MiddlewareFunc {
	g := newGate(DefaultAdministratorMessage, opts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.CallerFrom(c).IsAdministrator() {
				return g.reject(c, http.StatusUnauthorized)
			}
			return next(c)
		}
	}
}

func newGate(defaultMessage string, opts []GateOption) *gate {
	g := &gate{message: defaultMessage}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gate) reject(c echo.Context, status int) error {
	if g.redirect != "" {
		return c.Redirect(http.StatusFound, g.redirect)
	}
	return c.String(status, g.message)
}
