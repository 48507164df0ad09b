package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/foodforms/questionnaire/internal/api/session"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// SessionConfig wires the session middleware to its stores.
type SessionConfig struct {
	Skipper     echomiddleware.Skipper
	Secret      string
	Revocations ports.SessionRevocations
	Flashes     ports.FlashStore
	Secure      bool
	Log         zerolog.Logger
}

// Session resolves the caller from the session cookie and attaches the
// visitor's flash queue. It never rejects a request; gates do that.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			visitorID := visitorID(c)
			if visitorID == "" {
				visitorID = uuid.NewString()
				session.SetVisitorCookie(c, visitorID, cfg.Secure)
			}
			session.SetFlashes(c, session.NewFlashes(cfg.Flashes, visitorID, cfg.Log))

			caller := domain.Anonymous()
			if ck, err := c.Cookie(session.SessionCookie); err == nil && ck.Value != "" {
				if resolved, token, ok := resolveSession(c, cfg, ck.Value); ok {
					caller = resolved
					session.SetToken(c, token)
				}
			}
			session.SetCaller(c, caller)

			return next(c)
		}
	}
}

func visitorID(c echo.Context) string {
	ck, err := c.Cookie(session.VisitorCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(ck.Value); err != nil {
		return ""
	}
	return ck.Value
}

// resolveSession validates the token signature, expiry and revocation state.
func resolveSession(c echo.Context, cfg SessionConfig, raw string) (domain.Caller, session.Token, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Caller{}, session.Token{}, false
	}

	sub, _ := claims.GetSubject()
	exp, _ := claims.GetExpirationTime()
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	tokenID, _ := claims["jti"].(string)

	caller := domain.Caller{UserID: sub, Username: username, Role: domain.ParseRole(role)}
	if !caller.IsAuthenticated() || tokenID == "" || exp == nil {
		return domain.Caller{}, session.Token{}, false
	}

	if cfg.Revocations != nil {
		revoked, err := cfg.Revocations.IsRevoked(c.Request().Context(), tokenID)
		if err != nil {
			cfg.Log.Warn().Err(err).Msg("revocation check failed, treating session as anonymous")
			return domain.Caller{}, session.Token{}, false
		}
		if revoked {
			return domain.Caller{}, session.Token{}, false
		}
	}

	return caller, session.Token{ID: tokenID, ExpiresAt: exp.Time}, true
}
