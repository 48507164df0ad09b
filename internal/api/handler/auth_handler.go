package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/api/session"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

const (
	msgInvalidCredentials = "Invalid credentials!"
	msgLoggedIn           = "You Have Been Logged In!"
	msgLoggedOut          = "You Have Been Logged Out!"
)

type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// LoginPage renders the login form, or sends a signed-in caller to the dashboard.
//
// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200
// @Success      302
// @Router       / [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if session.CallerFrom(c).IsAuthenticated() {
		return redirect(c, pathDashboard)
	}
	return renderPage(c, "login.html", nil)
}

// Login authenticates the posted credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Router       / [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if session.CallerFrom(c).IsAuthenticated() {
		return redirect(c, pathDashboard)
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		flashError(c, msgInvalidCredentials)
		return redirect(c, pathLogin)
	}

	sess, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return err
		}
		flashError(c, msgInvalidCredentials)
		return redirect(c, pathLogin)
	}

	session.SetSessionCookie(c, sess, h.secureCookies)
	flashSuccess(c, msgLoggedIn)
	return redirect(c, pathDashboard)
}

// Logout revokes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      plain
// @Success      302
// @Failure      400  {string}  string  "authentication failed!"
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if tok, ok := session.TokenFrom(c); ok {
		if err := h.authService.Logout(c.Request().Context(), tok.ID, tok.ExpiresAt); err != nil {
			return err
		}
	}

	session.ClearSessionCookie(c, h.secureCookies)
	flashSuccess(c, msgLoggedOut)
	return c.Redirect(http.StatusFound, pathLogin)
}
