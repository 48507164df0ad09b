package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/api/render"
	"github.com/foodforms/questionnaire/internal/api/session"
)

const (
	pathLogin     = "/"
	pathDashboard = "/dashboard/"
	pathUsers     = "/users/"
)

// renderPage renders a template with the caller and every queued flash message.
func renderPage(c echo.Context, name string, ctx map[string]any) error {
	if ctx == nil {
		ctx = map[string]any{}
	}
	page := render.Page{
		Caller:   session.CallerFrom(c),
		Messages: session.FlashesFrom(c).Drain(c.Request().Context()),
		Context:  ctx,
	}
	return c.Render(http.StatusOK, name, page)
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusFound, to)
}

func flashSuccess(c echo.Context, text string) {
	session.FlashesFrom(c).Success(c.Request().Context(), text)
}

func flashError(c echo.Context, text string) {
	session.FlashesFrom(c).Error(c.Request().Context(), text)
}
