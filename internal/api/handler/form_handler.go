package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/pkg/metrics"
	"github.com/foodforms/questionnaire/internal/api/session"
	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
	"github.com/foodforms/questionnaire/internal/core/validation"
)

const (
	msgUserNotFound       = "User not found"
	msgUserIDRequired     = "user id is required"
	msgFormIDRequired     = "form id is required!"
	msgFormNotFound       = "No assigned form was found!"
	msgFormCompleted      = "This form has already been completed!"
	msgNotOwner           = "Unauthorized!"
	msgFormCompletedOK    = "You have successfully completed the form."
	msgFormsAssignedTempl = "Forms were successfully assigned to %s."
)

// FormHandler serves the dashboard, assignment, completion and history pages.
type FormHandler struct {
	forms ports.FormService
}

func NewFormHandler(forms ports.FormService) *FormHandler {
	return &FormHandler{forms: forms}
}

// Dashboard renders the administrator dashboard or the caller's pending forms.
//
// @Summary      Dashboard
// @Tags         forms
// @Produce      html
// @Success      200
// @Router       /dashboard/ [get]
func (h *FormHandler) Dashboard(c echo.Context) error {
	caller := session.CallerFrom(c)
	if caller.IsAdministrator() {
		return renderPage(c, "admin_dashboard.html", nil)
	}

	forms, err := h.forms.PendingForms(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return renderPage(c, "user_dashboard.html", map[string]any{"forms": forms})
}

// Users lists every regular user so forms can be assigned to them.
//
// @Summary      List users
// @Tags         forms
// @Produce      html
// @Success      200
// @Failure      401  {string}  string  "Unauthorized!"
// @Router       /users/ [get]
func (h *FormHandler) Users(c echo.Context) error {
	users, err := h.forms.AssignableUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return renderPage(c, "users.html", map[string]any{"user_instances": users})
}

// Assign creates an empty questionnaire for the user in the path.
//
// @Summary      Assign a form
// @Tags         forms
// @Produce      plain
// @Param        userId  path  string  true  "User id"
// @Success      302
// @Failure      400  {string}  string  "User not found"
// @Failure      401  {string}  string  "Unauthorized!"
// @Router       /assign-forms/{userId} [post]
func (h *FormHandler) Assign(c echo.Context) error {
	userID := c.Param("userId")
	// echo does not route an empty :userId; this guards direct use.
	if userID == "" {
		return c.String(http.StatusBadRequest, msgUserIDRequired)
	}

	user, _, err := h.forms.AssignForm(c.Request().Context(), session.CallerFrom(c), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.String(http.StatusBadRequest, msgUserNotFound)
		}
		return err
	}

	flashSuccess(c, fmt.Sprintf(msgFormsAssignedTempl, user.Username))
	return redirect(c, pathUsers)
}

// Complete validates a submission and completes the assigned form.
//
// @Summary      Complete a form
// @Tags         forms
// @Accept       multipart/form-data
// @Produce      plain
// @Param        formId     path      string  true  "Form id"
// @Param        name       formData  string  true  "Name"
// @Param        email      formData  string  true  "Email"
// @Param        telephone  formData  string  true  "Telephone (07xxxxxxxxx)"
// @Param        dob        formData  string  true  "Date of birth (YYYY-MM-DD)"
// @Param        food       formData  string  true  "Favourite food"
// @Param        photo      formData  file    true  "Photo (.jpg or .jpeg)"
// @Success      302
// @Failure      400  {string}  string  "No assigned form was found!"
// @Failure      401  {string}  string  "Unauthorized!"
// @Router       /complete-forms/{formId} [post]
func (h *FormHandler) Complete(c echo.Context) error {
	formID := c.Param("formId")
	// echo does not route an empty :formId; this guards direct use.
	if formID == "" {
		return c.String(http.StatusBadRequest, msgFormIDRequired)
	}

	var req completeFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	file, err := c.FormFile("photo")
	if err != nil {
		req.Photo = ""
	} else {
		req.Photo = file.Filename
	}

	if err := c.Validate(&req); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		metrics.FormCompletionRejectedTotal.WithLabelValues("validation").Inc()
		flashError(c, fe.Error())
		return redirect(c, pathDashboard)
	}
	dob, _ := validation.ParseDate(req.DOB)

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer src.Close()

	_, err = h.forms.CompleteForm(c.Request().Context(), session.CallerFrom(c), ports.CompleteFormInput{
		FormID:    formID,
		Name:      req.Name,
		Email:     req.Email,
		Telephone: req.Telephone,
		DOB:       dob,
		Food:      req.Food,
		Photo: ports.PhotoUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get(echo.HeaderContentType),
			Size:        file.Size,
			Body:        src,
		},
	})
	switch {
	case errors.Is(err, domain.ErrFormNotFound):
		return c.String(http.StatusBadRequest, msgFormNotFound)
	case errors.Is(err, domain.ErrFormAlreadyCompleted):
		return c.String(http.StatusBadRequest, msgFormCompleted)
	case errors.Is(err, domain.ErrNotFormOwner):
		return c.String(http.StatusUnauthorized, msgNotOwner)
	case err != nil:
		return err
	}

	flashSuccess(c, msgFormCompletedOK)
	return redirect(c, pathDashboard)
}

// History lists completed forms: every one for an administrator, the
// caller's own otherwise.
//
// @Summary      Completed forms
// @Tags         forms
// @Produce      html
// @Success      200
// @Router       /history/ [get]
func (h *FormHandler) History(c echo.Context) error {
	foods, err := h.forms.History(c.Request().Context(), session.CallerFrom(c))
	if err != nil {
		return err
	}
	return renderPage(c, "history.html", map[string]any{"foods": foods})
}
