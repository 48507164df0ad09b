package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/foodforms/questionnaire/internal/core/validation"
)

const (
	msgRequired = "This field is required."
	msgEmail    = "Enter a valid email address."
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in tags it understands ukmobile, jpegext, dateinput and pastdate.
func NewValidator() *echoValidator {
	ev := &echoValidator{v: validator.New(), now: time.Now}

	ev.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = ev.v.RegisterValidation("ukmobile", func(fl validator.FieldLevel) bool {
		return validation.Telephone(fl.Field().String()) == nil
	})
	_ = ev.v.RegisterValidation("jpegext", func(fl validator.FieldLevel) bool {
		return validation.ImageExtension(fl.Field().String()) == nil
	})
	_ = ev.v.RegisterValidation("dateinput", func(fl validator.FieldLevel) bool {
		_, err := validation.ParseDate(fl.Field().String())
		return err == nil
	})
	// pastdate leaves unparseable input to dateinput.
	_ = ev.v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		dob, err := validation.ParseDate(fl.Field().String())
		if err != nil {
			return true
		}
		return validation.DateOfBirth(dob, ev.now()) == nil
	})

	return ev
}

// FieldErrors is every failed field of a submission, in struct order.
type FieldErrors []validation.ValidationError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate satisfies the echo.Validator interface. Validation failures come
// back as FieldErrors.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(FieldErrors, 0, len(ve))
			for _, fe := range ve {
				out = append(out, validation.ValidationError{Field: fe.Field(), Message: fieldError(fe)})
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "ukmobile":
		return validation.MsgTelephone
	case "jpegext":
		return validation.MsgImageExtension
	case "dateinput":
		return validation.MsgDate
	case "pastdate":
		return validation.MsgDateOfBirth
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
