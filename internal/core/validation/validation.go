// Package validation holds the field-level checks applied to a completed
// favourite-food questionnaire. Each check is a pure function returning a
// *ValidationError so callers can aggregate every failure of a submission.
package validation

import (
	"errors"
	"path/filepath"
	"regexp"
	"time"
)

const (
	MsgImageExtension = "Unsupported file extension (upload jpg or jpeg files)."
	MsgDateOfBirth    = "Date of birth needs to be in the past."
	MsgTelephone      = "Telephone is in wrong format."
	MsgDate           = "Enter a valid date."
)

// dateLayouts are the accepted input formats for a date field, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
}

var errInvalidDate = errors.New("invalid date")

var phonePattern = regexp.MustCompile(`^07\d{9}$`)

// allowedImageExtensions is matched case-sensitively: ".JPG" is rejected.
var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
}

// ValidationError describes a single failed field check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ImageExtension accepts only .jpg and .jpeg file names.
func ImageExtension(filename string) error {
	if _, ok := allowedImageExtensions[filepath.Ext(filename)]; !ok {
		return &ValidationError{Field: "photo", Message: MsgImageExtension}
	}
	return nil
}

// DateOfBirth rejects a birth date whose midnight, on the calendar of now's
// location, is after now. Only the year, month and day of dob are used, so
// today always passes and tomorrow always fails wherever the server runs.
func DateOfBirth(dob, now time.Time) error {
	midnight := time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, now.Location())
	if midnight.After(now) {
		return &ValidationError{Field: "dob", Message: MsgDateOfBirth}
	}
	return nil
}

// Telephone accepts "07" followed by exactly nine digits.
func Telephone(value string) error {
	if !phonePattern.MatchString(value) {
		return &ValidationError{Field: "telephone", Message: MsgTelephone}
	}
	return nil
}

// ParseDate reads a calendar date in any of the accepted layouts. The result
// is UTC midnight of that date; it carries a day, not an instant.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidDate
}
