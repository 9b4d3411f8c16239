// Package validation is the single source of truth for feedback submission
// rules. Inputs are normalized (trimmed, email lower-cased) before the rules
// run, and every violating field is reported, not just the first.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/feedbacklens/feedback-backend/errors"
	"github.com/feedbacklens/feedback-backend/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the wire field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps field+tag to the human-readable message returned to the
// client.
var fieldMessages = map[string]string{
	"userName.required":     "User name is required",
	"userName.max":          "User name must be 100 characters or less",
	"email.required":        "Email is required",
	"email.email":           "Invalid email address",
	"email.max":             "Email must be 254 characters or less",
	"feedbackText.required": "Feedback text is required",
	"feedbackText.max":      "Feedback must be 2000 characters or less",
	"category.max":          "Category must be 50 characters or less",
}

// Normalize trims whitespace from all fields and lower-cases the email so
// distinct-submitter counts can compare stored values directly. Whitespace-only
// required fields become empty and fail the required rule.
func Normalize(req *types.FeedbackCreate) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FeedbackText = strings.TrimSpace(req.FeedbackText)
	req.Category = strings.TrimSpace(req.Category)
}

// Validate applies the submission rules to an already-normalized request and
// returns the full list of field violations. A nil result means the request
// is valid.
func Validate(req types.FeedbackCreate) []apperrors.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: msg})
	}
	return fields
}
