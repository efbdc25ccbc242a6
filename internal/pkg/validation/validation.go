package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

var validate = newValidator()

// Struct validates v against its `validate` tags. Failures are returned as
// apperrors.ErrValidationFailed carrying one message per failing field.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatValidationError(fe))
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case TagCourseCode:
		return e.Field() + " must look like CS101"
	case TagUsername:
		return e.Field() + " may only contain lowercase letters, digits, '.', '_' and '-'"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
