package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/clinic-directory/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate runs struct-tag validation and maps failures to a VALIDATION_ERROR
// with per-field details. A fresh error is built each time so the shared
// sentinel is never mutated.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	appErr := errors.New(
		errors.ErrValidation.Code,
		errors.ErrValidation.Message,
		errors.ErrValidation.StatusCode,
	)

	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			appErr.Details[fe.Field()] = "failed on '" + fe.Tag() + "' rule"
		}
	}

	return appErr
}

// GetValidator exposes the shared validator for custom configuration.
func GetValidator() *validator.Validate {
	return validate
}
