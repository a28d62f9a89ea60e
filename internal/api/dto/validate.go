package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/filsox/store-api/pkg/util"
)

var validate = validator.New()

// Validate checks struct tags and converts violations into the API error
// shape.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(violations))
	for _, violation := range violations {
		details[violation.Field()] = violation.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}
