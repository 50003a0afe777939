package serverutils

import (
	"strings"

	"docvault-rag-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into the shared validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return apperror.ValidationError(strings.ToLower(fieldErrs[0].Field()))
	}
	return apperror.ValidationError("request")
}
