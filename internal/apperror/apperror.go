// Package apperror defines the error taxonomy shared by services and the
// HTTP layer. Controllers map codes to statuses; services never return raw
// storage errors to callers.
package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodePermissionDenied     Code = "PERMISSION_DENIED"
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED"
	CodeIndexUnavailable     Code = "INDEX_UNAVAILABLE"
	CodeAuditUnavailable     Code = "AUDIT_UNAVAILABLE"
	CodeDescriptorNotFound   Code = "DESCRIPTOR_NOT_FOUND"
	CodeValidation           Code = "VALIDATION_ERROR"
)

type Error struct {
	Code    Code
	Reason  string // machine-readable detail (deny reason, field name)
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// As extracts an *Error from err, or nil.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func PermissionDenied(reason string) *Error {
	return &Error{
		Code:    CodePermissionDenied,
		Reason:  reason,
		Message: "permission denied",
	}
}

func AuthenticationFailed() *Error {
	return &Error{
		Code:    CodeAuthenticationFailed,
		Message: "invalid credentials",
	}
}

func IndexUnavailable(err error) *Error {
	return &Error{
		Code:    CodeIndexUnavailable,
		Message: "vector index could not be queried",
		Err:     err,
	}
}

func AuditUnavailable(err error) *Error {
	return &Error{
		Code:    CodeAuditUnavailable,
		Message: "audit sink unavailable",
		Err:     err,
	}
}

func DescriptorNotFound(documentId string) *Error {
	return &Error{
		Code:    CodeDescriptorNotFound,
		Reason:  documentId,
		Message: "document descriptor not found",
	}
}

func ValidationError(field string) *Error {
	return &Error{
		Code:    CodeValidation,
		Reason:  field,
		Message: fmt.Sprintf("invalid value for %s", field),
	}
}
