package serverutils

import (
	"docvault-rag-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps the apperror taxonomy onto HTTP statuses with the
// standard response envelope. Unrecognised errors become a 500 without
// leaking the internal message.
func RespondError(ctx *fiber.Ctx, err error) error {
	appErr := apperror.As(err)
	if appErr == nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": "internal server error",
		})
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case apperror.CodePermissionDenied:
		status = fiber.StatusForbidden
	case apperror.CodeAuthenticationFailed:
		status = fiber.StatusUnauthorized
	case apperror.CodeDescriptorNotFound:
		status = fiber.StatusNotFound
	case apperror.CodeValidation:
		status = fiber.StatusBadRequest
	case apperror.CodeIndexUnavailable, apperror.CodeAuditUnavailable:
		status = fiber.StatusServiceUnavailable
	}

	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    status,
		"message": appErr.Message,
		"error":   fiber.Map{"code": appErr.Code, "reason": appErr.Reason},
	})
}

// RespondOK wraps data in the standard success envelope.
func RespondOK(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	})
}
