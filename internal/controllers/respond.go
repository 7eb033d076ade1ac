package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"portal-webbase/internal/apperrors"
)

// writeErr maps engine errors onto HTTP statuses. Business reasons pass
// through verbatim; anything unrecognized becomes an opaque 500 so store
// internals never leak to callers.
func writeErr(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperrors.IsConflict(err):
		var conflict *apperrors.ConflictError
		errors.As(err, &conflict)
		body := fiber.Map{"error": conflict.Reason}
		if len(conflict.Sections) > 0 {
			body["conflicting_sections"] = conflict.Sections
		}
		return c.Status(fiber.StatusConflict).JSON(body)
	case apperrors.IsAuth(err):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErrs.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "operation failed"})
	}
}
