package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hirevision/interview-api/internal/apperr"
)

// errorResponse maps a domain error onto the API's {error} JSON shape.
func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
