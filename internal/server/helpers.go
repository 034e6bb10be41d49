package server

import (
	"coblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// decodeInput parses the request body into dst. An empty body is accepted so
// procedures with fully optional input can be called without a payload.
func decodeInput(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// requireID rejects the zero id before it reaches the database.
func requireID(id uint, label string) error {
	if id == 0 {
		return models.NewValidationError("Invalid " + label)
	}
	return nil
}
