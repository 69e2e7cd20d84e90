package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness.
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
