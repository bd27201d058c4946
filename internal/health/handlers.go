package health

import (
	"github.com/gofiber/fiber/v2"
)

// OK GET /api/health
func OK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
