package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports service and database health.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// LivenessProbe answers without touching any dependency.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	}
}
