package handler

import (
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// Search matches folder and file names by case-insensitive substring. A blank
// query returns empty lists.
func Search(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(result)
	}
}
