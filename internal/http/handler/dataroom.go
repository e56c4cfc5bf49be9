package handler

import (
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// ListDatarooms returns every dataroom root.
func ListDatarooms(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roots, err := svc.ListRoots(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"datarooms": roots})
	}
}

// CreateDataroom creates a new independent dataroom root.
func CreateDataroom(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDataroomRequest
		if !parseBody(c, &req) {
			return nil
		}

		root, err := svc.CreateRoot(c.UserContext(), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(root)
	}
}
