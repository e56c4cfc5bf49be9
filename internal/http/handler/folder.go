package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// GetRootFolder resolves the dataroom root. With no dataroom_id query the
// default dataroom is returned (created on first access); otherwise the given
// root folder.
func GetRootFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		root, err := svc.GetRoot(c.UserContext(), c.Query("dataroom_id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(root)
	}
}

// GetFolderContents returns one paginated view of a folder: breadcrumbs plus
// independently paged child folders and files.
func GetFolderContents(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := service.ContentsParams{}
		ok := true
		params.FolderPage, ok = queryInt(c, "folder_page", service.DefaultPage, ok)
		params.FolderPageSize, ok = queryInt(c, "folder_page_size", service.DefaultPageSize, ok)
		params.FilePage, ok = queryInt(c, "file_page", service.DefaultPage, ok)
		params.FilePageSize, ok = queryInt(c, "file_page_size", service.DefaultPageSize, ok)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", "pagination parameters must be integers")
		}

		contents, err := svc.Contents(c.UserContext(), c.Params("id"), params)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(contents)
	}
}

// queryInt parses an optional integer query parameter, falling back to def
// when absent. An explicit value is passed through untouched, even zero, so
// the service clamps it instead of silently substituting the default. The ok
// flag threads through multiple reads so one error check covers them all.
func queryInt(c *fiber.Ctx, key string, def int, ok bool) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, ok
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, ok
}

// CreateFolder creates a child folder under an existing parent.
func CreateFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if !parseBody(c, &req) {
			return nil
		}
		if req.ParentID == nil || *req.ParentID == "" {
			return writeError(c, fiber.StatusBadRequest, "PARENT_REQUIRED", "parent_id is required")
		}

		folder, err := svc.CreateFolder(c.UserContext(), *req.ParentID, req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(folder)
	}
}

// RenameFolder replaces a folder's name.
func RenameFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameRequest
		if !parseBody(c, &req) {
			return nil
		}

		folder, err := svc.Rename(c.UserContext(), c.Params("id"), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(folder)
	}
}

// DeleteFolder removes a non-root folder and its whole subtree.
func DeleteFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
