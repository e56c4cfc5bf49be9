package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// UploadFile accepts one multipart PDF under the "upload" field and stores it
// in the folder named by the folder_id query parameter.
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Query("folder_id")
		if folderID == "" {
			return writeError(c, fiber.StatusBadRequest, "FOLDER_REQUIRED", "folder_id query parameter is required")
		}

		fh, err := c.FormFile("upload")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded under field 'upload'")
		}

		src, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_UNREADABLE", "uploaded file could not be read")
		}
		defer src.Close()

		file, err := svc.Upload(c.UserContext(), folderID, src, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// GetFile returns a file's metadata.
func GetFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(file)
	}
}

// DownloadFile streams the file's bytes as an attachment. A record whose blob
// has gone missing yields 410.
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, file, err := svc.Download(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentType, file.MimeType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
		return c.SendStream(rc, int(file.SizeBytes))
	}
}

// RenameFile replaces a file's display name; the stored blob is untouched.
func RenameFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameRequest
		if !parseBody(c, &req) {
			return nil
		}

		file, err := svc.Rename(c.UserContext(), c.Params("id"), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(file)
	}
}

// DeleteFile removes the blob and the record.
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
