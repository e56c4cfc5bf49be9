package handler

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
)

// Request payloads with their validation rules. The core services assume
// validated shapes; everything here is boundary checking only.

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

func (r createFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (r renameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

type createDataroomRequest struct {
	Name string `json:"name"`
}

func (r createDataroomRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		// bcrypt truncates beyond 72 bytes
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// parseBody decodes and validates a JSON payload, writing the 400 response
// itself on failure. The bool reports whether the handler may proceed.
func parseBody(c *fiber.Ctx, dst interface{ Validate() error }) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON payload")
		return false
	}
	if err := dst.Validate(); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return false
	}
	return true
}
