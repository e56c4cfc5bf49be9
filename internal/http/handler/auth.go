package handler

import (
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/http/middleware"
	"dataroom/internal/service"
)

// Register creates an account and signs the caller in immediately.
func Register(svc service.AuthService, sess *middleware.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if !parseBody(c, &req) {
			return nil
		}

		user, err := svc.Register(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		if err := sess.Issue(c, user.ID); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials and sets the session cookie.
func Login(svc service.AuthService, sess *middleware.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if !parseBody(c, &req) {
			return nil
		}

		user, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		if err := sess.Issue(c, user.ID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(user)
	}
}

// Logout clears the session cookie. Always succeeds, signed in or not.
func Logout(sess *middleware.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess.Clear(c)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the signed-in account. Runs behind Session.Required, so a
// missing user means the account was deleted after the token was issued.
func Me(svc service.AuthService, sess *middleware.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.GetUser(c.UserContext(), sess.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(user)
	}
}
