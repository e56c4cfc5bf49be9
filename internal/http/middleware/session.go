package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"dataroom/internal/config"
)

const (
	// SessionCookie is the name of the session cookie.
	SessionCookie = "dataroom_session"
	// SessionUserLocalKey is the key used to store the authenticated user ID
	// in Fiber's context locals.
	SessionUserLocalKey = "session_user_id"
)

// Session issues and verifies the signed session cookie. The cookie value is
// an HS256 JWT carrying only the user ID and expiry; no server-side session
// store is needed.
type Session struct {
	secret []byte
	ttl    time.Duration
}

// NewSession creates a Session from config.
func NewSession(cfg config.SessionConfig) *Session {
	return &Session{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TTLMinutes) * time.Minute,
	}
}

// Issue sets a fresh session cookie for the user on the response.
func (s *Session) Issue(c *fiber.Ctx, userID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  now.Add(s.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

// Clear expires the session cookie.
func (s *Session) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// UserID returns the authenticated user ID stored by Required, or "".
func (s *Session) UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionUserLocalKey).(string)
	return id
}

// verify parses and validates the token, returning the subject.
func (s *Session) verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return claims.Subject, nil
}

// Required gates a route on a valid session. On success the user ID is
// stored in context locals; otherwise the request fails with 401 through the
// app's error handler.
func (s *Session) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		userID, err := s.verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid session")
		}
		c.Locals(SessionUserLocalKey, userID)
		return c.Next()
	}
}
