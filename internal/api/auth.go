package api

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth checks the Authorization header against the configured
// token before any pipeline work happens. Scheme or token mismatch is
// rejected with 401.
func BearerAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, value, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return unauthorized(c, "invalid authentication scheme, expected 'Bearer'")
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(value)), []byte(token)) != 1 {
			return unauthorized(c, "invalid API token")
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
