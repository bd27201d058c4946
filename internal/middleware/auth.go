package middleware

import (
	"strings"

	"github.com/kgrubic/boston-energy/internal/auth"
	"github.com/kgrubic/boston-energy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "user_id"

// RequireAuth verifies the Bearer token and resolves its subject to a
// portfolio user id in Locals. Returns 401 with the standard error format
// on a missing, malformed or expired token.
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, auth.ErrMissingToken.Error())
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ParseToken(jwtSecret, raw)
		if err != nil {
			return response.Unauthorized(c, auth.ErrInvalidToken.Error())
		}

		c.Locals(userIDLocal, auth.ResolveUserID(claims.Subject))
		c.Locals("username", claims.Subject)
		return c.Next()
	}
}

// GetUserID returns the authenticated user id from Locals, or 0 when the
// request did not pass RequireAuth.
func GetUserID(c *fiber.Ctx) int {
	if id, ok := c.Locals(userIDLocal).(int); ok {
		return id
	}
	return 0
}
