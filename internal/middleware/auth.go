package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key the user identity is stored under.
const UserIDKey = "userID"

// RequireUser extracts the caller's opaque user identifier from the
// x-user-id header or, for form posts, the userId field. Requests without an
// identity are rejected before any handler runs.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("x-user-id")
		if userID == "" {
			userID = c.FormValue("userId")
		}

		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User authentication required",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID reads the identity stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDKey).(string); ok {
		return v
	}
	return ""
}
