package middleware

import (
	"strings"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/gofiber/fiber/v2"
)

// userKey is the Locals key the authenticated user is stored under.
const userKey = "current_user"

// RequireAuth resolves the bearer token from the Authorization header and
// loads the owning user into the request context. Accepts both
// "Token <key>" (the original client convention) and "Bearer <key>".
func RequireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication credentials were not provided",
		})
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || (parts[0] != "Token" && parts[0] != "Bearer") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid authorization header",
		})
	}

	var token models.AuthToken
	err := database.GetDB().Preload("User").First(&token, "key = ?", parts[1]).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid token",
		})
	}

	c.Locals(userKey, &token.User)
	return c.Next()
}

// RequireStaff rejects non-admin users. Must run after RequireAuth.
func RequireStaff(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || !user.IsStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Admin access required",
		})
	}
	return c.Next()
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// SetCurrentUser injects a user directly. Test helper.
func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(userKey, user)
}
