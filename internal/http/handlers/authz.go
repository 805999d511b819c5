package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "stripledger/internal/log"
	"stripledger/internal/services"
)

// RequireUser validates the Bearer access token and stashes the claims.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return jsonErr(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := auth.Validate(parts[1])
		if err != nil || claims.TokenType != "ACCESS" {
			applog.Security(c, "auth.token.invalid", nil)
			return jsonErr(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireAdmin gates destructive routes; run after RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != "ADMIN" {
			applog.Security(c, "access.denied.admin", nil)
			return jsonErr(c, fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}
