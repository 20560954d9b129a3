package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/helper"
)

// AuthMiddleware requires a valid session token, from cookie or header.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// OptionalAuth resolves the session when a token is present but lets
// anonymous requests through. Event and RSVP endpoints accept link holders
// without an account.
func OptionalAuth(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}
		if tokenStr != "" {
			if user, err := auth.VerifyToken(tokenStr); err == nil {
				ctx.Locals("userID", uint(user.UserID))
				ctx.Locals("user", user)
			}
		}
		return ctx.Next()
	}
}
