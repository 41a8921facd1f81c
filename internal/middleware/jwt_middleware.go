package middleware

import (
	"errors"
	"strings"

	"blog/internal/handlers"
	"blog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthRequired is a Fiber middleware that accepts a bearer token from the
// Authorization header or, failing that, from the access token cookie. The token's
// subject must still exist. Every failure gets the same 401; the reason is only logged.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			log.Debug("missing credentials", zap.String("path", c.Path()))
			return handlers.Unauthorized(c)
		}

		user, err := authService.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			var authErr *services.AuthError
			if !errors.As(err, &authErr) {
				log.Error("authentication lookup failed", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Internal server error",
				})
			}
			log.Info("JWT validation failed",
				zap.String("reason", string(authErr.Reason)),
				zap.String("path", c.Path()),
				zap.Error(authErr.Err))
			return handlers.Unauthorized(c)
		}

		// Store the caller for subsequent handlers
		c.Locals(handlers.UserIDKey, user.ID)

		return c.Next()
	}
}

// bearerToken returns the token from "Authorization: Bearer <token>", or from the
// access token cookie when the header is absent.
func bearerToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Cookies(handlers.AccessTokenCookie)
}
