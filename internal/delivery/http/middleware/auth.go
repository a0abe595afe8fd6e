package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
)

// Context keys set by Auth for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Auth - middleware that verifies the bearer token and stores the caller's
// id and role in locals
func Auth(jwtSecret string) fiber.Handler {
	secret := []byte(jwtSecret)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		role, _ := claims["role"].(string)

		c.Locals(LocalUserID, int64(sub))
		c.Locals(LocalRole, role)

		return c.Next()
	}
}

// RequireRole - middleware that restricts a route to one role
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocalRole) != role {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}
