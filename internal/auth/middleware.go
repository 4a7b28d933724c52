package auth

import (
	"fmt"
	"strings"

	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxEmailKey = "account_email"
	CtxNameKey  = "account_name"
	CtxRoleKey  = "account_role"
)

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token claims could not be read")
		}

		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxNameKey, claims.Name)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.StaffRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(models.StaffRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "role missing from token")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "not allowed for this role")
	}
}

// Actor returns the email and role of the authenticated caller.
func Actor(c *fiber.Ctx) (string, models.StaffRole) {
	email, _ := c.Locals(CtxEmailKey).(string)
	role, _ := c.Locals(CtxRoleKey).(models.StaffRole)
	return email, role
}
