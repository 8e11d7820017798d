package serverutils

import (
	"tasknotes-be/internal/pkg/tokenstore"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalsUserId      = "user_id"
	LocalsAccessToken = "access_token"
)

// NewAuthMiddleware verifies the bearer token, rejects revoked tokens, and
// stores the caller's user id (and the raw token, for logout) in Locals.
func NewAuthMiddleware(secret string, revocations tokenstore.RevocationStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Invalid claims"})
		}
		userId, ok := claims["user_id"].(string)
		if !ok || userId == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Invalid claims"})
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(ctx.Context(), tokenStr)
			if err == nil && revoked {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Invalid token"})
			}
			// A store outage must not lock everyone out; the token is
			// still signature-checked above.
		}

		ctx.Locals(LocalsUserId, userId)
		ctx.Locals(LocalsAccessToken, tokenStr)
		return ctx.Next()
	}
}
