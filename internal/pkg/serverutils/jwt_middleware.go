package serverutils

import (
	"os"

	"docvault-rag-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const IdentityKey = "identity"

// JwtMiddleware validates the bearer token and materialises the caller's
// Identity into locals. Role parsing fails fast here: a token with an
// unknown role name never reaches a handler.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	subjectStr, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	subjectId, err := uuid.Parse(subjectStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid subject"})
	}

	role, err := entity.ParseRole(roleStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unknown role"})
	}

	ctx.Locals(IdentityKey, entity.Identity{
		SubjectId:  subjectId,
		Role:       role,
		Department: department,
	})
	return ctx.Next()
}

// IdentityFromCtx returns the identity placed by JwtMiddleware. The zero
// Identity is returned when the middleware did not run; Decide treats that
// as unauthenticated.
func IdentityFromCtx(ctx *fiber.Ctx) entity.Identity {
	if id, ok := ctx.Locals(IdentityKey).(entity.Identity); ok {
		return id
	}
	return entity.Identity{}
}
