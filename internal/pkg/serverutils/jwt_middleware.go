package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const UserIDLocal = "user_id"

// NewJwtMiddleware verifies bearer tokens issued by the identity provider and
// stores the caller's user id in ctx.Locals. An empty secret disables the check.
func NewJwtMiddleware(secret string) fiber.Handler {
	if secret == "" {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication failed: missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication failed: invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication failed: invalid claims")
		}

		userId, _ := claims["user_id"].(string)
		if userId == "" {
			userId, _ = claims.GetSubject()
		}
		if userId == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication failed: token has no user")
		}

		ctx.Locals(UserIDLocal, userId)
		return ctx.Next()
	}
}

// AuthenticatedUser returns the user id set by the JWT middleware, if any.
func AuthenticatedUser(ctx *fiber.Ctx) (string, bool) {
	userId, ok := ctx.Locals(UserIDLocal).(string)
	return userId, ok && userId != ""
}

// EnsureSameUser rejects requests that name a user other than the authenticated one.
// Without authentication every user id is accepted.
func EnsureSameUser(ctx *fiber.Ctx, requested string) error {
	authUser, ok := AuthenticatedUser(ctx)
	if !ok || requested == "" {
		return nil
	}
	if authUser != requested {
		return fiber.NewError(fiber.StatusForbidden, "user does not match authenticated identity")
	}
	return nil
}
