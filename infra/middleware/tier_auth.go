package middleware

import (
	"strings"

	"tier_server/pkg/apperr"
	"tier_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth validates the Bearer token on admin routes. Tokens are HS256
// signed with the shared secret. An empty secret disables auth; that is only
// acceptable for local development and gets a loud warning at startup.
func AdminAuth(secret string) fiber.Handler {
	if secret == "" {
		logger.Warn("JWT_SECRET empty, admin auth disabled")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return apperr.Unauthorized("missing authorization header")
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return apperr.Unauthorized("authorization header is not a bearer token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperr.Unauthorized("unexpected signing method")
			}
			return key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			return apperr.Unauthorized("invalid token")
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims["sub"].(string); sub != "" {
				c.Locals("admin_sub", sub)
			}
		}
		return c.Next()
	}
}
