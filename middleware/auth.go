// middleware/auth.go
package middleware

import (
	"strings"
	"time"

	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the HS256 access token issued by the account service.
// The token is read from the Authorization header, or from the "token" query
// parameter for WebSocket upgrades, which cannot carry headers from browsers.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseClaims(c, secret)
		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, err.Message)
		}

		c.Locals("userId", claims["user_id"])
		c.Locals("isAdmin", claims["is_admin"] == true)
		return c.Next()
	}
}

// AdminAuthMiddleware is AuthMiddleware plus the is_admin claim.
func AdminAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseClaims(c, secret)
		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, err.Message)
		}

		isAdmin, ok := claims["is_admin"].(bool)
		if !ok || !isAdmin {
			return utils.Error(c, fiber.StatusForbidden, "Access denied. Admin privileges required.")
		}

		c.Locals("userId", claims["user_id"])
		c.Locals("isAdmin", true)
		return c.Next()
	}
}

func parseClaims(c *fiber.Ctx, secret string) (jwt.MapClaims, *fiber.Error) {
	tokenString, ferr := bearerToken(c)
	if ferr != nil {
		return nil, ferr
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	if _, ok := claims["user_id"].(float64); !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	return claims, nil
}

func bearerToken(c *fiber.Ctx) (string, *fiber.Error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", fiber.NewError(401, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(401, "Invalid authorization header format")
	}
	return parts[1], nil
}

func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

func IsAdmin(c *fiber.Ctx) bool {
	isAdmin, ok := c.Locals("isAdmin").(bool)
	return ok && isAdmin
}
