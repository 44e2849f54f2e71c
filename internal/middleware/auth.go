package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/services"
)

const currentUserKey = "current_user"

// JWTProtected verifies the access token's signature and expiry. Every
// failure mode (bad signature, expired, malformed) produces the same 401
// body so callers cannot probe which check failed.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: cfg.TokenAlgorithm,
			Key:    []byte(cfg.AccessTokenSecret),
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoadCurrentUser resolves the verified token's subject to a user record and
// stores it in context locals. A subject that no longer exists is a 401, not
// a 404; the token is simply no longer good.
func LoadCurrentUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := subjectFromClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		}

		user, err := authService.CurrentUser(email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser extracts the user loaded by LoadCurrentUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

func subjectFromClaims(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}
