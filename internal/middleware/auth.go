package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/pkg/utils"
)

const principalKey = "principal"

func AuthRequired(tokenCfg utils.TokenConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(parts[1], tokenCfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		coachID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(principalKey, models.Principal{
			CoachID: coachID,
			Email:   claims.Email,
			Name:    claims.Name,
		})

		return c.Next()
	}
}

// PrincipalFrom returns the identity AuthRequired stored on the request.
func PrincipalFrom(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals(principalKey).(models.Principal)
	if !ok || principal.CoachID == uuid.Nil {
		return models.Principal{}, false
	}
	return principal, true
}

// SetPrincipal is used by tests and internal callers that authenticate by
// other means.
func SetPrincipal(c *fiber.Ctx, principal models.Principal) {
	c.Locals(principalKey, principal)
}
