package middleware

import "github.com/gofiber/fiber/v2"

type featureChecker interface {
	IsEnabled(name string) bool
}

// FeatureRequired answers 404 while the feature is off, so the routes behind
// it look like they do not exist. It must run before AuthRequired.
func FeatureRequired(gate featureChecker, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.IsEnabled(feature) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Next()
	}
}
