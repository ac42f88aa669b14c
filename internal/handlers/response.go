package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/TennisCoachBack/internal/middleware"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/services"
)

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	return middleware.PrincipalFrom(c)
}

func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAuthentication):
		return respondError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRateLimited):
		return respondError(c, fiber.StatusTooManyRequests, err.Error())
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return respondError(c, fiber.StatusInternalServerError, "Failed to process request")
	}
}

// ErrorHandler renders framework errors (unknown routes, body limits, panics
// turned into errors) in the same envelope as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Failed to process request"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return respondError(c, status, message)
}
