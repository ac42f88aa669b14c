package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/services"
)

type authApplicationService interface {
	Register(ctx context.Context, email, password, name string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	GetCurrent(ctx context.Context, principal models.Principal) (*models.CoachInfo, error)
}

type AuthHandler struct {
	service authApplicationService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.service.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	info, err := h.service.GetCurrent(c.Context(), principal)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, info)
}
