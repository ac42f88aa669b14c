package handlers

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/services"
)

type trainingSessionApplicationService interface {
	List(ctx context.Context, principal models.Principal) ([]models.TrainingSession, error)
	Get(ctx context.Context, principal models.Principal, sessionID uuid.UUID) (*models.TrainingSession, error)
	Create(ctx context.Context, principal models.Principal, input services.TrainingSessionInput) (*models.TrainingSession, error)
	Update(ctx context.Context, principal models.Principal, sessionID uuid.UUID, input services.TrainingSessionInput) (*models.TrainingSession, error)
	Cancel(ctx context.Context, principal models.Principal, sessionID uuid.UUID) (*models.TrainingSession, error)
	Complete(ctx context.Context, principal models.Principal, sessionID uuid.UUID) (*models.TrainingSession, error)
}

type TrainingSessionHandler struct {
	service trainingSessionApplicationService
}

func NewTrainingSessionHandler(service *services.TrainingSessionService) *TrainingSessionHandler {
	return &TrainingSessionHandler{service: service}
}

// trainingSessionRequest is shared by create and update; both replace the
// same four fields.
type trainingSessionRequest struct {
	ScheduledAt     string             `json:"scheduledAt"`
	DurationMinutes int                `json:"durationMinutes"`
	Type            models.SessionType `json:"type"`
	Notes           *string            `json:"notes"`
}

func (h *TrainingSessionHandler) List(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	sessions, err := h.service.List(c.Context(), principal)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, sessions)
}

func (h *TrainingSessionHandler) Get(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	sessionID, ok := parseSessionID(c)
	if !ok {
		return respondError(c, fiber.StatusNotFound, "Training session not found")
	}

	session, err := h.service.Get(c.Context(), principal, sessionID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, session)
}

func (h *TrainingSessionHandler) Create(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	input, validationErr := parseTrainingSessionRequest(c)
	if validationErr != "" {
		return respondError(c, fiber.StatusBadRequest, validationErr)
	}

	session, err := h.service.Create(c.Context(), principal, input)
	if err != nil {
		return mapServiceError(c, err)
	}

	c.Location("/api/training-sessions/" + session.ID.String())
	return respondData(c, fiber.StatusCreated, session)
}

func (h *TrainingSessionHandler) Update(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	sessionID, ok := parseSessionID(c)
	if !ok {
		return respondError(c, fiber.StatusNotFound, "Training session not found")
	}

	input, validationErr := parseTrainingSessionRequest(c)
	if validationErr != "" {
		return respondError(c, fiber.StatusBadRequest, validationErr)
	}

	session, err := h.service.Update(c.Context(), principal, sessionID, input)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, session)
}

func (h *TrainingSessionHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.service.Cancel)
}

func (h *TrainingSessionHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.service.Complete)
}

func (h *TrainingSessionHandler) transition(
	c *fiber.Ctx,
	apply func(ctx context.Context, principal models.Principal, sessionID uuid.UUID) (*models.TrainingSession, error),
) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	sessionID, ok := parseSessionID(c)
	if !ok {
		return respondError(c, fiber.StatusNotFound, "Training session not found")
	}

	session, err := apply(c.Context(), principal, sessionID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return respondData(c, fiber.StatusOK, session)
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return sessionID, true
}

func parseTrainingSessionRequest(c *fiber.Ctx) (services.TrainingSessionInput, string) {
	var req trainingSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return services.TrainingSessionInput{}, "Invalid request body"
	}

	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		return services.TrainingSessionInput{}, "scheduledAt must be a valid RFC3339 timestamp"
	}
	if !req.Type.Valid() {
		return services.TrainingSessionInput{}, "type must be 0 (Individual) or 1 (Group)"
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > models.MaxNotesLength {
		return services.TrainingSessionInput{}, "notes must be at most 1000 characters"
	}

	return services.TrainingSessionInput{
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Notes:           req.Notes,
	}, ""
}
