package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/repository"
)

var (
	errSessionNotFound       = newServiceError(ErrNotFound, "Training session not found")
	errUpdateCancelled       = newServiceError(ErrConflict, "Cannot update a cancelled session")
	errAlreadyCancelled      = newServiceError(ErrConflict, "Session is already cancelled")
	errOnlyScheduledComplete = newServiceError(ErrConflict, "Only scheduled sessions can be marked as completed")
)

type trainingSessionStore interface {
	Create(ctx context.Context, coachID uuid.UUID, input repository.TrainingSessionInput) (*models.TrainingSession, error)
	ListByCoach(ctx context.Context, coachID uuid.UUID) ([]models.TrainingSession, error)
	GetForCoach(ctx context.Context, coachID uuid.UUID, sessionID uuid.UUID) (*models.TrainingSession, error)
	GetForCoachForUpdate(ctx context.Context, coachID uuid.UUID, sessionID uuid.UUID) (*models.TrainingSession, error)
	UpdateDetails(ctx context.Context, coachID uuid.UUID, sessionID uuid.UUID, input repository.TrainingSessionInput) (*models.TrainingSession, error)
	UpdateStatus(ctx context.Context, coachID uuid.UUID, sessionID uuid.UUID, status models.SessionStatus) (*models.TrainingSession, error)
}

type TrainingSessionService struct {
	sessions trainingSessionStore
	inTx     func(ctx context.Context, fn func(sessions trainingSessionStore) error) error
}

func NewTrainingSessionService(
	db repository.TxBeginner,
	sessionRepo *repository.TrainingSessionRepository,
) *TrainingSessionService {
	return &TrainingSessionService{
		sessions: sessionRepo,
		inTx: func(ctx context.Context, fn func(sessions trainingSessionStore) error) error {
			return repository.WithTx(ctx, db, func(tx pgx.Tx) error {
				return fn(repository.NewTrainingSessionRepository(tx))
			})
		},
	}
}

type TrainingSessionInput = repository.TrainingSessionInput

func (s *TrainingSessionService) List(
	ctx context.Context,
	principal models.Principal,
) ([]models.TrainingSession, error) {
	sessions, err := s.sessions.ListByCoach(ctx, principal.CoachID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = make([]models.TrainingSession, 0)
	}
	return sessions, nil
}

func (s *TrainingSessionService) Get(
	ctx context.Context,
	principal models.Principal,
	sessionID uuid.UUID,
) (*models.TrainingSession, error) {
	session, err := s.sessions.GetForCoach(ctx, principal.CoachID, sessionID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return session, nil
}

// Create does not validate duration or schedule time; any values the
// boundary accepts are stored as given.
func (s *TrainingSessionService) Create(
	ctx context.Context,
	principal models.Principal,
	input TrainingSessionInput,
) (*models.TrainingSession, error) {
	return s.sessions.Create(ctx, principal.CoachID, input)
}

func (s *TrainingSessionService) Update(
	ctx context.Context,
	principal models.Principal,
	sessionID uuid.UUID,
	input TrainingSessionInput,
) (*models.TrainingSession, error) {
	var updated *models.TrainingSession
	err := s.inTx(ctx, func(sessions trainingSessionStore) error {
		current, err := sessions.GetForCoachForUpdate(ctx, principal.CoachID, sessionID)
		if err != nil {
			return translateNotFound(err)
		}
		if err := checkCanUpdate(current.Status); err != nil {
			return err
		}
		updated, err = sessions.UpdateDetails(ctx, principal.CoachID, sessionID, input)
		return translateNotFound(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TrainingSessionService) Cancel(
	ctx context.Context,
	principal models.Principal,
	sessionID uuid.UUID,
) (*models.TrainingSession, error) {
	return s.transition(ctx, principal, sessionID, models.SessionStatusCancelled, checkCanCancel)
}

func (s *TrainingSessionService) Complete(
	ctx context.Context,
	principal models.Principal,
	sessionID uuid.UUID,
) (*models.TrainingSession, error) {
	return s.transition(ctx, principal, sessionID, models.SessionStatusCompleted, checkCanComplete)
}

func (s *TrainingSessionService) transition(
	ctx context.Context,
	principal models.Principal,
	sessionID uuid.UUID,
	next models.SessionStatus,
	check func(current models.SessionStatus) error,
) (*models.TrainingSession, error) {
	var updated *models.TrainingSession
	err := s.inTx(ctx, func(sessions trainingSessionStore) error {
		current, err := sessions.GetForCoachForUpdate(ctx, principal.CoachID, sessionID)
		if err != nil {
			return translateNotFound(err)
		}
		if err := check(current.Status); err != nil {
			return err
		}
		updated, err = sessions.UpdateStatus(ctx, principal.CoachID, sessionID, next)
		return translateNotFound(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Only Cancelled blocks edits; a Completed session can still be updated.
func checkCanUpdate(current models.SessionStatus) error {
	if current == models.SessionStatusCancelled {
		return errUpdateCancelled
	}
	return nil
}

// Completed sessions may still be cancelled.
func checkCanCancel(current models.SessionStatus) error {
	if current == models.SessionStatusCancelled {
		return errAlreadyCancelled
	}
	return nil
}

func checkCanComplete(current models.SessionStatus) error {
	if current != models.SessionStatusScheduled {
		return errOnlyScheduledComplete
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errSessionNotFound
	}
	return err
}
