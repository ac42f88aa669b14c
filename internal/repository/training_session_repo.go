package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/TennisCoachBack/internal/models"
)

const trainingSessionColumns = `id, coach_id, scheduled_at, duration_minutes, type, status, notes, created_at, updated_at`

type TrainingSessionInput struct {
	ScheduledAt     time.Time
	DurationMinutes int
	Type            models.SessionType
	Notes           *string
}

type TrainingSessionRepository struct {
	db DBTX
}

func NewTrainingSessionRepository(db DBTX) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db}
}

func (r *TrainingSessionRepository) Create(
	ctx context.Context,
	coachID uuid.UUID,
	input TrainingSessionInput,
) (*models.TrainingSession, error) {
	query := `
		INSERT INTO training_sessions (id, coach_id, scheduled_at, duration_minutes, type, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + trainingSessionColumns

	return scanTrainingSession(r.db.QueryRow(
		ctx,
		query,
		uuid.New(),
		coachID,
		input.ScheduledAt.UTC(),
		input.DurationMinutes,
		input.Type,
		models.SessionStatusScheduled,
		input.Notes,
	))
}

func (r *TrainingSessionRepository) ListByCoach(
	ctx context.Context,
	coachID uuid.UUID,
) ([]models.TrainingSession, error) {
	query := `
		SELECT ` + trainingSessionColumns + `
		FROM training_sessions
		WHERE coach_id = $1
		ORDER BY scheduled_at DESC, id ASC
	`
	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		session, err := scanTrainingSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetForCoach returns pgx.ErrNoRows both when the session does not exist and
// when it belongs to another coach.
func (r *TrainingSessionRepository) GetForCoach(
	ctx context.Context,
	coachID uuid.UUID,
	sessionID uuid.UUID,
) (*models.TrainingSession, error) {
	query := `
		SELECT ` + trainingSessionColumns + `
		FROM training_sessions
		WHERE id = $1 AND coach_id = $2
	`
	return scanTrainingSession(r.db.QueryRow(ctx, query, sessionID, coachID))
}

func (r *TrainingSessionRepository) GetForCoachForUpdate(
	ctx context.Context,
	coachID uuid.UUID,
	sessionID uuid.UUID,
) (*models.TrainingSession, error) {
	query := `
		SELECT ` + trainingSessionColumns + `
		FROM training_sessions
		WHERE id = $1 AND coach_id = $2
		FOR UPDATE
	`
	return scanTrainingSession(r.db.QueryRow(ctx, query, sessionID, coachID))
}

func (r *TrainingSessionRepository) UpdateDetails(
	ctx context.Context,
	coachID uuid.UUID,
	sessionID uuid.UUID,
	input TrainingSessionInput,
) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET scheduled_at = $3, duration_minutes = $4, type = $5, notes = $6, updated_at = NOW()
		WHERE id = $1 AND coach_id = $2
		RETURNING ` + trainingSessionColumns

	return scanTrainingSession(r.db.QueryRow(
		ctx,
		query,
		sessionID,
		coachID,
		input.ScheduledAt.UTC(),
		input.DurationMinutes,
		input.Type,
		input.Notes,
	))
}

func (r *TrainingSessionRepository) UpdateStatus(
	ctx context.Context,
	coachID uuid.UUID,
	sessionID uuid.UUID,
	status models.SessionStatus,
) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND coach_id = $2
		RETURNING ` + trainingSessionColumns

	return scanTrainingSession(r.db.QueryRow(ctx, query, sessionID, coachID, status))
}

func scanTrainingSession(row pgx.Row) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := row.Scan(
		&session.ID,
		&session.CoachID,
		&session.ScheduledAt,
		&session.DurationMinutes,
		&session.Type,
		&session.Status,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
