package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/TennisCoachBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CoachRepository struct {
	db DBTX
}

func NewCoachRepository(db DBTX) *CoachRepository {
	return &CoachRepository{db: db}
}

// Create inserts the coach and fills in ID (when unset) and CreatedAt.
// A duplicate email surfaces as a *pgconn.PgError with code 23505.
func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	if coach.ID == uuid.Nil {
		coach.ID = uuid.New()
	}
	query := `
		INSERT INTO coaches (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, coach.ID, coach.Email, coach.PasswordHash, coach.Name).
		Scan(&coach.CreatedAt, &coach.UpdatedAt)
}

func (r *CoachRepository) GetByEmail(ctx context.Context, email string) (*models.Coach, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM coaches
		WHERE email = $1
	`
	var coach models.Coach
	err := r.db.QueryRow(ctx, query, email).
		Scan(&coach.ID, &coach.Email, &coach.PasswordHash, &coach.Name, &coach.CreatedAt, &coach.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Coach, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`
	var coach models.Coach
	err := r.db.QueryRow(ctx, query, id).
		Scan(&coach.ID, &coach.Email, &coach.PasswordHash, &coach.Name, &coach.CreatedAt, &coach.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &coach, nil
}
