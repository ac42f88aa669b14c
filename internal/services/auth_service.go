package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/repository"
	"github.com/saeid-a/TennisCoachBack/pkg/utils"
)

const minPasswordLength = 8

const uniqueViolationCode = "23505"

var (
	errRegisterRequired   = newServiceError(ErrValidation, "Email, password, and name are required")
	errPasswordTooShort   = newServiceError(ErrValidation, "Password must be at least 8 characters")
	errLoginRequired      = newServiceError(ErrValidation, "Email and password are required")
	errEmailRegistered    = newServiceError(ErrConflict, "Email already registered")
	errInvalidCredentials = newServiceError(ErrAuthentication, "Invalid email or password")
	errInvalidToken       = newServiceError(ErrAuthentication, "Invalid or expired token")
	errTooManyAttempts    = newServiceError(ErrRateLimited, "Too many failed login attempts, try again later")
)

type coachStore interface {
	Create(ctx context.Context, coach *models.Coach) error
	GetByEmail(ctx context.Context, email string) (*models.Coach, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Coach, error)
}

type loginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type AuthService struct {
	coaches  coachStore
	inTx     func(ctx context.Context, fn func(coaches coachStore) error) error
	tokenCfg utils.TokenConfig
	throttle loginThrottle
}

func NewAuthService(
	db repository.TxBeginner,
	coachRepo *repository.CoachRepository,
	tokenCfg utils.TokenConfig,
) *AuthService {
	return &AuthService{
		coaches: coachRepo,
		inTx: func(ctx context.Context, fn func(coaches coachStore) error) error {
			return repository.WithTx(ctx, db, func(tx pgx.Tx) error {
				return fn(repository.NewCoachRepository(tx))
			})
		},
		tokenCfg: tokenCfg,
	}
}

// WithLoginThrottle enables failed-login throttling per normalized email.
func (s *AuthService) WithLoginThrottle(throttle loginThrottle) *AuthService {
	s.throttle = throttle
	return s
}

func (s *AuthService) Register(
	ctx context.Context,
	email string,
	password string,
	name string,
) (*models.AuthResponse, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(name) == "" {
		return nil, errRegisterRequired
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, errPasswordTooShort
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	coach := &models.Coach{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
		Name:         strings.TrimSpace(name),
	}

	err = s.inTx(ctx, func(coaches coachStore) error {
		existing, err := coaches.GetByEmail(ctx, coach.Email)
		if err == nil && existing != nil {
			return errEmailRegistered
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return coaches.Create(ctx, coach)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, errEmailRegistered
		}
		return nil, err
	}

	return s.issue(coach)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, errLoginRequired
	}
	email = normalizeEmail(email)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			log.Printf("login throttle unavailable: %v", err)
		} else if !allowed {
			return nil, errTooManyAttempts
		}
	}

	coach, err := s.coaches.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, coach.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, errInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			log.Printf("login throttle reset failed: %v", err)
		}
	}

	return s.issue(coach)
}

func (s *AuthService) GetCurrent(ctx context.Context, principal models.Principal) (*models.CoachInfo, error) {
	if principal.CoachID == uuid.Nil {
		return nil, errInvalidToken
	}

	coach, err := s.coaches.GetByID(ctx, principal.CoachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errInvalidToken
		}
		return nil, err
	}

	info := coach.Info()
	return &info, nil
}

func (s *AuthService) issue(coach *models.Coach) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(s.tokenCfg, coach.ID.String(), coach.Email, coach.Name)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Coach: coach.Info()}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		log.Printf("login throttle record failed: %v", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
