package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/TennisCoachBack/internal/models"
	"github.com/saeid-a/TennisCoachBack/internal/repository"
)

type memorySessionStore struct {
	sessions map[uuid.UUID]models.TrainingSession
	txCount  int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[uuid.UUID]models.TrainingSession)}
}

func (s *memorySessionStore) Create(_ context.Context, coachID uuid.UUID, input repository.TrainingSessionInput) (*models.TrainingSession, error) {
	session := models.TrainingSession{
		ID:              uuid.New(),
		CoachID:         coachID,
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: input.DurationMinutes,
		Type:            input.Type,
		Status:          models.SessionStatusScheduled,
		Notes:           input.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	s.sessions[session.ID] = session
	return &session, nil
}

func (s *memorySessionStore) ListByCoach(_ context.Context, coachID uuid.UUID) ([]models.TrainingSession, error) {
	result := make([]models.TrainingSession, 0)
	for _, session := range s.sessions {
		if session.CoachID == coachID {
			result = append(result, session)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledAt.After(result[j].ScheduledAt)
	})
	return result, nil
}

func (s *memorySessionStore) GetForCoach(_ context.Context, coachID uuid.UUID, sessionID uuid.UUID) (*models.TrainingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.CoachID != coachID {
		return nil, pgx.ErrNoRows
	}
	return &session, nil
}

func (s *memorySessionStore) GetForCoachForUpdate(ctx context.Context, coachID uuid.UUID, sessionID uuid.UUID) (*models.TrainingSession, error) {
	return s.GetForCoach(ctx, coachID, sessionID)
}

func (s *memorySessionStore) UpdateDetails(_ context.Context, coachID uuid.UUID, sessionID uuid.UUID, input repository.TrainingSessionInput) (*models.TrainingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.CoachID != coachID {
		return nil, pgx.ErrNoRows
	}
	now := time.Now().UTC()
	session.ScheduledAt = input.ScheduledAt.UTC()
	session.DurationMinutes = input.DurationMinutes
	session.Type = input.Type
	session.Notes = input.Notes
	session.UpdatedAt = &now
	s.sessions[sessionID] = session
	return &session, nil
}

func (s *memorySessionStore) UpdateStatus(_ context.Context, coachID uuid.UUID, sessionID uuid.UUID, status models.SessionStatus) (*models.TrainingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.CoachID != coachID {
		return nil, pgx.ErrNoRows
	}
	now := time.Now().UTC()
	session.Status = status
	session.UpdatedAt = &now
	s.sessions[sessionID] = session
	return &session, nil
}

func newTestSessionService(store *memorySessionStore) *TrainingSessionService {
	return &TrainingSessionService{
		sessions: store,
		inTx: func(_ context.Context, fn func(sessions trainingSessionStore) error) error {
			store.txCount++
			return fn(store)
		},
	}
}

func testPrincipal() models.Principal {
	return models.Principal{CoachID: uuid.New(), Email: "coach@example.com", Name: "Coach"}
}

func createTestSession(t *testing.T, service *TrainingSessionService, principal models.Principal, scheduledAt time.Time) *models.TrainingSession {
	t.Helper()

	session, err := service.Create(context.Background(), principal, TrainingSessionInput{
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
		Type:            models.SessionTypeIndividual,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return session
}

func TestTrainingSessionLifecycleExample(t *testing.T) {
	ctx := context.Background()
	service := newTestSessionService(newMemorySessionStore())
	principal := testPrincipal()

	created := createTestSession(t, service, principal, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	if created.Status != models.SessionStatusScheduled {
		t.Fatalf("expected scheduled, got %s", created.Status)
	}
	if created.UpdatedAt != nil {
		t.Fatalf("expected no updatedAt on create, got %v", created.UpdatedAt)
	}

	completed, err := service.Complete(ctx, principal, created.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != models.SessionStatusCompleted || completed.UpdatedAt == nil {
		t.Fatalf("expected completed with updatedAt, got %+v", completed)
	}

	cancelled, err := service.Cancel(ctx, principal, created.ID)
	if err != nil {
		t.Fatalf("Cancel after complete: %v", err)
	}
	if cancelled.Status != models.SessionStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	_, err = service.Update(ctx, principal, created.ID, TrainingSessionInput{
		ScheduledAt:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Type:            models.SessionTypeGroup,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "Cannot update a cancelled session" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCompleteRequiresScheduled(t *testing.T) {
	ctx := context.Background()
	service := newTestSessionService(newMemorySessionStore())
	principal := testPrincipal()

	completedOnce := createTestSession(t, service, principal, time.Now())
	if _, err := service.Complete(ctx, principal, completedOnce.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := service.Complete(ctx, principal, completedOnce.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict completing twice, got %v", err)
	}

	cancelled := createTestSession(t, service, principal, time.Now())
	if _, err := service.Cancel(ctx, principal, cancelled.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := service.Complete(ctx, principal, cancelled.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict completing cancelled, got %v", err)
	}
}

func TestCancelFailsOnlyWhenAlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	service := newTestSessionService(newMemorySessionStore())
	principal := testPrincipal()

	session := createTestSession(t, service, principal, time.Now())
	if _, err := service.Cancel(ctx, principal, session.ID); err != nil {
		t.Fatalf("Cancel from scheduled: %v", err)
	}
	_, err := service.Cancel(ctx, principal, session.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "Session is already cancelled" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestUpdateAllowedFromScheduledAndCompleted(t *testing.T) {
	ctx := context.Background()
	service := newTestSessionService(newMemorySessionStore())
	principal := testPrincipal()
	notes := "serve practice"
	input := TrainingSessionInput{
		ScheduledAt:     time.Date(2030, 1, 5, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Type:            models.SessionTypeGroup,
		Notes:           &notes,
	}

	scheduled := createTestSession(t, service, principal, time.Now())
	updated, err := service.Update(ctx, principal, scheduled.ID, input)
	if err != nil {
		t.Fatalf("Update scheduled: %v", err)
	}
	if updated.DurationMinutes != 90 || updated.Type != models.SessionTypeGroup || updated.Notes == nil || *updated.Notes != notes {
		t.Fatalf("expected fields overwritten, got %+v", updated)
	}
	if !updated.ScheduledAt.Equal(input.ScheduledAt) {
		t.Fatalf("expected scheduledAt %s, got %s", input.ScheduledAt, updated.ScheduledAt)
	}
	if updated.Status != models.SessionStatusScheduled || updated.UpdatedAt == nil {
		t.Fatalf("expected status unchanged and updatedAt set, got %+v", updated)
	}

	completed := createTestSession(t, service, principal, time.Now())
	if _, err := service.Complete(ctx, principal, completed.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	updated, err = service.Update(ctx, principal, completed.ID, input)
	if err != nil {
		t.Fatalf("Update completed: %v", err)
	}
	if updated.Status != models.SessionStatusCompleted {
		t.Fatalf("expected completed status to be kept, got %s", updated.Status)
	}
}

func TestOtherCoachSessionsAreNotFound(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	service := newTestSessionService(store)
	owner := testPrincipal()
	intruder := testPrincipal()

	session := createTestSession(t, service, owner, time.Now())

	if _, err := service.Get(ctx, intruder, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := service.Update(ctx, intruder, session.ID, TrainingSessionInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if _, err := service.Cancel(ctx, intruder, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Cancel: expected ErrNotFound, got %v", err)
	}
	if _, err := service.Complete(ctx, intruder, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Complete: expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(ctx, owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get unknown: expected ErrNotFound, got %v", err)
	}

	if store.sessions[session.ID].Status != models.SessionStatusScheduled {
		t.Fatalf("expected intruder calls to leave the session untouched")
	}
}

func TestListIsScopedAndOrderedDescending(t *testing.T) {
	ctx := context.Background()
	service := newTestSessionService(newMemorySessionStore())
	coach := testPrincipal()
	other := testPrincipal()

	base := time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)
	first := createTestSession(t, service, coach, base)
	third := createTestSession(t, service, coach, base.Add(48*time.Hour))
	second := createTestSession(t, service, coach, base.Add(24*time.Hour))
	createTestSession(t, service, other, base.Add(72*time.Hour))

	sessions, err := service.List(ctx, coach)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	wantOrder := []uuid.UUID{third.ID, second.ID, first.ID}
	for i, session := range sessions {
		if session.CoachID != coach.CoachID {
			t.Fatalf("list leaked session of coach %s", session.CoachID)
		}
		if session.ID != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], session.ID)
		}
	}

	empty, err := service.List(ctx, testPrincipal())
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestCreateIsPermissive(t *testing.T) {
	service := newTestSessionService(newMemorySessionStore())
	principal := testPrincipal()

	session, err := service.Create(context.Background(), principal, TrainingSessionInput{
		ScheduledAt:     time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 0,
		Type:            models.SessionTypeIndividual,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.DurationMinutes != 0 {
		t.Fatalf("expected duration to be stored as given, got %d", session.DurationMinutes)
	}
}

func TestMutationsRunInsideTransaction(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	service := newTestSessionService(store)
	principal := testPrincipal()

	session := createTestSession(t, service, principal, time.Now())
	if _, err := service.Update(ctx, principal, session.ID, TrainingSessionInput{DurationMinutes: 45}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := service.Complete(ctx, principal, session.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := service.Cancel(ctx, principal, session.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if store.txCount != 3 {
		t.Fatalf("expected 3 transactions, got %d", store.txCount)
	}
}

func TestTranslateNotFoundPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := translateNotFound(boom); err != boom {
		t.Fatalf("expected original error, got %v", err)
	}
	if err := translateNotFound(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
