package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionType int

const (
	SessionTypeIndividual SessionType = iota
	SessionTypeGroup
)

func (t SessionType) Valid() bool {
	return t == SessionTypeIndividual || t == SessionTypeGroup
}

func (t SessionType) String() string {
	switch t {
	case SessionTypeIndividual:
		return "Individual"
	case SessionTypeGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

type SessionStatus int

const (
	SessionStatusScheduled SessionStatus = iota
	SessionStatusCompleted
	SessionStatusCancelled
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStatusScheduled:
		return "Scheduled"
	case SessionStatusCompleted:
		return "Completed"
	case SessionStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

const MaxNotesLength = 1000

type TrainingSession struct {
	ID              uuid.UUID     `json:"id"`
	CoachID         uuid.UUID     `json:"-"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"durationMinutes"`
	Type            SessionType   `json:"type"`
	Status          SessionStatus `json:"status"`
	Notes           *string       `json:"notes"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       *time.Time    `json:"updatedAt"`
}
