package models

import (
	"time"

	"github.com/google/uuid"
)

type Coach struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// CoachInfo is the public view of a coach. It never carries the password hash.
type CoachInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func (c *Coach) Info() CoachInfo {
	return CoachInfo{ID: c.ID, Email: c.Email, Name: c.Name}
}

type AuthResponse struct {
	Token string    `json:"token"`
	Coach CoachInfo `json:"coach"`
}

// Principal identifies the authenticated coach behind a request.
type Principal struct {
	CoachID uuid.UUID
	Email   string
	Name    string
}
