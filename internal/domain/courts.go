package domain

import (
	"context"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Toggle flips between the two activity states. Anything unrecognized is
// treated as inactive and toggles to active.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

type Court struct {
	ID     uuid.UUID     `json:"id"`
	Name   LocalizedText `json:"name"`
	City   string        `json:"city,omitempty"`
	Status Status        `json:"status"`
}

func ValidateCourt(court Court) FieldErrors {
	errs := FieldErrors{}
	if court.Name.IsZero() {
		errs.Add("name", "name is required in at least one locale")
	}
	if court.Status != "" && court.Status != StatusActive && court.Status != StatusInactive {
		errs.Add("status", "status must be active or inactive")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var CourtListSchema = ListSchema{
	FilterNames: []string{"status", "city"},
	SortFields:  []string{"city", "status", "created_at"},
}

type CourtRepository interface {
	ListCourts(ctx context.Context, query ListQuery) (Page[Court], ListQuery, error)
	FetchCourt(ctx context.Context, id uuid.UUID) (Court, error)
	InsertCourt(ctx context.Context, court Court) error
	UpdateCourt(ctx context.Context, court Court) error
	DeleteCourt(ctx context.Context, id uuid.UUID) error
	ToggleCourtStatus(ctx context.Context, id uuid.UUID) (Status, error)
}
