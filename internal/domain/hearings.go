package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type HearingStatus string

const (
	HearingStatusScheduled HearingStatus = "scheduled"
	HearingStatusAdjourned HearingStatus = "adjourned"
	HearingStatusCompleted HearingStatus = "completed"
)

func ValidHearingStatus(status HearingStatus) bool {
	switch status {
	case HearingStatusScheduled, HearingStatusAdjourned, HearingStatusCompleted:
		return true
	}
	return false
}

type Hearing struct {
	ID          uuid.UUID     `json:"id"`
	MatterID    uuid.UUID     `json:"matter_id"`
	CourtID     uuid.UUID     `json:"court_id"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Status      HearingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
}

func ValidateHearing(hearing Hearing) FieldErrors {
	errs := FieldErrors{}
	if hearing.MatterID == (uuid.UUID{}) {
		errs.Add("matter_id", "matter_id is required")
	}
	if hearing.CourtID == (uuid.UUID{}) {
		errs.Add("court_id", "court_id is required")
	}
	if hearing.ScheduledAt.IsZero() {
		errs.Add("scheduled_at", "scheduled_at is required")
	}
	if hearing.Status != "" && !ValidHearingStatus(hearing.Status) {
		errs.Add("status", "status must be scheduled, adjourned or completed")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var HearingListSchema = ListSchema{
	FilterNames: []string{"status", "court_id", "matter_id"},
	SortFields:  []string{"scheduled_at", "status", "created_at"},
}

type HearingRepository interface {
	ListHearings(ctx context.Context, query ListQuery) (Page[Hearing], ListQuery, error)
	FetchHearing(ctx context.Context, id uuid.UUID) (Hearing, error)
	InsertHearing(ctx context.Context, hearing Hearing) error
	UpdateHearing(ctx context.Context, hearing Hearing) error
	DeleteHearing(ctx context.Context, id uuid.UUID) error
}
