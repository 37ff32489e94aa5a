package domain

import (
	"context"

	"github.com/google/uuid"
)

type MatterStatus string

const (
	MatterStatusOpen   MatterStatus = "open"
	MatterStatusOnHold MatterStatus = "on_hold"
	MatterStatusClosed MatterStatus = "closed"
)

func ValidMatterStatus(status MatterStatus) bool {
	switch status {
	case MatterStatusOpen, MatterStatusOnHold, MatterStatusClosed:
		return true
	}
	return false
}

// Matter is a single legal case: the unit every hearing and invoice hangs off.
type Matter struct {
	ID            uuid.UUID     `json:"id"`
	Reference     string        `json:"reference"`
	Title         LocalizedText `json:"title"`
	ClientName    string        `json:"client_name"`
	PracticeAreas Set[string]   `json:"practice_areas"`
	Status        MatterStatus  `json:"status"`
	CourtID       uuid.UUID     `json:"court_id,omitempty"`
}

func ValidateMatter(matter Matter) FieldErrors {
	errs := FieldErrors{}
	if matter.Reference == "" {
		errs.Add("reference", "reference is required")
	}
	if matter.Title.IsZero() {
		errs.Add("title", "title is required in at least one locale")
	}
	if matter.ClientName == "" {
		errs.Add("client_name", "client_name is required")
	}
	if matter.Status != "" && !ValidMatterStatus(matter.Status) {
		errs.Add("status", "status must be open, on_hold or closed")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var MatterListSchema = ListSchema{
	FilterNames: []string{"status", "practice_area", "court_id"},
	SortFields:  []string{"reference", "client_name", "status", "created_at"},
}

type MatterRepository interface {
	ListMatters(ctx context.Context, query ListQuery) (Page[Matter], ListQuery, error)
	FetchMatter(ctx context.Context, id uuid.UUID) (Matter, error)
	InsertMatter(ctx context.Context, matter Matter) error
	UpdateMatter(ctx context.Context, matter Matter) error
	DeleteMatter(ctx context.Context, id uuid.UUID) error
}
