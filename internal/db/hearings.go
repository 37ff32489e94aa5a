package db

import (
	"context"
	"fmt"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/praxislegal/praxis/internal/domain"
)

type HearingDTO struct {
	ID          uuid.UUID `db:"id"`
	MatterID    uuid.UUID `db:"matter_id"`
	CourtID     uuid.UUID `db:"court_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Status      string    `db:"status"`
	Notes       string    `db:"notes"`
}

func dtoFromHearing(hearing domain.Hearing) HearingDTO {
	return HearingDTO{
		ID:          hearing.ID,
		MatterID:    hearing.MatterID,
		CourtID:     hearing.CourtID,
		ScheduledAt: hearing.ScheduledAt,
		Status:      string(hearing.Status),
		Notes:       hearing.Notes,
	}
}

func hearingFromDTO(dto HearingDTO) (domain.Hearing, error) {
	return domain.Hearing{
		ID:          dto.ID,
		MatterID:    dto.MatterID,
		CourtID:     dto.CourtID,
		ScheduledAt: dto.ScheduledAt,
		Status:      domain.HearingStatus(dto.Status),
		Notes:       dto.Notes,
	}, nil
}

var hearingListSpec = listSpec{
	table:         "hearings",
	selectColumns: "id, matter_id, court_id, scheduled_at, status, notes",
	searchColumns: []string{"notes"},
	filterColumns: map[string]string{
		"status":    "status = ?",
		"court_id":  "court_id = ?",
		"matter_id": "matter_id = ?",
	},
	sortColumns: map[string]string{
		"scheduled_at": "scheduled_at",
		"status":       "status",
		"created_at":   "created_at",
	},
	defaultSort: "scheduled_at ASC, id",
}

func (repo Repository) ListHearings(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Hearing], domain.ListQuery, error) {
	return listPage(ctx, repo, hearingListSpec, query, hearingFromDTO)
}

//go:embed queries/fetch-hearing.sql
var fetchHearingQuery string

func (repo Repository) FetchHearing(ctx context.Context, id uuid.UUID) (hearing domain.Hearing, err error) {
	rows, err := repo.Query(ctx, fetchHearingQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[HearingDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to HearingDTO: %w", err)
		return
	}
	if len(dtos) == 0 {
		err = ErrNotFound
		return
	}
	return hearingFromDTO(dtos[0])
}

func hearingNamedArgs(dto HearingDTO) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":           dto.ID,
		"matter_id":    dto.MatterID,
		"court_id":     dto.CourtID,
		"scheduled_at": dto.ScheduledAt,
		"status":       dto.Status,
		"notes":        dto.Notes,
	}
}

//go:embed queries/insert-hearing.sql
var insertHearingQuery string

func (repo Repository) InsertHearing(ctx context.Context, hearing domain.Hearing) error {
	_, err := repo.Exec(ctx, insertHearingQuery, hearingNamedArgs(dtoFromHearing(hearing)))
	return err
}

//go:embed queries/update-hearing.sql
var updateHearingQuery string

func (repo Repository) UpdateHearing(ctx context.Context, hearing domain.Hearing) error {
	res, err := repo.Exec(ctx, updateHearingQuery, hearingNamedArgs(dtoFromHearing(hearing)))
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-hearing.sql
var deleteHearingQuery string

func (repo Repository) DeleteHearing(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteHearingQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}
