package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/praxislegal/praxis/internal/domain"
)

type CourtDTO struct {
	ID     uuid.UUID `db:"id"`
	Name   []byte    `db:"name"`
	City   string    `db:"city"`
	Status string    `db:"status"`
}

func dtoFromCourt(court domain.Court) (dto CourtDTO, err error) {
	name, err := json.Marshal(court.Name)
	if err != nil {
		err = fmt.Errorf("failed to encode court name: %w", err)
		return
	}
	return CourtDTO{
		ID:     court.ID,
		Name:   name,
		City:   court.City,
		Status: string(court.Status),
	}, nil
}

func courtFromDTO(dto CourtDTO) (court domain.Court, err error) {
	var name domain.LocalizedText
	if err = json.Unmarshal(dto.Name, &name); err != nil {
		err = fmt.Errorf("failed to decode court name: %w", err)
		return
	}
	return domain.Court{
		ID:     dto.ID,
		Name:   name,
		City:   dto.City,
		Status: domain.Status(dto.Status),
	}, nil
}

var courtListSpec = listSpec{
	table:         "courts",
	selectColumns: "id, name, city, status",
	searchColumns: []string{"name->>'en'", "name->>'ar'", "city"},
	filterColumns: map[string]string{
		"status": "status = ?",
		"city":   "city = ?",
	},
	sortColumns: map[string]string{
		"city":       "city",
		"status":     "status",
		"created_at": "created_at",
	},
	defaultSort: "created_at DESC, id",
}

func (repo Repository) ListCourts(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Court], domain.ListQuery, error) {
	return listPage(ctx, repo, courtListSpec, query, courtFromDTO)
}

//go:embed queries/fetch-court.sql
var fetchCourtQuery string

func (repo Repository) FetchCourt(ctx context.Context, id uuid.UUID) (court domain.Court, err error) {
	rows, err := repo.Query(ctx, fetchCourtQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[CourtDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to CourtDTO: %w", err)
		return
	}
	if len(dtos) == 0 {
		err = ErrNotFound
		return
	}
	return courtFromDTO(dtos[0])
}

//go:embed queries/insert-court.sql
var insertCourtQuery string

func (repo Repository) InsertCourt(ctx context.Context, court domain.Court) error {
	dto, err := dtoFromCourt(court)
	if err != nil {
		return err
	}
	_, err = repo.Exec(ctx, insertCourtQuery, pgx.NamedArgs{
		"id":     dto.ID,
		"name":   dto.Name,
		"city":   dto.City,
		"status": dto.Status,
	})
	return err
}

//go:embed queries/update-court.sql
var updateCourtQuery string

func (repo Repository) UpdateCourt(ctx context.Context, court domain.Court) error {
	dto, err := dtoFromCourt(court)
	if err != nil {
		return err
	}
	res, err := repo.Exec(ctx, updateCourtQuery, pgx.NamedArgs{
		"id":     dto.ID,
		"name":   dto.Name,
		"city":   dto.City,
		"status": dto.Status,
	})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-court.sql
var deleteCourtQuery string

func (repo Repository) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteCourtQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/toggle-court-status.sql
var toggleCourtStatusQuery string

func (repo Repository) ToggleCourtStatus(ctx context.Context, id uuid.UUID) (status domain.Status, err error) {
	row := repo.QueryRow(ctx, toggleCourtStatusQuery, pgx.NamedArgs{"id": id})
	var raw string
	err = row.Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrNotFound
		return
	}
	if err != nil {
		err = fmt.Errorf("failed to toggle court status: %w", err)
		return
	}
	status = domain.Status(raw)
	return
}
