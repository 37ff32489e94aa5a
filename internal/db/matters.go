package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/praxislegal/praxis/internal/domain"
)

type MatterDTO struct {
	ID            uuid.UUID   `db:"id"`
	Reference     string      `db:"reference"`
	Title         []byte      `db:"title"`
	ClientName    string      `db:"client_name"`
	PracticeAreas []string    `db:"practice_areas"`
	Status        string      `db:"status"`
	CourtID       pgtype.UUID `db:"court_id"`
}

func dtoFromMatter(matter domain.Matter) (dto MatterDTO, err error) {
	title, err := json.Marshal(matter.Title)
	if err != nil {
		err = fmt.Errorf("failed to encode matter title: %w", err)
		return
	}
	return MatterDTO{
		ID:            matter.ID,
		Reference:     matter.Reference,
		Title:         title,
		ClientName:    matter.ClientName,
		PracticeAreas: matter.PracticeAreas,
		Status:        string(matter.Status),
		CourtID:       pgtype.UUID{Bytes: matter.CourtID, Valid: matter.CourtID != (uuid.UUID{})},
	}, nil
}

func matterFromDTO(dto MatterDTO) (matter domain.Matter, err error) {
	var title domain.LocalizedText
	if err = json.Unmarshal(dto.Title, &title); err != nil {
		err = fmt.Errorf("failed to decode matter title: %w", err)
		return
	}
	var courtID uuid.UUID
	if dto.CourtID.Valid {
		courtID = dto.CourtID.Bytes
	}
	return domain.Matter{
		ID:            dto.ID,
		Reference:     dto.Reference,
		Title:         title,
		ClientName:    dto.ClientName,
		PracticeAreas: domain.NewSet(dto.PracticeAreas...),
		Status:        domain.MatterStatus(dto.Status),
		CourtID:       courtID,
	}, nil
}

var matterListSpec = listSpec{
	table:         "matters",
	selectColumns: "id, reference, title, client_name, practice_areas, status, court_id",
	searchColumns: []string{"reference", "title->>'en'", "title->>'ar'", "client_name"},
	filterColumns: map[string]string{
		"status":        "status = ?",
		"practice_area": "? = ANY(practice_areas)",
		"court_id":      "court_id = ?",
	},
	sortColumns: map[string]string{
		"reference":   "reference",
		"client_name": "client_name",
		"status":      "status",
		"created_at":  "created_at",
	},
	defaultSort: "created_at DESC, id",
}

func (repo Repository) ListMatters(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Matter], domain.ListQuery, error) {
	return listPage(ctx, repo, matterListSpec, query, matterFromDTO)
}

//go:embed queries/fetch-matter.sql
var fetchMatterQuery string

func (repo Repository) FetchMatter(ctx context.Context, id uuid.UUID) (matter domain.Matter, err error) {
	rows, err := repo.Query(ctx, fetchMatterQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[MatterDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to MatterDTO: %w", err)
		return
	}
	if len(dtos) == 0 {
		err = ErrNotFound
		return
	}
	return matterFromDTO(dtos[0])
}

func matterNamedArgs(dto MatterDTO) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":             dto.ID,
		"reference":      dto.Reference,
		"title":          dto.Title,
		"client_name":    dto.ClientName,
		"practice_areas": dto.PracticeAreas,
		"status":         dto.Status,
		"court_id":       dto.CourtID,
	}
}

//go:embed queries/insert-matter.sql
var insertMatterQuery string

func (repo Repository) InsertMatter(ctx context.Context, matter domain.Matter) error {
	dto, err := dtoFromMatter(matter)
	if err != nil {
		return err
	}
	_, err = repo.Exec(ctx, insertMatterQuery, matterNamedArgs(dto))

	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}
	return err
}

//go:embed queries/update-matter.sql
var updateMatterQuery string

func (repo Repository) UpdateMatter(ctx context.Context, matter domain.Matter) error {
	dto, err := dtoFromMatter(matter)
	if err != nil {
		return err
	}
	res, err := repo.Exec(ctx, updateMatterQuery, matterNamedArgs(dto))

	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-matter.sql
var deleteMatterQuery string

func (repo Repository) DeleteMatter(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteMatterQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}
