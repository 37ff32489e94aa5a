package db

import (
	"context"
	"errors"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/praxislegal/praxis/internal/domain"
)

// ErrInvalidTransition reports an invoice status advance that the chain does
// not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

type InvoiceDTO struct {
	ID         uuid.UUID `db:"id"`
	Number     string    `db:"number"`
	MatterID   uuid.UUID `db:"matter_id"`
	Currency   string    `db:"currency"`
	Subtotal   int64     `db:"subtotal"`
	VATTotal   int64     `db:"vat_total"`
	GrandTotal int64     `db:"grand_total"`
	Status     string    `db:"status"`
}

func dtoFromInvoice(invoice domain.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:         invoice.ID,
		Number:     invoice.Number,
		MatterID:   invoice.MatterID,
		Currency:   invoice.Currency,
		Subtotal:   invoice.Subtotal,
		VATTotal:   invoice.VATTotal,
		GrandTotal: invoice.GrandTotal,
		Status:     string(invoice.Status),
	}
}

func invoiceFromDTO(dto InvoiceDTO) (domain.Invoice, error) {
	return domain.Invoice{
		ID:         dto.ID,
		Number:     dto.Number,
		MatterID:   dto.MatterID,
		Currency:   dto.Currency,
		Subtotal:   dto.Subtotal,
		VATTotal:   dto.VATTotal,
		GrandTotal: dto.GrandTotal,
		Status:     domain.InvoiceStatus(dto.Status),
	}, nil
}

var invoiceListSpec = listSpec{
	table:         "invoices",
	selectColumns: "id, number, matter_id, currency, subtotal, vat_total, grand_total, status",
	searchColumns: []string{"number"},
	filterColumns: map[string]string{
		"status":    "status = ?",
		"matter_id": "matter_id = ?",
		"currency":  "currency = ?",
	},
	sortColumns: map[string]string{
		"number":      "number",
		"status":      "status",
		"grand_total": "grand_total",
		"created_at":  "created_at",
	},
	defaultSort: "created_at DESC, id",
}

func (repo Repository) ListInvoices(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Invoice], domain.ListQuery, error) {
	return listPage(ctx, repo, invoiceListSpec, query, invoiceFromDTO)
}

//go:embed queries/fetch-invoice.sql
var fetchInvoiceQuery string

func (repo Repository) FetchInvoice(ctx context.Context, id uuid.UUID) (invoice domain.Invoice, err error) {
	rows, err := repo.Query(ctx, fetchInvoiceQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[InvoiceDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to InvoiceDTO: %w", err)
		return
	}
	if len(dtos) == 0 {
		err = ErrNotFound
		return
	}
	return invoiceFromDTO(dtos[0])
}

func invoiceNamedArgs(dto InvoiceDTO) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          dto.ID,
		"number":      dto.Number,
		"matter_id":   dto.MatterID,
		"currency":    dto.Currency,
		"subtotal":    dto.Subtotal,
		"vat_total":   dto.VATTotal,
		"grand_total": dto.GrandTotal,
		"status":      dto.Status,
	}
}

//go:embed queries/insert-invoice.sql
var insertInvoiceQuery string

func (repo Repository) InsertInvoice(ctx context.Context, invoice domain.Invoice) error {
	_, err := repo.Exec(ctx, insertInvoiceQuery, invoiceNamedArgs(dtoFromInvoice(invoice)))

	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}
	return err
}

//go:embed queries/update-invoice.sql
var updateInvoiceQuery string

func (repo Repository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	res, err := repo.Exec(ctx, updateInvoiceQuery, invoiceNamedArgs(dtoFromInvoice(invoice)))

	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-invoice.sql
var deleteInvoiceQuery string

func (repo Repository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteInvoiceQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/advance-invoice.sql
var advanceInvoiceQuery string

// AdvanceInvoice moves the invoice one step along the draft -> submitted ->
// approved -> billed chain. The update is guarded on the status read in the
// same transaction, so two racing advances cannot skip a step.
func (repo Repository) AdvanceInvoice(ctx context.Context, id uuid.UUID) (next domain.InvoiceStatus, err error) {
	err = repo.WithinTransaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, fetchInvoiceStatusQuery, pgx.NamedArgs{"id": id})
		var current string
		if scanErr := row.Scan(&current); scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read invoice status: %w", scanErr)
		}

		advanced, advErr := domain.AdvanceInvoiceStatus(domain.InvoiceStatus(current))
		if advErr != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, advErr)
		}

		res, execErr := tx.Exec(ctx, advanceInvoiceQuery, pgx.NamedArgs{
			"id":   id,
			"from": current,
			"to":   string(advanced),
		})
		if execErr != nil {
			return fmt.Errorf("failed to advance invoice: %w", execErr)
		}
		if res.RowsAffected() == 0 {
			return ErrInvalidTransition
		}
		next = advanced
		return nil
	})
	return
}

//go:embed queries/fetch-invoice-status.sql
var fetchInvoiceStatusQuery string
