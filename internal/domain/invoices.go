package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type InvoiceStatus string

// Invoice statuses form a one-way chain: draft -> submitted -> approved -> billed.
const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSubmitted InvoiceStatus = "submitted"
	InvoiceStatusApproved  InvoiceStatus = "approved"
	InvoiceStatusBilled    InvoiceStatus = "billed"
)

var invoiceStatusNext = map[InvoiceStatus]InvoiceStatus{
	InvoiceStatusDraft:     InvoiceStatusSubmitted,
	InvoiceStatusSubmitted: InvoiceStatusApproved,
	InvoiceStatusApproved:  InvoiceStatusBilled,
}

func ValidInvoiceStatus(status InvoiceStatus) bool {
	if status == InvoiceStatusBilled {
		return true
	}
	_, ok := invoiceStatusNext[status]
	return ok
}

// AdvanceInvoiceStatus returns the next status in the chain, or an error for
// a billed invoice, which is terminal.
func AdvanceInvoiceStatus(status InvoiceStatus) (InvoiceStatus, error) {
	next, ok := invoiceStatusNext[status]
	if !ok {
		return status, fmt.Errorf("invoice in status %q cannot advance", status)
	}
	return next, nil
}

// Invoice carries the pre-computed totals bundle in minor currency units.
// Totals are computed upstream; the API only checks their consistency.
type Invoice struct {
	ID         uuid.UUID     `json:"id"`
	Number     string        `json:"number"`
	MatterID   uuid.UUID     `json:"matter_id"`
	Currency   string        `json:"currency"`
	Subtotal   int64         `json:"subtotal"`
	VATTotal   int64         `json:"vat_total"`
	GrandTotal int64         `json:"grand_total"`
	Status     InvoiceStatus `json:"status"`
}

func ValidateInvoice(invoice Invoice) FieldErrors {
	errs := FieldErrors{}
	if invoice.Number == "" {
		errs.Add("number", "number is required")
	}
	if invoice.MatterID == (uuid.UUID{}) {
		errs.Add("matter_id", "matter_id is required")
	}
	if invoice.Currency == "" {
		errs.Add("currency", "currency is required")
	}
	if invoice.Subtotal < 0 {
		errs.Add("subtotal", "subtotal must not be negative")
	}
	if invoice.VATTotal < 0 {
		errs.Add("vat_total", "vat_total must not be negative")
	}
	if invoice.GrandTotal != invoice.Subtotal+invoice.VATTotal {
		errs.Add("grand_total", "grand_total must equal subtotal plus vat_total")
	}
	if invoice.Status != "" && !ValidInvoiceStatus(invoice.Status) {
		errs.Add("status", "status must be draft, submitted, approved or billed")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var InvoiceListSchema = ListSchema{
	FilterNames: []string{"status", "matter_id", "currency"},
	SortFields:  []string{"number", "status", "grand_total", "created_at"},
}

type InvoiceRepository interface {
	ListInvoices(ctx context.Context, query ListQuery) (Page[Invoice], ListQuery, error)
	FetchInvoice(ctx context.Context, id uuid.UUID) (Invoice, error)
	InsertInvoice(ctx context.Context, invoice Invoice) error
	UpdateInvoice(ctx context.Context, invoice Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	AdvanceInvoice(ctx context.Context, id uuid.UUID) (InvoiceStatus, error)
}
