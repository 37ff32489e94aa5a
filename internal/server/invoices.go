package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/praxislegal/praxis/internal/db"
	"github.com/praxislegal/praxis/internal/domain"
)

func NewInvoicesRouter(env *Env) *chi.Mux {
	invoicesRouter := chi.NewRouter()

	invoicesRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		query, errs := domain.ParseListQuery(r.URL.Query(), domain.InvoiceListSchema)
		if errs != nil {
			writeJSON(w, http.StatusBadRequest, domain.ValidationError{Errors: errs})
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		page, effective, err := repo.ListInvoices(r.Context(), query)
		if err != nil {
			log.Printf("failed to list invoices: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, envelope(domain.URL{URL: r.URL}, effective, page))
	})

	invoicesRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var invoice domain.Invoice
		if err := render.DecodeJSON(r.Body, &invoice); err != nil {
			log.Printf("malformed Invoice payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "invoice payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		if invoice.Status == "" {
			invoice.Status = domain.InvoiceStatusDraft
		}
		if errs := domain.ValidateInvoice(invoice); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		invoice.ID = uuid.New()
		err := repo.InsertInvoice(r.Context(), invoice)
		if errors.Is(err, db.ErrConflict) {
			writeValidationErrors(w, domain.FieldErrors{
				"number": {"an invoice with this number already exists"},
			})
			return
		}
		if err != nil {
			log.Printf("failed to insert invoice: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, domain.FlashSuccess{
			Success: "Invoice created successfully",
			ID:      invoice.ID.String(),
		})
	})

	invoicesRouter.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		invoice, err := repo.FetchInvoice(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Invoice not found")
			return
		}
		if err != nil {
			log.Printf("failed to fetch invoice: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, invoice)
	})

	invoicesRouter.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var invoice domain.Invoice
		if err := render.DecodeJSON(r.Body, &invoice); err != nil {
			log.Printf("malformed Invoice payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "invoice payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		invoice.ID = id
		// Full replacement; a defaulted status would drop an approved
		// invoice back to draft.
		if invoice.Status == "" {
			writeValidationErrors(w, domain.FieldErrors{"status": {"status is required"}})
			return
		}
		if errs := domain.ValidateInvoice(invoice); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.UpdateInvoice(r.Context(), invoice)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Invoice not found")
			return
		}
		if errors.Is(err, db.ErrConflict) {
			writeValidationErrors(w, domain.FieldErrors{
				"number": {"an invoice with this number already exists"},
			})
			return
		}
		if err != nil {
			log.Printf("failed to update invoice: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Invoice updated successfully"})
	})

	invoicesRouter.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.DeleteInvoice(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Invoice not found")
			return
		}
		if err != nil {
			log.Printf("failed to delete invoice: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Invoice deleted successfully"})
	})

	invoicesRouter.Put("/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		status, err := repo.AdvanceInvoice(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Invoice not found")
			return
		}
		if errors.Is(err, db.ErrInvalidTransition) {
			writeJSON(w, http.StatusUnprocessableEntity, domain.FlashError{
				Error: "invoice status cannot advance further",
			})
			return
		}
		if err != nil {
			log.Printf("failed to advance invoice status: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{
			Success: fmt.Sprintf("Invoice moved to %s", status),
		})
	})

	return invoicesRouter
}
