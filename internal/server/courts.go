package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/praxislegal/praxis/internal/db"
	"github.com/praxislegal/praxis/internal/domain"
)

func NewCourtsRouter(env *Env) *chi.Mux {
	courtsRouter := chi.NewRouter()

	courtsRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		query, errs := domain.ParseListQuery(r.URL.Query(), domain.CourtListSchema)
		if errs != nil {
			writeJSON(w, http.StatusBadRequest, domain.ValidationError{Errors: errs})
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		page, effective, err := repo.ListCourts(r.Context(), query)
		if err != nil {
			log.Printf("failed to list courts: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, envelope(domain.URL{URL: r.URL}, effective, page))
	})

	courtsRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var court domain.Court
		if err := render.DecodeJSON(r.Body, &court); err != nil {
			log.Printf("malformed Court payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "court payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		if court.Status == "" {
			court.Status = domain.StatusActive
		}
		if errs := domain.ValidateCourt(court); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		court.ID = uuid.New()
		if err := repo.InsertCourt(r.Context(), court); err != nil {
			log.Printf("failed to insert court: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, domain.FlashSuccess{
			Success: "Court created successfully",
			ID:      court.ID.String(),
		})
	})

	courtsRouter.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		court, err := repo.FetchCourt(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Court not found")
			return
		}
		if err != nil {
			log.Printf("failed to fetch court: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, court)
	})

	courtsRouter.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var court domain.Court
		if err := render.DecodeJSON(r.Body, &court); err != nil {
			log.Printf("malformed Court payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "court payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		court.ID = id
		// An update replaces the whole record; defaulting a missing status
		// here would silently reactivate an inactive court.
		if court.Status == "" {
			writeValidationErrors(w, domain.FieldErrors{"status": {"status is required"}})
			return
		}
		if errs := domain.ValidateCourt(court); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.UpdateCourt(r.Context(), court)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Court not found")
			return
		}
		if err != nil {
			log.Printf("failed to update court: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Court updated successfully"})
	})

	courtsRouter.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.DeleteCourt(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Court not found")
			return
		}
		if err != nil {
			log.Printf("failed to delete court: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Court deleted successfully"})
	})

	courtsRouter.Put("/{id}/toggle-status", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		status, err := repo.ToggleCourtStatus(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Court not found")
			return
		}
		if err != nil {
			log.Printf("failed to toggle court status: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		message := "Court deactivated successfully"
		if status == domain.StatusActive {
			message = "Court activated successfully"
		}
		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: message})
	})

	return courtsRouter
}
