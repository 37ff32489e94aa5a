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

func NewHearingsRouter(env *Env) *chi.Mux {
	hearingsRouter := chi.NewRouter()

	hearingsRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		query, errs := domain.ParseListQuery(r.URL.Query(), domain.HearingListSchema)
		if errs != nil {
			writeJSON(w, http.StatusBadRequest, domain.ValidationError{Errors: errs})
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		page, effective, err := repo.ListHearings(r.Context(), query)
		if err != nil {
			log.Printf("failed to list hearings: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, envelope(domain.URL{URL: r.URL}, effective, page))
	})

	hearingsRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var hearing domain.Hearing
		if err := render.DecodeJSON(r.Body, &hearing); err != nil {
			log.Printf("malformed Hearing payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "hearing payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		if hearing.Status == "" {
			hearing.Status = domain.HearingStatusScheduled
		}
		if errs := domain.ValidateHearing(hearing); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		hearing.ID = uuid.New()
		if err := repo.InsertHearing(r.Context(), hearing); err != nil {
			log.Printf("failed to insert hearing: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, domain.FlashSuccess{
			Success: "Hearing scheduled successfully",
			ID:      hearing.ID.String(),
		})
	})

	hearingsRouter.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		hearing, err := repo.FetchHearing(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Hearing not found")
			return
		}
		if err != nil {
			log.Printf("failed to fetch hearing: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, hearing)
	})

	hearingsRouter.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var hearing domain.Hearing
		if err := render.DecodeJSON(r.Body, &hearing); err != nil {
			log.Printf("malformed Hearing payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "hearing payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		hearing.ID = id
		// Full replacement; a defaulted status would un-adjourn a hearing.
		if hearing.Status == "" {
			writeValidationErrors(w, domain.FieldErrors{"status": {"status is required"}})
			return
		}
		if errs := domain.ValidateHearing(hearing); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.UpdateHearing(r.Context(), hearing)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Hearing not found")
			return
		}
		if err != nil {
			log.Printf("failed to update hearing: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Hearing updated successfully"})
	})

	hearingsRouter.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.DeleteHearing(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Hearing not found")
			return
		}
		if err != nil {
			log.Printf("failed to delete hearing: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Hearing deleted successfully"})
	})

	return hearingsRouter
}
