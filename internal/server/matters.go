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

func NewMattersRouter(env *Env) *chi.Mux {
	mattersRouter := chi.NewRouter()

	mattersRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		query, errs := domain.ParseListQuery(r.URL.Query(), domain.MatterListSchema)
		if errs != nil {
			writeJSON(w, http.StatusBadRequest, domain.ValidationError{Errors: errs})
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		page, effective, err := repo.ListMatters(r.Context(), query)
		if err != nil {
			log.Printf("failed to list matters: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, envelope(domain.URL{URL: r.URL}, effective, page))
	})

	mattersRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var matter domain.Matter
		if err := render.DecodeJSON(r.Body, &matter); err != nil {
			log.Printf("malformed Matter payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "matter payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		if matter.Status == "" {
			matter.Status = domain.MatterStatusOpen
		}
		if errs := domain.ValidateMatter(matter); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		matter.ID = uuid.New()
		err := repo.InsertMatter(r.Context(), matter)
		if errors.Is(err, db.ErrConflict) {
			writeValidationErrors(w, domain.FieldErrors{
				"reference": {"a matter with this reference already exists"},
			})
			return
		}
		if err != nil {
			log.Printf("failed to insert matter: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, domain.FlashSuccess{
			Success: "Matter created successfully",
			ID:      matter.ID.String(),
		})
	})

	mattersRouter.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		matter, err := repo.FetchMatter(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Matter not found")
			return
		}
		if err != nil {
			log.Printf("failed to fetch matter: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, matter)
	})

	mattersRouter.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var matter domain.Matter
		if err := render.DecodeJSON(r.Body, &matter); err != nil {
			log.Printf("malformed Matter payload: %s", err)
			writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "matter payload is not valid JSON"})
			return
		}
		defer r.Body.Close()

		matter.ID = id
		// Full replacement; a defaulted status would reopen a closed matter.
		if matter.Status == "" {
			writeValidationErrors(w, domain.FieldErrors{"status": {"status is required"}})
			return
		}
		if errs := domain.ValidateMatter(matter); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.UpdateMatter(r.Context(), matter)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Matter not found")
			return
		}
		if errors.Is(err, db.ErrConflict) {
			writeValidationErrors(w, domain.FieldErrors{
				"reference": {"a matter with this reference already exists"},
			})
			return
		}
		if err != nil {
			log.Printf("failed to update matter: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Matter updated successfully"})
	})

	mattersRouter.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		repo, release, ok := acquireRepository(env, w, r)
		if !ok {
			return
		}
		defer release()

		err := repo.DeleteMatter(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			writeNotFound(w, "Matter not found")
			return
		}
		if err != nil {
			log.Printf("failed to delete matter: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, domain.FlashSuccess{Success: "Matter deleted successfully"})
	})

	return mattersRouter
}
