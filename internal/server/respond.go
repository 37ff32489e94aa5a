package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/praxislegal/praxis/internal/db"
	"github.com/praxislegal/praxis/internal/domain"
)

func acquireRepository(env *Env, w http.ResponseWriter, r *http.Request) (repo db.Repository, release func(), ok bool) {
	conn, err := env.db.Acquire(r.Context())
	if err != nil {
		log.Printf("failed to acquire db connection: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	return db.NewRepository(conn), conn.Release, true
}

func parseID(w http.ResponseWriter, r *http.Request) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.FlashError{Error: "invalid id"})
		return
	}
	return id, true
}

func writeValidationErrors(w http.ResponseWriter, errs domain.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, domain.ValidationError{Errors: errs})
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, domain.FlashError{Error: message})
}
