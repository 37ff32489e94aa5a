package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Env carries the per-process dependencies handlers need.
type Env struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *chi.Mux {
	env := &Env{db: db}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Heartbeat("/health"))
	router.Use(middleware.Timeout(15 * time.Second))
	router.Use(addHostToRequestURL)
	router.Use(countRequests)

	router.Mount("/courts", NewCourtsRouter(env))
	router.Mount("/matters", NewMattersRouter(env))
	router.Mount("/hearings", NewHearingsRouter(env))
	router.Mount("/invoices", NewInvoicesRouter(env))
	router.Handle("/metrics", promhttp.Handler())

	return router
}
