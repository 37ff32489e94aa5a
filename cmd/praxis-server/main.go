package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/praxislegal/praxis/internal/config"
	"github.com/praxislegal/praxis/internal/server"
)

var (
	configPath = flag.String("config", "", "path to an optional YAML config file")
	dbURL      = flag.String("db-url", "", "URL-formatted connection string to the database server. Overrides the config file and PRAXIS_DB_URL.")
	port       = flag.Int("port", 0, "port to listen on. Overrides the config file and PRAXIS_PORT.")
)

func main() {
	ctx := context.Background()

	// Optional .env for local development; missing files are fine.
	_ = godotenv.Load()

	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %s\n", err)
	}
	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if cfg.Database.URL == "" {
		log.Print("a database URL is required (-db-url, PRAXIS_DB_URL, or the config file)\n")
		flag.Usage()
		return
	}

	db, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %s\n", err)
	}
	defer db.Close()

	router := server.New(db)
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port))
	if err != nil {
		log.Fatalf("failed to listen on specified address: %s\n", err)
	}

	done := make(chan error)
	go func() {
		done <- http.Serve(listener, router)
	}()
	log.Printf("listening on http://%s...\n", listener.Addr())
	if err = <-done; err != nil {
		log.Fatalf("failed to start server: %s", err)
	}
}
