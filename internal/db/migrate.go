package db

import (
	"context"
	"embed"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrateTo brings the database at connectionURL to the requested migration
// version; pass "latest" for the newest one.
func MigrateTo(ctx context.Context, connectionURL string, version string) (err error) {
	db, err := goose.OpenDBWithDriver("pgx", connectionURL)
	if err != nil {
		return fmt.Errorf("failed to connect with database: %w", err)
	}
	defer func() {
		if dbErr := db.Close(); dbErr != nil && err == nil {
			err = fmt.Errorf("failed to close database connection: %w", dbErr)
		}
	}()

	goose.SetBaseFS(Migrations)
	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if version == "latest" {
		return goose.UpContext(ctx, db, "migrations")
	}
	versionInt, err := strconv.ParseInt(version, 10, 0)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	return goose.UpToContext(ctx, db, "migrations", versionInt)
}
