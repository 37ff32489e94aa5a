package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// DBConnection is the subset of pgx connection behavior the repositories
// need, satisfied by *pgx.Conn, *pgxpool.Conn and pgx.Tx alike.
type DBConnection interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

type Repository struct {
	DBConnection
}

func NewRepository(conn DBConnection) Repository {
	return Repository{conn}
}

func (repo Repository) WithinTransaction(ctx context.Context, op func(tx pgx.Tx) error) (err error) {
	tx, err := repo.DBConnection.Begin(ctx)
	if err != nil {
		return
	}
	defer tx.Rollback(ctx)
	err = op(tx)
	if err != nil {
		return
	}
	return tx.Commit(ctx)
}
