package core

import (
	"context"
	"database/sql"
)

type (
	// DBExecutor is satisfied by both *sql.DB and *sql.Tx.
	DBExecutor interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		Query(query string, args ...interface{}) (*sql.Rows, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRow(query string, args ...interface{}) *sql.Row
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}

	// Transactor runs fn as a single atomic unit of work: either every
	// write inside fn commits, or none do. The DBExecutor handed to fn
	// must be forwarded to every repository call made inside fn.
	Transactor interface {
		InTx(ctx context.Context, fn func(exec DBExecutor) error) error
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination is a 0-based page request.
type Pagination struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

func (pg *Pagination) Clean() {
	if pg.Page < 0 {
		pg.Page = 0
	}
	if pg.Size <= 0 {
		pg.Size = defaultPageSize
	}
	if pg.Size > maxPageSize {
		pg.Size = maxPageSize
	}
}

func (pg Pagination) Offset() int {
	return pg.Page * pg.Size
}
