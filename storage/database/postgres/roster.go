package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

type rosterRepository struct {
	exec core.DBExecutor
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *sqlx.DB) *rosterRepository {
	return &rosterRepository{exec: db.DB}
}

func (repo rosterRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (repo rosterRepository) queryIDs(ctx context.Context, exec core.DBExecutor, q string, args ...interface{}) ([]int, error) {
	rows, err := exec.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (repo rosterRepository) count(ctx context.Context, exec core.DBExecutor, q string, args ...interface{}) (int, error) {
	var n int
	if err := exec.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting rows")
	}
	return n, nil
}
