// Package postgres implements the repositories on PostgreSQL. Writes
// are guarded twice: services pre-check uniqueness for friendly errors,
// and unique constraints back them up under concurrency, mapped to the
// same domain sentinels here.
package postgres

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// trapConflictErr maps a unique constraint violation to the matching
// domain sentinel, wrapping anything else.
func trapConflictErr(err error, constraints map[string]error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if domainErr, ok := constraints[pqErr.Constraint]; ok {
			return domainErr
		}
	}
	return errors.Wrap(err, msg)
}

// inQuery expands "IN (?)" placeholders and rebinds to $N params.
func inQuery(query string, args ...interface{}) (string, []interface{}, error) {
	q, params, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), params, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
