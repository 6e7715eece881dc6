package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

var subjectConstraints = map[string]error{
	"uq_subjects_name": roster.ErrSubjectNameExists,
}

const subjectColumns = "id, name, description"

func scanSubject(s rowScanner) (roster.Subject, error) {
	var sub roster.Subject
	err := s.Scan(&sub.ID, &sub.Name, &sub.Description)
	return sub, err
}

func (repo rosterRepository) CheckNameUniqueness(ctx context.Context, name string, excludedID int, exec ...core.DBExecutor) error {
	var id int
	err := repo.getExec(exec).QueryRowContext(
		ctx, "SELECT id FROM subjects WHERE name = $1 AND id <> $2", name, excludedID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return errors.Wrap(err, "checking subject name uniqueness")
	}
	return roster.ErrSubjectNameExists
}

func (repo rosterRepository) CreateSubject(ctx context.Context, sub roster.Subject, exec ...core.DBExecutor) (roster.Subject, error) {
	const q = `
		INSERT INTO subjects (name, description)
		VALUES ($1, $2)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(ctx, q, sub.Name, sub.Description).Scan(&sub.ID)
	if err != nil {
		return roster.Subject{}, trapConflictErr(err, subjectConstraints, "inserting subject")
	}
	return sub, nil
}

func (repo rosterRepository) GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Subject, error) {
	sub, err := scanSubject(repo.getExec(exec).QueryRowContext(
		ctx, "SELECT "+subjectColumns+" FROM subjects WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return roster.Subject{}, roster.ErrSubjectNotFound
		}
		return roster.Subject{}, errors.Wrap(err, "getting subject by id")
	}
	return sub, nil
}

func (repo rosterRepository) GetSubjectsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Subject, error) {
	subs := make([]roster.Subject, 0, len(ids))
	if len(ids) == 0 {
		return subs, nil
	}
	q, args, err := inQuery("SELECT "+subjectColumns+" FROM subjects WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, errors.Wrap(err, "getting subjects by id")
	}

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting subjects by id")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "getting subjects by id")
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "getting subjects by id")
	}
	if len(subs) != len(ids) {
		return nil, roster.ErrSubjectNotFound
	}
	return subs, nil
}

func (repo rosterRepository) QuerySubjects(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Subject, int, error) {
	e := repo.getExec(exec)
	total, err := repo.count(ctx, e, "SELECT COUNT(*) FROM subjects")
	if err != nil {
		return nil, 0, err
	}

	rows, err := e.QueryContext(
		ctx, "SELECT "+subjectColumns+" FROM subjects ORDER BY id LIMIT $1 OFFSET $2", pg.Size, pg.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying subjects")
	}
	defer func() { _ = rows.Close() }()

	subs := make([]roster.Subject, 0, pg.Size)
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "querying subjects")
		}
		subs = append(subs, sub)
	}
	return subs, total, errors.Wrap(rows.Err(), "querying subjects")
}

func (repo rosterRepository) UpdateSubject(ctx context.Context, sub roster.Subject, exec ...core.DBExecutor) (roster.Subject, error) {
	const q = `
		UPDATE subjects
		SET name = $1, description = $2
		WHERE id = $3`

	res, err := repo.getExec(exec).ExecContext(ctx, q, sub.Name, sub.Description, sub.ID)
	if err != nil {
		return roster.Subject{}, trapConflictErr(err, subjectConstraints, "updating subject")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return roster.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n == 0 {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	return sub, nil
}

func (repo rosterRepository) DeleteSubject(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if n == 0 {
		return roster.ErrSubjectNotFound
	}
	return nil
}

func (repo rosterRepository) CountSubjects(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return repo.count(ctx, repo.getExec(exec), "SELECT COUNT(*) FROM subjects")
}
