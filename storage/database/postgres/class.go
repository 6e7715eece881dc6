package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

var classConstraints = map[string]error{
	"uq_classes_code": roster.ErrClassCodeExists,
}

const classColumns = "id, name, code, description"

func scanClass(s rowScanner) (roster.Class, error) {
	var class roster.Class
	err := s.Scan(&class.ID, &class.Name, &class.Code, &class.Description)
	return class, err
}

func (repo rosterRepository) CheckCodeUniqueness(ctx context.Context, code string, excludedID int, exec ...core.DBExecutor) error {
	var id int
	err := repo.getExec(exec).QueryRowContext(
		ctx, "SELECT id FROM classes WHERE code = $1 AND id <> $2", code, excludedID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return errors.Wrap(err, "checking class code uniqueness")
	}
	return roster.ErrClassCodeExists
}

func (repo rosterRepository) CreateClass(ctx context.Context, class roster.Class, exec ...core.DBExecutor) (roster.Class, error) {
	const q = `
		INSERT INTO classes (name, code, description)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(ctx, q, class.Name, class.Code, class.Description).Scan(&class.ID)
	if err != nil {
		return roster.Class{}, trapConflictErr(err, classConstraints, "inserting class")
	}
	return class, nil
}

func (repo rosterRepository) GetClassByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Class, error) {
	class, err := scanClass(repo.getExec(exec).QueryRowContext(ctx, "SELECT "+classColumns+" FROM classes WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return roster.Class{}, roster.ErrClassNotFound
		}
		return roster.Class{}, errors.Wrap(err, "getting class by id")
	}
	return class, nil
}

func (repo rosterRepository) GetClassesByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Class, error) {
	classes := make([]roster.Class, 0, len(ids))
	if len(ids) == 0 {
		return classes, nil
	}
	q, args, err := inQuery("SELECT "+classColumns+" FROM classes WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, errors.Wrap(err, "getting classes by id")
	}

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting classes by id")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, errors.Wrap(err, "getting classes by id")
		}
		classes = append(classes, class)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "getting classes by id")
	}
	if len(classes) != len(ids) {
		return nil, roster.ErrClassNotFound
	}
	return classes, nil
}

func (repo rosterRepository) QueryClasses(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Class, int, error) {
	e := repo.getExec(exec)
	total, err := repo.count(ctx, e, "SELECT COUNT(*) FROM classes")
	if err != nil {
		return nil, 0, err
	}

	rows, err := e.QueryContext(
		ctx, "SELECT "+classColumns+" FROM classes ORDER BY id LIMIT $1 OFFSET $2", pg.Size, pg.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying classes")
	}
	defer func() { _ = rows.Close() }()

	classes := make([]roster.Class, 0, pg.Size)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "querying classes")
		}
		classes = append(classes, class)
	}
	return classes, total, errors.Wrap(rows.Err(), "querying classes")
}

func (repo rosterRepository) UpdateClass(ctx context.Context, class roster.Class, exec ...core.DBExecutor) (roster.Class, error) {
	const q = `
		UPDATE classes
		SET name = $1, code = $2, description = $3
		WHERE id = $4`

	res, err := repo.getExec(exec).ExecContext(ctx, q, class.Name, class.Code, class.Description, class.ID)
	if err != nil {
		return roster.Class{}, trapConflictErr(err, classConstraints, "updating class")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return roster.Class{}, errors.Wrap(err, "updating class")
	}
	if n == 0 {
		return roster.Class{}, roster.ErrClassNotFound
	}
	return class, nil
}

func (repo rosterRepository) DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, "DELETE FROM classes WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if n == 0 {
		return roster.ErrClassNotFound
	}
	return nil
}

func (repo rosterRepository) CountClasses(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return repo.count(ctx, repo.getExec(exec), "SELECT COUNT(*) FROM classes")
}
