package postgres

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

const educatorColumns = `id, user_id, first_name, last_name, date_of_birth, gender, phone,
	address_line1, city, state, country, qualification, experience_years, hire_date,
	profile_image_url, subject_id`

func scanEducator(s rowScanner) (roster.Educator, error) {
	var edu roster.Educator
	var dob, hireDate null.Time
	var subjectID null.Int
	err := s.Scan(
		&edu.ID, &edu.UserID, &edu.FirstName, &edu.LastName, &dob, &edu.Gender, &edu.Phone,
		&edu.AddressLine1, &edu.City, &edu.State, &edu.Country, &edu.Qualification,
		&edu.ExperienceYears, &hireDate, &edu.ProfileImageURL, &subjectID,
	)
	edu.DateOfBirth = dob.Time
	edu.HireDate = hireDate.Time
	edu.SubjectID = subjectID.Ptr()
	return edu, err
}

func (repo rosterRepository) CreateEducator(ctx context.Context, edu roster.Educator, exec ...core.DBExecutor) (roster.Educator, error) {
	const q = `
		INSERT INTO educators (user_id, first_name, last_name, date_of_birth, gender, phone,
			address_line1, city, state, country, qualification, experience_years, hire_date,
			profile_image_url, subject_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(
		ctx, q, edu.UserID, edu.FirstName, edu.LastName,
		null.NewTime(edu.DateOfBirth, !edu.DateOfBirth.IsZero()),
		edu.Gender, edu.Phone, edu.AddressLine1, edu.City, edu.State, edu.Country,
		edu.Qualification, edu.ExperienceYears,
		null.NewTime(edu.HireDate, !edu.HireDate.IsZero()),
		edu.ProfileImageURL, null.IntFromPtr(edu.SubjectID),
	).Scan(&edu.ID)
	if err != nil {
		return roster.Educator{}, errors.Wrap(err, "inserting educator")
	}
	return edu, nil
}

func (repo rosterRepository) GetEducatorByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Educator, error) {
	edu, err := scanEducator(repo.getExec(exec).QueryRowContext(
		ctx, "SELECT "+educatorColumns+" FROM educators WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return roster.Educator{}, roster.ErrEducatorNotFound
		}
		return roster.Educator{}, errors.Wrap(err, "getting educator by id")
	}
	return edu, nil
}

func (repo rosterRepository) GetEducatorByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (roster.Educator, error) {
	edu, err := scanEducator(repo.getExec(exec).QueryRowContext(
		ctx, "SELECT "+educatorColumns+" FROM educators WHERE user_id = $1", userID))
	if err != nil {
		if isNoRows(err) {
			return roster.Educator{}, roster.ErrEducatorNotFound
		}
		return roster.Educator{}, errors.Wrap(err, "getting educator by user id")
	}
	return edu, nil
}

func (repo rosterRepository) GetEducatorsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Educator, error) {
	edus := make([]roster.Educator, 0, len(ids))
	if len(ids) == 0 {
		return edus, nil
	}
	q, args, err := inQuery("SELECT "+educatorColumns+" FROM educators WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, errors.Wrap(err, "getting educators by id")
	}

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting educators by id")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		edu, err := scanEducator(rows)
		if err != nil {
			return nil, errors.Wrap(err, "getting educators by id")
		}
		edus = append(edus, edu)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "getting educators by id")
	}
	if len(edus) != len(ids) {
		return nil, roster.ErrEducatorNotFound
	}
	return edus, nil
}

func (repo rosterRepository) QueryEducators(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Educator, int, error) {
	e := repo.getExec(exec)
	total, err := repo.count(ctx, e, "SELECT COUNT(*) FROM educators")
	if err != nil {
		return nil, 0, err
	}

	rows, err := e.QueryContext(
		ctx, "SELECT "+educatorColumns+" FROM educators ORDER BY id LIMIT $1 OFFSET $2", pg.Size, pg.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying educators")
	}
	defer func() { _ = rows.Close() }()

	edus := make([]roster.Educator, 0, pg.Size)
	for rows.Next() {
		edu, err := scanEducator(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "querying educators")
		}
		edus = append(edus, edu)
	}
	return edus, total, errors.Wrap(rows.Err(), "querying educators")
}

func (repo rosterRepository) UpdateEducator(ctx context.Context, edu roster.Educator, exec ...core.DBExecutor) (roster.Educator, error) {
	const q = `
		UPDATE educators
		SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4, phone = $5,
			address_line1 = $6, city = $7, state = $8, country = $9, qualification = $10,
			experience_years = $11, hire_date = $12, profile_image_url = $13, subject_id = $14
		WHERE id = $15`

	res, err := repo.getExec(exec).ExecContext(
		ctx, q, edu.FirstName, edu.LastName,
		null.NewTime(edu.DateOfBirth, !edu.DateOfBirth.IsZero()),
		edu.Gender, edu.Phone, edu.AddressLine1, edu.City, edu.State, edu.Country,
		edu.Qualification, edu.ExperienceYears,
		null.NewTime(edu.HireDate, !edu.HireDate.IsZero()),
		edu.ProfileImageURL, null.IntFromPtr(edu.SubjectID), edu.ID,
	)
	if err != nil {
		return roster.Educator{}, errors.Wrap(err, "updating educator")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return roster.Educator{}, errors.Wrap(err, "updating educator")
	}
	if n == 0 {
		return roster.Educator{}, roster.ErrEducatorNotFound
	}
	return edu, nil
}

func (repo rosterRepository) DeleteEducator(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, "DELETE FROM educators WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting educator")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting educator")
	}
	if n == 0 {
		return roster.ErrEducatorNotFound
	}
	return nil
}

func (repo rosterRepository) CountEducators(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return repo.count(ctx, repo.getExec(exec), "SELECT COUNT(*) FROM educators")
}
