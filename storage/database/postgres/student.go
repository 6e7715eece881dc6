package postgres

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

var studentConstraints = map[string]error{
	"uq_students_roll_number": roster.ErrRollNumberExists,
}

const studentColumns = `id, user_id, first_name, last_name, date_of_birth, gender, phone,
	address_line1, city, state, country, guardian_name, guardian_phone, enrollment_date,
	grade, roll_number, profile_image_url, class_id`

func scanStudent(s rowScanner) (roster.Student, error) {
	var std roster.Student
	var dob, enrollment null.Time
	var classID null.Int
	err := s.Scan(
		&std.ID, &std.UserID, &std.FirstName, &std.LastName, &dob, &std.Gender, &std.Phone,
		&std.AddressLine1, &std.City, &std.State, &std.Country, &std.GuardianName,
		&std.GuardianPhone, &enrollment, &std.Grade, &std.RollNumber, &std.ProfileImageURL,
		&classID,
	)
	std.DateOfBirth = dob.Time
	std.EnrollmentDate = enrollment.Time
	std.ClassID = classID.Ptr()
	return std, err
}

func (repo rosterRepository) CheckRollNumberUniqueness(ctx context.Context, rollNumber string, excludedID int, exec ...core.DBExecutor) error {
	var id int
	err := repo.getExec(exec).QueryRowContext(
		ctx, "SELECT id FROM students WHERE roll_number = $1 AND id <> $2", rollNumber, excludedID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return errors.Wrap(err, "checking roll number uniqueness")
	}
	return roster.ErrRollNumberExists
}

func (repo rosterRepository) CreateStudent(ctx context.Context, std roster.Student, exec ...core.DBExecutor) (roster.Student, error) {
	const q = `
		INSERT INTO students (user_id, first_name, last_name, date_of_birth, gender, phone,
			address_line1, city, state, country, guardian_name, guardian_phone, enrollment_date,
			grade, roll_number, profile_image_url, class_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(
		ctx, q, std.UserID, std.FirstName, std.LastName,
		null.NewTime(std.DateOfBirth, !std.DateOfBirth.IsZero()),
		std.Gender, std.Phone, std.AddressLine1, std.City, std.State, std.Country,
		std.GuardianName, std.GuardianPhone,
		null.NewTime(std.EnrollmentDate, !std.EnrollmentDate.IsZero()),
		std.Grade, std.RollNumber, std.ProfileImageURL, null.IntFromPtr(std.ClassID),
	).Scan(&std.ID)
	if err != nil {
		return roster.Student{}, trapConflictErr(err, studentConstraints, "inserting student")
	}
	return std, nil
}

func (repo rosterRepository) GetStudentByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Student, error) {
	std, err := scanStudent(repo.getExec(exec).QueryRowContext(
		ctx, "SELECT "+studentColumns+" FROM students WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return roster.Student{}, roster.ErrStudentNotFound
		}
		return roster.Student{}, errors.Wrap(err, "getting student by id")
	}
	return std, nil
}

func (repo rosterRepository) GetStudentByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (roster.Student, error) {
	std, err := scanStudent(repo.getExec(exec).QueryRowContext(
		ctx, "SELECT "+studentColumns+" FROM students WHERE user_id = $1", userID))
	if err != nil {
		if isNoRows(err) {
			return roster.Student{}, roster.ErrStudentNotFound
		}
		return roster.Student{}, errors.Wrap(err, "getting student by user id")
	}
	return std, nil
}

func (repo rosterRepository) GetStudentsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Student, error) {
	stds := make([]roster.Student, 0, len(ids))
	if len(ids) == 0 {
		return stds, nil
	}
	q, args, err := inQuery("SELECT "+studentColumns+" FROM students WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, errors.Wrap(err, "getting students by id")
	}

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting students by id")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		std, err := scanStudent(rows)
		if err != nil {
			return nil, errors.Wrap(err, "getting students by id")
		}
		stds = append(stds, std)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "getting students by id")
	}
	if len(stds) != len(ids) {
		return nil, roster.ErrStudentNotFound
	}
	return stds, nil
}

func (repo rosterRepository) QueryStudents(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Student, int, error) {
	e := repo.getExec(exec)
	total, err := repo.count(ctx, e, "SELECT COUNT(*) FROM students")
	if err != nil {
		return nil, 0, err
	}

	rows, err := e.QueryContext(
		ctx, "SELECT "+studentColumns+" FROM students ORDER BY id LIMIT $1 OFFSET $2", pg.Size, pg.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying students")
	}
	defer func() { _ = rows.Close() }()

	stds := make([]roster.Student, 0, pg.Size)
	for rows.Next() {
		std, err := scanStudent(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "querying students")
		}
		stds = append(stds, std)
	}
	return stds, total, errors.Wrap(rows.Err(), "querying students")
}

func (repo rosterRepository) UpdateStudent(ctx context.Context, std roster.Student, exec ...core.DBExecutor) (roster.Student, error) {
	const q = `
		UPDATE students
		SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4, phone = $5,
			address_line1 = $6, city = $7, state = $8, country = $9, guardian_name = $10,
			guardian_phone = $11, enrollment_date = $12, grade = $13, roll_number = $14,
			profile_image_url = $15, class_id = $16
		WHERE id = $17`

	res, err := repo.getExec(exec).ExecContext(
		ctx, q, std.FirstName, std.LastName,
		null.NewTime(std.DateOfBirth, !std.DateOfBirth.IsZero()),
		std.Gender, std.Phone, std.AddressLine1, std.City, std.State, std.Country,
		std.GuardianName, std.GuardianPhone,
		null.NewTime(std.EnrollmentDate, !std.EnrollmentDate.IsZero()),
		std.Grade, std.RollNumber, std.ProfileImageURL, null.IntFromPtr(std.ClassID), std.ID,
	)
	if err != nil {
		return roster.Student{}, trapConflictErr(err, studentConstraints, "updating student")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "updating student")
	}
	if n == 0 {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	return std, nil
}

func (repo rosterRepository) DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n == 0 {
		return roster.ErrStudentNotFound
	}
	return nil
}

func (repo rosterRepository) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return repo.count(ctx, repo.getExec(exec), "SELECT COUNT(*) FROM students")
}
