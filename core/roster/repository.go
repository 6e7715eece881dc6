package roster

import (
	"context"

	"github.com/campushq/backend/core"
)

var (
	// errors
	ErrClassNotFound    = core.NewNotFoundError("class not found")
	ErrEducatorNotFound = core.NewNotFoundError("educator not found")
	ErrStudentNotFound  = core.NewNotFoundError("student not found")
	ErrSubjectNotFound  = core.NewNotFoundError("subject not found")

	ErrClassCodeExists   = core.NewConflictError("code", "a class with this code already exists")
	ErrSubjectNameExists = core.NewConflictError("name", "a subject with this name already exists")
	ErrRollNumberExists  = core.NewConflictError("roll_number", "a student with this roll number already exists")
)

type (
	ClassRepository interface {
		// CheckCodeUniqueness returns ErrClassCodeExists when a class
		// other than excludedID holds the given code.
		CheckCodeUniqueness(ctx context.Context, code string, excludedID int, exec ...core.DBExecutor) error
		CreateClass(ctx context.Context, class Class, exec ...core.DBExecutor) (Class, error)
		GetClassByID(ctx context.Context, id int, exec ...core.DBExecutor) (Class, error)
		// GetClassesByID resolves all given IDs in bulk, failing with
		// ErrClassNotFound when any is missing.
		GetClassesByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Class, error)
		QueryClasses(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]Class, int, error)
		UpdateClass(ctx context.Context, class Class, exec ...core.DBExecutor) (Class, error)
		DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error
		CountClasses(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	EducatorRepository interface {
		CreateEducator(ctx context.Context, edu Educator, exec ...core.DBExecutor) (Educator, error)
		GetEducatorByID(ctx context.Context, id int, exec ...core.DBExecutor) (Educator, error)
		GetEducatorByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (Educator, error)
		GetEducatorsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Educator, error)
		QueryEducators(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]Educator, int, error)
		UpdateEducator(ctx context.Context, edu Educator, exec ...core.DBExecutor) (Educator, error)
		DeleteEducator(ctx context.Context, id int, exec ...core.DBExecutor) error
		CountEducators(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	StudentRepository interface {
		// CheckRollNumberUniqueness returns ErrRollNumberExists when a
		// student other than excludedID holds the given roll number.
		CheckRollNumberUniqueness(ctx context.Context, rollNumber string, excludedID int, exec ...core.DBExecutor) error
		CreateStudent(ctx context.Context, std Student, exec ...core.DBExecutor) (Student, error)
		GetStudentByID(ctx context.Context, id int, exec ...core.DBExecutor) (Student, error)
		GetStudentByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (Student, error)
		GetStudentsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Student, error)
		QueryStudents(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]Student, int, error)
		UpdateStudent(ctx context.Context, std Student, exec ...core.DBExecutor) (Student, error)
		DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error
		CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	SubjectRepository interface {
		// CheckNameUniqueness returns ErrSubjectNameExists when a subject
		// other than excludedID holds the given name.
		CheckNameUniqueness(ctx context.Context, name string, excludedID int, exec ...core.DBExecutor) error
		CreateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)
		GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (Subject, error)
		GetSubjectsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Subject, error)
		QuerySubjects(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]Subject, int, error)
		UpdateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)
		DeleteSubject(ctx context.Context, id int, exec ...core.DBExecutor) error
		CountSubjects(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	// EdgeRepository stores each relationship exactly once, so both sides
	// always observe the same edge set.
	EdgeRepository interface {
		AddClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error
		RemoveClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error
		ClassIDsByEducator(ctx context.Context, educatorID int, exec ...core.DBExecutor) ([]int, error)
		EducatorIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error)

		AddStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error
		RemoveStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error
		SubjectIDsByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]int, error)
		StudentIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error)

		SetEducatorSubject(ctx context.Context, educatorID int, subjectID *int, exec ...core.DBExecutor) error
		EducatorIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error)

		SetStudentClass(ctx context.Context, studentID int, classID *int, exec ...core.DBExecutor) error
		StudentIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error)
	}
)
