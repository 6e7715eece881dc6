package postgres

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campushq/backend/core"
)

func (repo rosterRepository) AddClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	const q = `
		INSERT INTO educator_classes (class_id, educator_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := repo.getExec(exec).ExecContext(ctx, q, classID, educatorID)
	return errors.Wrap(err, "linking class educator")
}

func (repo rosterRepository) RemoveClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(
		ctx, "DELETE FROM educator_classes WHERE class_id = $1 AND educator_id = $2", classID, educatorID)
	return errors.Wrap(err, "unlinking class educator")
}

func (repo rosterRepository) ClassIDsByEducator(ctx context.Context, educatorID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT class_id FROM educator_classes WHERE educator_id = $1 ORDER BY class_id", educatorID)
	return ids, errors.Wrap(err, "getting class ids by educator")
}

func (repo rosterRepository) EducatorIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT educator_id FROM educator_classes WHERE class_id = $1 ORDER BY educator_id", classID)
	return ids, errors.Wrap(err, "getting educator ids by class")
}

func (repo rosterRepository) AddStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	const q = `
		INSERT INTO student_subjects (student_id, subject_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := repo.getExec(exec).ExecContext(ctx, q, studentID, subjectID)
	return errors.Wrap(err, "linking student subject")
}

func (repo rosterRepository) RemoveStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(
		ctx, "DELETE FROM student_subjects WHERE student_id = $1 AND subject_id = $2", studentID, subjectID)
	return errors.Wrap(err, "unlinking student subject")
}

func (repo rosterRepository) SubjectIDsByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT subject_id FROM student_subjects WHERE student_id = $1 ORDER BY subject_id", studentID)
	return ids, errors.Wrap(err, "getting subject ids by student")
}

func (repo rosterRepository) StudentIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT student_id FROM student_subjects WHERE subject_id = $1 ORDER BY student_id", subjectID)
	return ids, errors.Wrap(err, "getting student ids by subject")
}

func (repo rosterRepository) SetEducatorSubject(ctx context.Context, educatorID int, subjectID *int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(
		ctx, "UPDATE educators SET subject_id = $1 WHERE id = $2", null.IntFromPtr(subjectID), educatorID)
	return errors.Wrap(err, "setting educator subject")
}

func (repo rosterRepository) EducatorIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT id FROM educators WHERE subject_id = $1 ORDER BY id", subjectID)
	return ids, errors.Wrap(err, "getting educator ids by subject")
}

func (repo rosterRepository) SetStudentClass(ctx context.Context, studentID int, classID *int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(
		ctx, "UPDATE students SET class_id = $1 WHERE id = $2", null.IntFromPtr(classID), studentID)
	return errors.Wrap(err, "setting student class")
}

func (repo rosterRepository) StudentIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	ids, err := repo.queryIDs(ctx, repo.getExec(exec),
		"SELECT id FROM students WHERE class_id = $1 ORDER BY id", classID)
	return ids, errors.Wrap(err, "getting student ids by class")
}
