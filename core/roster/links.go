package roster

import (
	"context"

	"github.com/campushq/backend/core"
)

// Linker maintains the relationship edges between roster entities. Every
// edge is stored exactly once regardless of which side initiated the
// change, so linking twice or unlinking an absent edge is a no-op.
type Linker struct {
	edges EdgeRepository
}

func NewLinker(edges EdgeRepository) *Linker {
	return &Linker{edges: edges}
}

// LinkClassEducator records that an educator teaches a class.
func (l *Linker) LinkClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	return l.edges.AddClassEducator(ctx, classID, educatorID, exec...)
}

// UnlinkClassEducator removes a class-educator edge if present.
func (l *Linker) UnlinkClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	return l.edges.RemoveClassEducator(ctx, classID, educatorID, exec...)
}

func (l *Linker) ClassIDsByEducator(ctx context.Context, educatorID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.ClassIDsByEducator(ctx, educatorID, exec...)
}

func (l *Linker) EducatorIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.EducatorIDsByClass(ctx, classID, exec...)
}

// LinkStudentSubject records that a student is enrolled in a subject.
func (l *Linker) LinkStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	return l.edges.AddStudentSubject(ctx, studentID, subjectID, exec...)
}

// UnlinkStudentSubject removes a student-subject edge if present.
func (l *Linker) UnlinkStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	return l.edges.RemoveStudentSubject(ctx, studentID, subjectID, exec...)
}

func (l *Linker) SubjectIDsByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.SubjectIDsByStudent(ctx, studentID, exec...)
}

func (l *Linker) StudentIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.StudentIDsBySubject(ctx, subjectID, exec...)
}

// AssignEducatorSubject binds an educator to a subject, replacing any
// previous binding. A nil subjectID clears the binding.
func (l *Linker) AssignEducatorSubject(ctx context.Context, educatorID int, subjectID *int, exec ...core.DBExecutor) error {
	return l.edges.SetEducatorSubject(ctx, educatorID, subjectID, exec...)
}

func (l *Linker) EducatorIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.EducatorIDsBySubject(ctx, subjectID, exec...)
}

// AssignStudentClass moves a student into a class, replacing any
// previous membership. A nil classID clears the membership.
func (l *Linker) AssignStudentClass(ctx context.Context, studentID int, classID *int, exec ...core.DBExecutor) error {
	return l.edges.SetStudentClass(ctx, studentID, classID, exec...)
}

func (l *Linker) StudentIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	return l.edges.StudentIDsByClass(ctx, classID, exec...)
}
