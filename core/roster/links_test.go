package roster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core/roster"
)

func linkerSetup(t *testing.T) (*roster.Linker, *roster.Service) {
	t.Helper()
	svc, _, repo, _ := setup(t)
	return roster.NewLinker(repo), svc
}

func TestLinker_classEducatorEdges(t *testing.T) {
	linker, svc := linkerSetup(t)
	ctx := context.Background()

	class := createClass(t, svc, "6A")
	edu := createEducator(t, svc, "edu1")

	assert.NoError(t, linker.LinkClassEducator(ctx, class.Class.ID, edu.ID))
	// linking twice is a no-op
	assert.NoError(t, linker.LinkClassEducator(ctx, class.Class.ID, edu.ID))

	eduIDs, err := linker.EducatorIDsByClass(ctx, class.Class.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{edu.ID}, eduIDs)

	// both sides see the same edge
	classIDs, err := linker.ClassIDsByEducator(ctx, edu.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{class.Class.ID}, classIDs)

	assert.NoError(t, linker.UnlinkClassEducator(ctx, class.Class.ID, edu.ID))
	// unlinking an absent edge is a no-op
	assert.NoError(t, linker.UnlinkClassEducator(ctx, class.Class.ID, edu.ID))

	eduIDs, err = linker.EducatorIDsByClass(ctx, class.Class.ID)
	assert.NoError(t, err)
	assert.Empty(t, eduIDs)
	classIDs, err = linker.ClassIDsByEducator(ctx, edu.ID)
	assert.NoError(t, err)
	assert.Empty(t, classIDs)
}

func TestLinker_studentSubjectEdges(t *testing.T) {
	linker, svc := linkerSetup(t)
	ctx := context.Background()

	sub := createSubject(t, svc, "Maths", nil, nil)
	std := createStudent(t, svc, "std1")

	assert.NoError(t, linker.LinkStudentSubject(ctx, std.Student.ID, sub.Subject.ID))
	assert.NoError(t, linker.LinkStudentSubject(ctx, std.Student.ID, sub.Subject.ID))

	subIDs, err := linker.SubjectIDsByStudent(ctx, std.Student.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{sub.Subject.ID}, subIDs)

	stdIDs, err := linker.StudentIDsBySubject(ctx, sub.Subject.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{std.Student.ID}, stdIDs)

	assert.NoError(t, linker.UnlinkStudentSubject(ctx, std.Student.ID, sub.Subject.ID))
	subIDs, err = linker.SubjectIDsByStudent(ctx, std.Student.ID)
	assert.NoError(t, err)
	assert.Empty(t, subIDs)
}

func TestLinker_assignEducatorSubject(t *testing.T) {
	linker, svc := linkerSetup(t)
	ctx := context.Background()

	sub1 := createSubject(t, svc, "Maths", nil, nil)
	sub2 := createSubject(t, svc, "Physics", nil, nil)
	edu := createEducator(t, svc, "edu1")

	assert.NoError(t, linker.AssignEducatorSubject(ctx, edu.ID, intPtr(sub1.Subject.ID)))

	ids, err := linker.EducatorIDsBySubject(ctx, sub1.Subject.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{edu.ID}, ids)

	// reassignment replaces the previous binding
	assert.NoError(t, linker.AssignEducatorSubject(ctx, edu.ID, intPtr(sub2.Subject.ID)))
	ids, err = linker.EducatorIDsBySubject(ctx, sub1.Subject.ID)
	assert.NoError(t, err)
	assert.Empty(t, ids)
	ids, err = linker.EducatorIDsBySubject(ctx, sub2.Subject.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{edu.ID}, ids)

	// nil clears the binding
	assert.NoError(t, linker.AssignEducatorSubject(ctx, edu.ID, nil))
	ids, err = linker.EducatorIDsBySubject(ctx, sub2.Subject.ID)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLinker_assignStudentClass(t *testing.T) {
	linker, svc := linkerSetup(t)
	ctx := context.Background()

	class1 := createClass(t, svc, "6A")
	class2 := createClass(t, svc, "6B")
	std := createStudent(t, svc, "std1")

	assert.NoError(t, linker.AssignStudentClass(ctx, std.Student.ID, intPtr(class1.Class.ID)))

	ids, err := linker.StudentIDsByClass(ctx, class1.Class.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{std.Student.ID}, ids)

	// moving to another class vacates the previous one
	assert.NoError(t, linker.AssignStudentClass(ctx, std.Student.ID, intPtr(class2.Class.ID)))
	ids, err = linker.StudentIDsByClass(ctx, class1.Class.ID)
	assert.NoError(t, err)
	assert.Empty(t, ids)
	ids, err = linker.StudentIDsByClass(ctx, class2.Class.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{std.Student.ID}, ids)
}
