package feedback_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	"github.com/campushq/backend/storage/database/inmem"
)

type fileStorageStub struct{}

func (fileStorageStub) Save(filename string, _ io.Reader) (string, error) {
	return "/uploads/" + filename, nil
}
func (fileStorageStub) Delete(string) error { return nil }

type fixtures struct {
	svc    *feedback.Service
	roster *roster.Service
	repo   feedback.Repository

	class roster.ClassView
	edu   roster.EducatorView
	std   roster.StudentView
}

func setup(t *testing.T) fixtures {
	t.Helper()
	db := inmem.NewDB()
	conf := &core.Config{AppName: "Campus", SecretKey: []byte("secret")}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	rosterRepo := inmem.NewRosterRepository(db)
	usrSvc := user.NewService(inmem.NewUserRepository(db), mailSvc, conf)
	rosterSvc := roster.NewService(db, rosterRepo, usrSvc, mailSvc, fileStorageStub{}, conf)
	repo := inmem.NewFeedbackRepository(db)
	svc := feedback.NewService(db, repo, rosterRepo)
	t.Cleanup(emailsvc.ClearSentMessages)

	ctx := context.Background()
	edu, err := rosterSvc.CreateEducator(ctx, roster.NewEducator{
		Username: "jdoe", Email: "jdoe@test.cd", Password: "Str0ngPwd!",
		FirstName: "John", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	class, err := rosterSvc.CreateClass(ctx, roster.NewClass{
		Name: "Class 6A", Code: "6A", EducatorIDs: []int{edu.ID},
	})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	classID := class.Class.ID
	std, err := rosterSvc.CreateStudent(ctx, roster.NewStudent{
		Username: "jane", Email: "jane@test.cd", Password: "Str0ngPwd!",
		FirstName: "Jane", LastName: "Smith", ClassID: &classID,
	})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	return fixtures{svc: svc, roster: rosterSvc, repo: repo, class: class, edu: edu, std: std}
}

func intPtr(i int) *int { return &i }

func TestService_Upsert(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	view, err := fx.svc.Upsert(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID, feedback.UpsertFeedback{
		Text:   "Shows steady progress.",
		Rating: intPtr(4),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Shows steady progress.", view.Text)
	assert.Equal(t, 4, *view.Rating)
	assert.Equal(t, "John Doe", view.EducatorName)
	assert.Equal(t, "Jane Smith", view.StudentName)
	assert.Equal(t, "Class 6A", view.ClassName)
	assert.False(t, view.CreatedAt.IsZero())

	// a second write overwrites the same record
	updated, err := fx.svc.Upsert(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID, feedback.UpsertFeedback{
		Text: "Needs more practice.",
	})
	assert.NoError(t, err)
	assert.Equal(t, view.ID, updated.ID)
	assert.Equal(t, "Needs more practice.", updated.Text)
	assert.Nil(t, updated.Rating)

	records, err := fx.repo.FeedbackByStudent(ctx, fx.std.Student.ID)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestService_Upsert_authorization(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	// an educator that does not teach the class
	stranger, err := fx.roster.CreateEducator(ctx, roster.NewEducator{
		Username: "stranger", Email: "stranger@test.cd", Password: "Str0ngPwd!",
		FirstName: "Sam", LastName: "Stranger",
	})
	assert.NoError(t, err)

	uf := feedback.UpsertFeedback{Text: "not allowed"}
	_, err = fx.svc.Upsert(ctx, stranger.ID, fx.std.Student.ID, fx.class.Class.ID, uf)
	var azErr *core.AuthorizationError
	if assert.ErrorAs(t, err, &azErr) {
		assert.Equal(t, "educator does not teach this class", azErr.Error())
	}

	// a student the class does not own
	outsider, err := fx.roster.CreateStudent(ctx, roster.NewStudent{
		Username: "outsider", Email: "outsider@test.cd", Password: "Str0ngPwd!",
		FirstName: "Olu", LastName: "Out",
	})
	assert.NoError(t, err)

	_, err = fx.svc.Upsert(ctx, fx.edu.ID, outsider.Student.ID, fx.class.Class.ID, uf)
	if assert.ErrorAs(t, err, &azErr) {
		assert.Equal(t, "student does not belong to this class", azErr.Error())
	}

	// nothing was written
	records, err := fx.repo.FeedbackByStudent(ctx, fx.std.Student.ID)
	assert.NoError(t, err)
	assert.Empty(t, records)
	records, err = fx.repo.FeedbackByStudent(ctx, outsider.Student.ID)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestService_Upsert_unknownEntities(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	uf := feedback.UpsertFeedback{Text: "whatever"}

	_, err := fx.svc.Upsert(ctx, 999, fx.std.Student.ID, fx.class.Class.ID, uf)
	assert.ErrorIs(t, err, roster.ErrEducatorNotFound)

	_, err = fx.svc.Upsert(ctx, fx.edu.ID, 999, fx.class.Class.ID, uf)
	assert.ErrorIs(t, err, roster.ErrStudentNotFound)

	_, err = fx.svc.Upsert(ctx, fx.edu.ID, fx.std.Student.ID, 999, uf)
	assert.ErrorIs(t, err, roster.ErrClassNotFound)
}

func TestService_ListForStudent(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	_, err := fx.svc.Upsert(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID, feedback.UpsertFeedback{Text: "Good."})
	assert.NoError(t, err)

	views, err := fx.svc.ListForStudent(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID)
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Good.", views[0].Text)
		assert.Equal(t, "John Doe", views[0].EducatorName)
	}

	// a colleague teaching the same class only sees their own record
	colleague, err := fx.roster.CreateEducator(ctx, roster.NewEducator{
		Username: "colleague", Email: "colleague@test.cd", Password: "Str0ngPwd!",
		FirstName: "Cole", LastName: "League", ClassIDs: []int{fx.class.Class.ID},
	})
	assert.NoError(t, err)

	views, err = fx.svc.ListForStudent(ctx, colleague.ID, fx.std.Student.ID, fx.class.Class.ID)
	assert.NoError(t, err)
	assert.Empty(t, views)

	_, err = fx.svc.Upsert(ctx, colleague.ID, fx.std.Student.ID, fx.class.Class.ID, feedback.UpsertFeedback{Text: "Theirs."})
	assert.NoError(t, err)

	views, err = fx.svc.ListForStudent(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID)
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Good.", views[0].Text)
	}
	views, err = fx.svc.ListForStudent(ctx, colleague.ID, fx.std.Student.ID, fx.class.Class.ID)
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Theirs.", views[0].Text)
	}

	// same authorization as Upsert
	stranger, err := fx.roster.CreateEducator(ctx, roster.NewEducator{
		Username: "stranger", Email: "stranger@test.cd", Password: "Str0ngPwd!",
		FirstName: "Sam", LastName: "Stranger",
	})
	assert.NoError(t, err)

	_, err = fx.svc.ListForStudent(ctx, stranger.ID, fx.std.Student.ID, fx.class.Class.ID)
	var azErr *core.AuthorizationError
	assert.ErrorAs(t, err, &azErr)
}

func TestService_FeedbackForStudent(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	views, err := fx.svc.FeedbackForStudent(ctx, fx.std.Student.ID)
	assert.NoError(t, err)
	assert.Empty(t, views)

	_, err = fx.svc.Upsert(ctx, fx.edu.ID, fx.std.Student.ID, fx.class.Class.ID, feedback.UpsertFeedback{Text: "Keep it up."})
	assert.NoError(t, err)

	views, err = fx.svc.FeedbackForStudent(ctx, fx.std.Student.ID)
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Keep it up.", views[0].Text)
		assert.Equal(t, "Class 6A", views[0].ClassName)
	}

	_, err = fx.svc.FeedbackForStudent(ctx, 999)
	assert.ErrorIs(t, err, roster.ErrStudentNotFound)
}
