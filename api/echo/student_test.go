package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
)

func TestStudentAPI_me(t *testing.T) {
	app := newTestApp(t)
	sub, err := app.rosterSvc.CreateSubject(context.Background(), roster.NewSubject{Name: "Maths"})
	assert.NoError(t, err)
	std := app.createStudent(t, "jane", func(ns *roster.NewStudent) {
		ns.SubjectIDs = []int{sub.Subject.ID}
	})
	token := app.tokenFor(t, std.Student.UserID)

	rec := app.request(t, http.MethodGet, "/v1/student/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var me roster.StudentView
	decodeBody(t, rec, &me)
	assert.Equal(t, std.Student.ID, me.Student.ID)
	assert.Equal(t, "jane", me.Username)
	assert.Equal(t, []int{sub.Subject.ID}, me.SubjectIDs)
}

func TestStudentAPI_myFeedback(t *testing.T) {
	app := newTestApp(t)
	edu := app.createEducator(t, "jdoe")
	class := app.createClass(t, "6A", edu.ID)
	std := app.createStudent(t, "jane", func(ns *roster.NewStudent) {
		ns.ClassID = intPtr(class.Class.ID)
	})
	token := app.tokenFor(t, std.Student.UserID)

	rec := app.request(t, http.MethodGet, "/v1/student/feedback", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var views []feedback.View
	decodeBody(t, rec, &views)
	assert.Empty(t, views)

	_, err := app.feedbackSvc.Upsert(context.Background(), edu.ID, std.Student.ID, class.Class.ID,
		feedback.UpsertFeedback{Text: "Keep it up."})
	assert.NoError(t, err)

	rec = app.request(t, http.MethodGet, "/v1/student/feedback", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	decodeBody(t, rec, &views)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Keep it up.", views[0].Text)
		assert.Equal(t, "Edu jdoe", views[0].EducatorName)
	}
}
