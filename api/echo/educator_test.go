package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
)

func TestEducatorAPI_meAndClasses(t *testing.T) {
	app := newTestApp(t)
	edu := app.createEducator(t, "jdoe")
	class := app.createClass(t, "6A", edu.ID)
	app.createClass(t, "6B")
	token := app.tokenFor(t, edu.Educator.UserID)

	rec := app.request(t, http.MethodGet, "/v1/educator/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var me roster.EducatorView
	decodeBody(t, rec, &me)
	assert.Equal(t, edu.ID, me.ID)
	assert.Equal(t, "jdoe", me.Username)

	// only the classes this educator teaches
	rec = app.request(t, http.MethodGet, "/v1/educator/classes", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var classes []roster.Class
	decodeBody(t, rec, &classes)
	if assert.Len(t, classes, 1) {
		assert.Equal(t, class.Class.ID, classes[0].ID)
	}
}

func TestEducatorAPI_classStudents(t *testing.T) {
	app := newTestApp(t)
	edu := app.createEducator(t, "jdoe")
	class := app.createClass(t, "6A", edu.ID)
	std := app.createStudent(t, "jane", func(ns *roster.NewStudent) {
		ns.ClassID = intPtr(class.Class.ID)
	})
	app.createStudent(t, "outsider")
	token := app.tokenFor(t, edu.Educator.UserID)

	rec := app.request(t, http.MethodGet, fmt.Sprintf("/v1/educator/classes/%d/students", class.Class.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var students []roster.StudentView
	decodeBody(t, rec, &students)
	if assert.Len(t, students, 1) {
		assert.Equal(t, std.Student.ID, students[0].Student.ID)
	}

	rec = app.request(t, http.MethodGet, "/v1/educator/classes/999/students", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEducatorAPI_feedback(t *testing.T) {
	app := newTestApp(t)
	edu := app.createEducator(t, "jdoe")
	class := app.createClass(t, "6A", edu.ID)
	std := app.createStudent(t, "jane", func(ns *roster.NewStudent) {
		ns.ClassID = intPtr(class.Class.ID)
	})
	token := app.tokenFor(t, edu.Educator.UserID)

	path := fmt.Sprintf("/v1/educator/classes/%d/students/%d/feedback", class.Class.ID, std.Student.ID)

	rec := app.request(t, http.MethodPut, path, token,
		marshalObj(t, feedback.UpsertFeedback{Text: "Shows steady progress.", Rating: intPtr(4)}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view feedback.View
	decodeBody(t, rec, &view)
	assert.Equal(t, "Shows steady progress.", view.Text)
	assert.Equal(t, "Class 6A", view.ClassName)

	// a rewrite lands on the same record
	rec = app.request(t, http.MethodPut, path, token,
		marshalObj(t, feedback.UpsertFeedback{Text: "Needs more practice."}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, path, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var views []feedback.View
	decodeBody(t, rec, &views)
	if assert.Len(t, views, 1) {
		assert.Equal(t, "Needs more practice.", views[0].Text)
	}

	// empty text is a 400
	rec = app.request(t, http.MethodPut, path, token, marshalObj(t, feedback.UpsertFeedback{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// out-of-range rating is a 400
	rec = app.request(t, http.MethodPut, path, token,
		marshalObj(t, feedback.UpsertFeedback{Text: "x", Rating: intPtr(6)}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEducatorAPI_feedbackAuthorization(t *testing.T) {
	app := newTestApp(t)
	edu := app.createEducator(t, "jdoe")
	class := app.createClass(t, "6A", edu.ID)
	otherClass := app.createClass(t, "6B")
	std := app.createStudent(t, "jane", func(ns *roster.NewStudent) {
		ns.ClassID = intPtr(otherClass.Class.ID)
	})
	token := app.tokenFor(t, edu.Educator.UserID)
	body := marshalObj(t, feedback.UpsertFeedback{Text: "not allowed"})

	// the educator does not teach 6B
	path := fmt.Sprintf("/v1/educator/classes/%d/students/%d/feedback", otherClass.Class.ID, std.Student.ID)
	rec := app.request(t, http.MethodPut, path, token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the student does not belong to 6A
	path = fmt.Sprintf("/v1/educator/classes/%d/students/%d/feedback", class.Class.ID, std.Student.ID)
	rec = app.request(t, http.MethodPut, path, token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
