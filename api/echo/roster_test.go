package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core/roster"
)

func TestAdminAPI_classCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))
	edu := app.createEducator(t, "edu1")

	// create
	rec := app.request(t, http.MethodPost, "/v1/admin/classes", token, marshalObj(t, roster.NewClass{
		Name:        "Class 6A",
		Code:        "6A",
		EducatorIDs: []int{edu.ID},
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created roster.ClassView
	decodeBody(t, rec, &created)
	assert.Equal(t, "6A", created.Code)
	assert.Len(t, created.Educators, 1)

	// retrieve
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/classes/%d", created.Class.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// update
	rec = app.request(t, http.MethodPut, fmt.Sprintf("/v1/admin/classes/%d", created.Class.ID), token,
		marshalObj(t, roster.UpdateClass{Name: "Class 6A bis", Code: "6A"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated roster.ClassView
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Class 6A bis", updated.Name)
	assert.Empty(t, updated.Educators)

	// list
	rec = app.request(t, http.MethodGet, "/v1/admin/classes?page=0&size=10", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var page pagedResponse
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 10, page.Size)

	// delete
	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/v1/admin/classes/%d", created.Class.ID), token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/classes/%d", created.Class.ID), token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminAPI_classConflictAndValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))
	app.createClass(t, "6A")

	// duplicate code maps to a 409 naming the field
	rec := app.request(t, http.MethodPost, "/v1/admin/classes", token,
		marshalObj(t, roster.NewClass{Name: "Other", Code: "6A"}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var conflict struct {
		Field string `json:"field"`
		Error string `json:"error"`
	}
	decodeBody(t, rec, &conflict)
	assert.Equal(t, "code", conflict.Field)
	assert.NotEmpty(t, conflict.Error)

	// missing required fields map to a 400 with per-field messages
	rec = app.request(t, http.MethodPost, "/v1/admin/classes", token,
		marshalObj(t, map[string]string{"description": "no name or code"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	decodeBody(t, rec, &fields)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "code")

	// unknown educator reference maps to a 404
	rec = app.request(t, http.MethodPost, "/v1/admin/classes", token,
		marshalObj(t, roster.NewClass{Name: "Other", Code: "6B", EducatorIDs: []int{999}}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminAPI_educatorCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))
	class := app.createClass(t, "6A")

	rec := app.request(t, http.MethodPost, "/v1/admin/educators", token, marshalObj(t, roster.NewEducator{
		Username:  "jdoe",
		Email:     "jdoe@test.cd",
		Password:  "Str0ngPwd!",
		FirstName: "John",
		LastName:  "Doe",
		ClassIDs:  []int{class.Class.ID},
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created roster.EducatorView
	decodeBody(t, rec, &created)
	assert.Equal(t, "jdoe", created.Username)
	assert.Equal(t, []int{class.Class.ID}, created.ClassIDs)

	// duplicate username is a 409
	rec = app.request(t, http.MethodPost, "/v1/admin/educators", token, marshalObj(t, roster.NewEducator{
		Username:  "jdoe",
		Email:     "other@test.cd",
		Password:  "Str0ngPwd!",
		FirstName: "Jane",
		LastName:  "Doe",
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// weak password is a 400
	rec = app.request(t, http.MethodPost, "/v1/admin/educators", token, marshalObj(t, roster.NewEducator{
		Username:  "other",
		Email:     "other@test.cd",
		Password:  "short",
		FirstName: "Jane",
		LastName:  "Doe",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/v1/admin/educators/%d", created.ID), token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminAPI_studentCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))
	class := app.createClass(t, "6A")

	rec := app.request(t, http.MethodPost, "/v1/admin/students", token, marshalObj(t, roster.NewStudent{
		Username:  "jane",
		Email:     "jane@test.cd",
		Password:  "Str0ngPwd!",
		FirstName: "Jane",
		LastName:  "Smith",
		ClassID:   intPtr(class.Class.ID),
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created roster.StudentView
	decodeBody(t, rec, &created)
	assert.Len(t, created.RollNumber, 5)
	assert.Equal(t, class.Class.ID, *created.ClassID)

	// malformed roll number is a 400
	rec = app.request(t, http.MethodPost, "/v1/admin/students", token, marshalObj(t, roster.NewStudent{
		Username:   "other",
		Email:      "other@test.cd",
		Password:   "Str0ngPwd!",
		FirstName:  "Olu",
		LastName:   "Other",
		RollNumber: "nope!!",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate roll number is a 409
	rec = app.request(t, http.MethodPost, "/v1/admin/students", token, marshalObj(t, roster.NewStudent{
		Username:   "other",
		Email:      "other@test.cd",
		Password:   "Str0ngPwd!",
		FirstName:  "Olu",
		LastName:   "Other",
		RollNumber: created.RollNumber,
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/students/%d", created.Student.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAPI_subjectCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))
	edu := app.createEducator(t, "edu1")

	rec := app.request(t, http.MethodPost, "/v1/admin/subjects", token, marshalObj(t, roster.NewSubject{
		Name:        "Maths",
		EducatorIDs: []int{edu.ID},
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created roster.SubjectView
	decodeBody(t, rec, &created)
	assert.Equal(t, []int{edu.ID}, created.EducatorIDs)

	// assigning a taken educator elsewhere is a 409
	rec = app.request(t, http.MethodPost, "/v1/admin/subjects", token, marshalObj(t, roster.NewSubject{
		Name:        "Physics",
		EducatorIDs: []int{edu.ID},
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var conflict struct {
		Field string `json:"field"`
		Error string `json:"error"`
	}
	decodeBody(t, rec, &conflict)
	assert.Equal(t, "educator_ids", conflict.Field)
	assert.Contains(t, conflict.Error, "already teaches")

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/v1/admin/subjects/%d", created.Subject.ID), token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// the educator survives the subject
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/educators/%d", edu.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAPI_counts(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))

	app.createClass(t, "6A")
	app.createEducator(t, "edu1")
	app.createStudent(t, "std1")
	app.createStudent(t, "std2")

	rec := app.request(t, http.MethodGet, "/v1/admin/counts", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var counts roster.Counts
	decodeBody(t, rec, &counts)
	assert.Equal(t, roster.Counts{Classes: 1, Educators: 1, Students: 2, Subjects: 0}, counts)
}

func TestAdminAPI_upload(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))

	rec := app.upload(t, "/v1/admin/uploads", token, "avatar.png", []byte("not really a png"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		URL string `json:"url"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "/uploads/avatar.png", resp.URL)
	assert.Contains(t, app.files.saved, "avatar.png")

	// no file part
	rec = app.request(t, http.MethodPost, "/v1/admin/uploads", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
