package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	"github.com/campushq/backend/storage/database/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fileStorageMock struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (fs *fileStorageMock) Save(filename string, _ io.Reader) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.saved = append(fs.saved, filename)
	return "/uploads/" + filename, nil
}

func (fs *fileStorageMock) Delete(urlPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.deleted = append(fs.deleted, urlPath)
	return nil
}

type testApp struct {
	server Server
	conf   *core.Config

	userSvc     *user.Service
	rosterSvc   *roster.Service
	feedbackSvc *feedback.Service
	newsSvc     *news.Service
	files       *fileStorageMock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := &core.Config{
		TestMode:                  true,
		Env:                       "TEST",
		AppName:                   "Campus",
		SecretKey:                 []byte("secret"),
		FrontendBaseURL:           "http://localhost:5173",
		DefaultFromEmail:          "noreply@localhost",
		JWTExpirationDelta:        10 * time.Minute,
		PasswordResetTimeoutDelta: time.Hour,
		UploadDir:                 t.TempDir(),
	}

	db := inmem.NewDB()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	files := &fileStorageMock{}
	rosterRepo := inmem.NewRosterRepository(db)

	userSvc := user.NewService(inmem.NewUserRepository(db), mailSvc, conf)
	rosterSvc := roster.NewService(db, rosterRepo, userSvc, mailSvc, files, conf)
	feedbackSvc := feedback.NewService(db, inmem.NewFeedbackRepository(db), rosterRepo)
	newsSvc := news.NewService(inmem.NewNewsRepository(db))

	server := NewServer(&Options{
		Address:        "localhost:0",
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         nopLogger{},
		UserSvc:        userSvc,
		RosterSvc:      rosterSvc,
		FeedbackSvc:    feedbackSvc,
		NewsSvc:        newsSvc,
		Files:          files,
	})
	t.Cleanup(emailsvc.ClearSentMessages)

	return &testApp{
		server:      server,
		conf:        conf,
		userSvc:     userSvc,
		rosterSvc:   rosterSvc,
		feedbackSvc: feedbackSvc,
		newsSvc:     newsSvc,
		files:       files,
	}
}

func (app *testApp) request(t *testing.T, method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) upload(t *testing.T, path, token, filename string, contents []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("upload() failed: %v", err)
	}
	if _, err = fw.Write(contents); err != nil {
		t.Fatalf("upload() failed: %v", err)
	}
	if err = mw.Close(); err != nil {
		t.Fatalf("upload() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) createAdmin(t *testing.T, uname string) user.User {
	t.Helper()
	usr, err := app.userSvc.Create(context.Background(), user.NewUser{
		Username: uname,
		Email:    uname + "@test.cd",
		Password: "Str0ngPwd!",
		Role:     user.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	return usr
}

func (app *testApp) createEducator(t *testing.T, uname string, opts ...func(*roster.NewEducator)) roster.EducatorView {
	t.Helper()
	ne := roster.NewEducator{
		Username:  uname,
		Email:     uname + "@test.cd",
		Password:  "Str0ngPwd!",
		FirstName: "Edu",
		LastName:  uname,
	}
	for _, opt := range opts {
		opt(&ne)
	}
	view, err := app.rosterSvc.CreateEducator(context.Background(), ne)
	if err != nil {
		t.Fatalf("createEducator() failed: %v", err)
	}
	return view
}

func (app *testApp) createStudent(t *testing.T, uname string, opts ...func(*roster.NewStudent)) roster.StudentView {
	t.Helper()
	ns := roster.NewStudent{
		Username:  uname,
		Email:     uname + "@test.cd",
		Password:  "Str0ngPwd!",
		FirstName: "Std",
		LastName:  uname,
	}
	for _, opt := range opts {
		opt(&ns)
	}
	view, err := app.rosterSvc.CreateStudent(context.Background(), ns)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return view
}

func (app *testApp) createClass(t *testing.T, code string, eduIDs ...int) roster.ClassView {
	t.Helper()
	view, err := app.rosterSvc.CreateClass(context.Background(), roster.NewClass{
		Name:        "Class " + code,
		Code:        code,
		EducatorIDs: eduIDs,
	})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return view
}

func (app *testApp) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr, app.conf), app.conf)
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

func (app *testApp) tokenFor(t *testing.T, userID int) string {
	t.Helper()
	usr, err := app.userSvc.GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return app.token(t, usr)
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v: %s", err, rec.Body.String())
	}
}

func intPtr(i int) *int { return &i }
