package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf        *core.Config
		Logger      core.Logger
		UserSvc     *user.Service
		RosterSvc   *roster.Service
		FeedbackSvc *feedback.Service
		NewsSvc     *news.Service
		Files       core.FileStorage
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.Static("/uploads", conf.UploadDir)

	v1 := s.app.Group("/v1")
	jwt := jwtMiddleware(conf)

	registerAuthAPI(v1, s.opts.UserSvc, conf)
	registerNewsAPI(v1, jwt, s.opts.NewsSvc)
	registerAdminAPI(v1, jwt, s.opts.RosterSvc, s.opts.NewsSvc, s.opts.Files)
	registerEducatorAPI(v1, jwt, s.opts.RosterSvc, s.opts.FeedbackSvc)
	registerStudentAPI(v1, jwt, s.opts.RosterSvc, s.opts.FeedbackSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Campus API!")
}
