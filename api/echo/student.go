package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
)

type studentApi struct {
	roster   *roster.Service
	feedback *feedback.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, rosterSvc *roster.Service, feedbackSvc *feedback.Service) {
	api := studentApi{roster: rosterSvc, feedback: feedbackSvc}

	sg := g.Group("/student", jwt, studentMiddleware())
	sg.GET("/me", api.me)
	sg.GET("/feedback", api.myFeedback)
}

func (api *studentApi) self(ctx echo.Context) (roster.StudentView, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return roster.StudentView{}, err
	}
	view, err := api.roster.GetStudentByUserID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return roster.StudentView{}, errors.Wrap(err, "resolving student")
	}
	return view, nil
}

func (api *studentApi) me(ctx echo.Context) error {
	view, err := api.self(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *studentApi) myFeedback(ctx echo.Context) error {
	view, err := api.self(ctx)
	if err != nil {
		return err
	}
	views, err := api.feedback.FeedbackForStudent(ctx.Request().Context(), view.ID)
	if err != nil {
		return errors.Wrap(err, "listing my feedback")
	}
	return ctx.JSON(http.StatusOK, views)
}
