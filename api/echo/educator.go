package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
)

type educatorApi struct {
	roster   *roster.Service
	feedback *feedback.Service
}

func registerEducatorAPI(g *echo.Group, jwt echo.MiddlewareFunc, rosterSvc *roster.Service, feedbackSvc *feedback.Service) {
	api := educatorApi{roster: rosterSvc, feedback: feedbackSvc}

	eg := g.Group("/educator", jwt, educatorMiddleware())
	eg.GET("/me", api.me)
	eg.GET("/classes", api.myClasses)
	eg.GET("/classes/:id/students", api.classStudents)
	eg.PUT("/classes/:classID/students/:studentID/feedback", api.upsertFeedback)
	eg.GET("/classes/:classID/students/:studentID/feedback", api.studentFeedback)
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

// self resolves the calling educator from the token claims.
func (api *educatorApi) self(ctx echo.Context) (roster.EducatorView, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return roster.EducatorView{}, err
	}
	view, err := api.roster.GetEducatorByUserID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return roster.EducatorView{}, errors.Wrap(err, "resolving educator")
	}
	return view, nil
}

func (api *educatorApi) me(ctx echo.Context) error {
	view, err := api.self(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *educatorApi) myClasses(ctx echo.Context) error {
	view, err := api.self(ctx)
	if err != nil {
		return err
	}
	classes, err := api.roster.ClassesForEducator(ctx.Request().Context(), view.ID)
	if err != nil {
		return errors.Wrap(err, "listing educator classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *educatorApi) classStudents(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	students, err := api.roster.ListStudentsInClass(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing class students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *educatorApi) upsertFeedback(ctx echo.Context) error {
	classID, err := paramID(ctx, "classID")
	if err != nil {
		return err
	}
	studentID, err := paramID(ctx, "studentID")
	if err != nil {
		return err
	}
	var data feedback.UpsertFeedback
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertFeedback")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	edu, err := api.self(ctx)
	if err != nil {
		return err
	}
	view, err := api.feedback.Upsert(ctx.Request().Context(), edu.ID, studentID, classID, data)
	if err != nil {
		return errors.Wrap(err, "upserting feedback")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *educatorApi) studentFeedback(ctx echo.Context) error {
	classID, err := paramID(ctx, "classID")
	if err != nil {
		return err
	}
	studentID, err := paramID(ctx, "studentID")
	if err != nil {
		return err
	}

	edu, err := api.self(ctx)
	if err != nil {
		return err
	}
	views, err := api.feedback.ListForStudent(ctx.Request().Context(), edu.ID, studentID, classID)
	if err != nil {
		return errors.Wrap(err, "listing student feedback")
	}
	return ctx.JSON(http.StatusOK, views)
}
