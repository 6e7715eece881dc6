package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/core/roster"
)

type adminApi struct {
	roster *roster.Service
	news   *news.Service
	files  core.FileStorage
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, rosterSvc *roster.Service, newsSvc *news.Service, files core.FileStorage) {
	api := adminApi{roster: rosterSvc, news: newsSvc, files: files}

	ag := g.Group("/admin", jwt, adminMiddleware())

	cg := ag.Group("/classes")
	cg.POST("", api.createClass)
	cg.GET("", api.listClasses)
	cg.GET("/:id", api.retrieveClass)
	cg.PUT("/:id", api.updateClass)
	cg.DELETE("/:id", api.deleteClass)

	eg := ag.Group("/educators")
	eg.POST("", api.createEducator)
	eg.GET("", api.listEducators)
	eg.GET("/:id", api.retrieveEducator)
	eg.PUT("/:id", api.updateEducator)
	eg.DELETE("/:id", api.deleteEducator)

	sg := ag.Group("/students")
	sg.POST("", api.createStudent)
	sg.GET("", api.listStudents)
	sg.GET("/:id", api.retrieveStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.deleteStudent)

	ug := ag.Group("/subjects")
	ug.POST("", api.createSubject)
	ug.GET("", api.listSubjects)
	ug.GET("/:id", api.retrieveSubject)
	ug.PUT("/:id", api.updateSubject)
	ug.DELETE("/:id", api.deleteSubject)

	ag.GET("/counts", api.counts)
	ag.POST("/uploads", api.upload)

	ng := ag.Group("/news")
	ng.POST("", api.createNews)
	ng.GET("", api.listNews)
	ng.GET("/:id", api.retrieveNews)
	ng.PUT("/:id", api.updateNews)
	ng.DELETE("/:id", api.deleteNews)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func bindPagination(ctx echo.Context) (core.Pagination, error) {
	var pg core.Pagination
	if err := ctx.Bind(&pg); err != nil {
		return core.Pagination{}, errors.Wrap(err, "binding to Pagination")
	}
	pg.Clean()
	return pg, nil
}

// Classes

func (api *adminApi) createClass(ctx echo.Context) error {
	var data roster.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *adminApi) listClasses(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	views, total, err := api.roster.ListClasses(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: views, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *adminApi) retrieveClass(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	view, err := api.roster.GetClass(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting class")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) updateClass(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data roster.UpdateClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.UpdateClass(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) deleteClass(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.roster.DeleteClass(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Educators

func (api *adminApi) createEducator(ctx echo.Context) error {
	var data roster.NewEducator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEducator")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.CreateEducator(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating educator")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *adminApi) listEducators(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	views, total, err := api.roster.ListEducators(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing educators")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: views, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *adminApi) retrieveEducator(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	view, err := api.roster.GetEducator(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting educator")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) updateEducator(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data roster.UpdateEducator
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEducator")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.UpdateEducator(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating educator")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) deleteEducator(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.roster.DeleteEducator(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting educator")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *adminApi) createStudent(ctx echo.Context) error {
	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *adminApi) listStudents(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	views, total, err := api.roster.ListStudents(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: views, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *adminApi) retrieveStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	view, err := api.roster.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data roster.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.UpdateStudent(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) deleteStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.roster.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Subjects

func (api *adminApi) createSubject(ctx echo.Context) error {
	var data roster.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *adminApi) listSubjects(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	views, total, err := api.roster.ListSubjects(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: views, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *adminApi) retrieveSubject(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	view, err := api.roster.GetSubject(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting subject")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) updateSubject(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data roster.UpdateSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	view, err := api.roster.UpdateSubject(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *adminApi) deleteSubject(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.roster.DeleteSubject(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Counts

func (api *adminApi) counts(ctx echo.Context) error {
	counts, err := api.roster.Counts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting roster")
	}
	return ctx.JSON(http.StatusOK, counts)
}

// Uploads

func (api *adminApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer func() { _ = src.Close() }()

	url, err := api.files.Save(fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "saving uploaded file")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"url": url})
}

// News administration

func (api *adminApi) createNews(ctx echo.Context) error {
	var data news.NewNews
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNews")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	n, err := api.news.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating news")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *adminApi) listNews(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	items, total, err := api.news.List(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing news")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: items, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *adminApi) retrieveNews(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	n, err := api.news.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting news")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *adminApi) updateNews(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data news.UpdateNews
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNews")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	n, err := api.news.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating news")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *adminApi) deleteNews(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.news.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting news")
	}
	return ctx.NoContent(http.StatusNoContent)
}
