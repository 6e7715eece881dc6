package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core/news"
)

type newsApi struct {
	svc *news.Service
}

// registerNewsAPI exposes the published feed to any authenticated user.
func registerNewsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *news.Service) {
	api := newsApi{svc: svc}

	ng := g.Group("/news", jwt)
	ng.GET("", api.feed)
	ng.GET("/:id", api.retrieve)
}

func (api *newsApi) feed(ctx echo.Context) error {
	pg, err := bindPagination(ctx)
	if err != nil {
		return err
	}
	items, total, err := api.svc.ListPublishedTitles(ctx.Request().Context(), pg)
	if err != nil {
		return errors.Wrap(err, "listing published news")
	}
	return ctx.JSON(http.StatusOK, pagedResponse{Items: items, Page: pg.Page, Size: pg.Size, Total: total})
}

func (api *newsApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	n, err := api.svc.GetPublished(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting published news")
	}
	return ctx.JSON(http.StatusOK, n)
}
