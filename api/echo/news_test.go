package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core/news"
)

func TestNewsAPI_feed(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "jane")
	token := app.tokenFor(t, std.Student.UserID)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := app.newsSvc.Create(ctx, news.NewNews{Title: "Old", Content: "x", PublishDate: old, Published: true})
	assert.NoError(t, err)
	published, err := app.newsSvc.Create(ctx, news.NewNews{Title: "Recent", Content: "x", PublishDate: recent, Published: true})
	assert.NoError(t, err)
	draft, err := app.newsSvc.Create(ctx, news.NewNews{Title: "Draft", Content: "x"})
	assert.NoError(t, err)

	// the feed requires a signed-in user
	rec := app.request(t, http.MethodGet, "/v1/news", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request(t, http.MethodGet, "/v1/news", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []news.TitleView `json:"items"`
		Total int              `json:"total"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 2, page.Total)
	// newest first, drafts excluded
	if assert.Len(t, page.Items, 2) {
		assert.Equal(t, "Recent", page.Items[0].Title)
		assert.Equal(t, "Old", page.Items[1].Title)
	}

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/news/%d", published.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var n news.News
	decodeBody(t, rec, &n)
	assert.Equal(t, "Recent", n.Title)

	// drafts stay invisible
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/news/%d", draft.ID), token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminAPI_newsCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, app.createAdmin(t, "admin"))

	rec := app.request(t, http.MethodPost, "/v1/admin/news", token,
		marshalObj(t, news.NewNews{Title: "Term dates", Content: "Term starts Monday."}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created news.News
	decodeBody(t, rec, &created)
	assert.False(t, created.Published)
	assert.False(t, created.PublishDate.IsZero())

	// missing content is a 400
	rec = app.request(t, http.MethodPost, "/v1/admin/news", token,
		marshalObj(t, map[string]string{"title": "no content"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the admin list shows drafts
	rec = app.request(t, http.MethodGet, "/v1/admin/news", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []news.News `json:"items"`
		Total int         `json:"total"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Total)

	// publish it
	rec = app.request(t, http.MethodPut, fmt.Sprintf("/v1/admin/news/%d", created.ID), token,
		marshalObj(t, news.UpdateNews{Title: "Term dates", Content: "Term starts Monday.", Published: true}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated news.News
	decodeBody(t, rec, &updated)
	assert.True(t, updated.Published)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/news/%d", created.ID), token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/v1/admin/news/%d", created.ID), token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/admin/news/%d", created.ID), token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
