package news_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/storage/database/inmem"
)

func setup(t *testing.T) *news.Service {
	t.Helper()
	db := inmem.NewDB()
	return news.NewService(inmem.NewNewsRepository(db))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	// zero publish date defaults to now
	n, err := svc.Create(ctx, news.NewNews{Title: "Welcome", Content: "Term starts Monday.", Published: true})
	assert.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.False(t, n.PublishDate.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), n.PublishDate, time.Minute)

	// explicit publish date is kept
	when := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	n, err = svc.Create(ctx, news.NewNews{Title: "Sports day", Content: "Save the date.", PublishDate: when})
	assert.NoError(t, err)
	assert.Equal(t, when, n.PublishDate)
	assert.False(t, n.Published)
}

func TestService_GetPublished_hidesDrafts(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, news.NewNews{Title: "Draft", Content: "wip"})
	assert.NoError(t, err)
	published, err := svc.Create(ctx, news.NewNews{Title: "Live", Content: "out", Published: true})
	assert.NoError(t, err)

	_, err = svc.GetPublished(ctx, draft.ID)
	assert.ErrorIs(t, err, news.ErrNotFound)

	n, err := svc.GetPublished(ctx, published.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Live", n.Title)

	// the admin read still sees drafts
	n, err = svc.Get(ctx, draft.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Draft", n.Title)
}

func TestService_ListPublishedTitles(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, news.NewNews{Title: "Old", Content: "x", PublishDate: old, Published: true})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, news.NewNews{Title: "Recent", Content: "x", PublishDate: recent, Published: true})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, news.NewNews{Title: "Draft", Content: "x"})
	assert.NoError(t, err)

	titles, total, err := svc.ListPublishedTitles(ctx, core.Pagination{Size: 20})
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	// newest first, drafts excluded
	if assert.Len(t, titles, 2) {
		assert.Equal(t, "Recent", titles[0].Title)
		assert.Equal(t, "Old", titles[1].Title)
	}

	// the admin list includes drafts
	items, total, err := svc.List(ctx, core.Pagination{Size: 20})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	when := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	n, err := svc.Create(ctx, news.NewNews{Title: "Draft", Content: "wip", PublishDate: when})
	assert.NoError(t, err)

	// a zero publish date preserves the current one
	updated, err := svc.Update(ctx, n.ID, news.UpdateNews{Title: "Final", Content: "done", Published: true})
	assert.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.True(t, updated.Published)
	assert.Equal(t, when, updated.PublishDate)

	// an explicit one replaces it
	later := when.Add(48 * time.Hour)
	updated, err = svc.Update(ctx, n.ID, news.UpdateNews{Title: "Final", Content: "done", Published: true, PublishDate: later})
	assert.NoError(t, err)
	assert.Equal(t, later, updated.PublishDate)

	_, err = svc.Update(ctx, 999, news.UpdateNews{Title: "x", Content: "x"})
	assert.ErrorIs(t, err, news.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, news.NewNews{Title: "Gone", Content: "soon"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, n.ID))
	_, err = svc.Get(ctx, n.ID)
	assert.ErrorIs(t, err, news.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, n.ID), news.ErrNotFound)
}

func TestService_CountPublished(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, news.NewNews{Title: "Live", Content: "x", Published: true})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, news.NewNews{Title: "Draft", Content: "x"})
	assert.NoError(t, err)

	count, err := svc.CountPublished(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
