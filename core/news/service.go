package news

import (
	"context"
	"time"

	"github.com/campushq/backend/core"
)

var ErrNotFound = core.NewNotFoundError("news not found")

type (
	Repository interface {
		CreateNews(ctx context.Context, n News, exec ...core.DBExecutor) (News, error)
		GetNewsByID(ctx context.Context, id int, exec ...core.DBExecutor) (News, error)
		// QueryNews lists announcements ordered by publish date, newest
		// first. publishedOnly filters out drafts.
		QueryNews(ctx context.Context, publishedOnly bool, pg core.Pagination, exec ...core.DBExecutor) ([]News, int, error)
		UpdateNews(ctx context.Context, n News, exec ...core.DBExecutor) (News, error)
		DeleteNews(ctx context.Context, id int, exec ...core.DBExecutor) error
		CountPublishedNews(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNews) (News, error) {
	now := time.Now().UTC()
	publishDate := nn.PublishDate
	if publishDate.IsZero() {
		publishDate = now
	}
	return svc.repo.CreateNews(ctx, News{
		Title:       nn.Title,
		Content:     nn.Content,
		PublishDate: publishDate,
		Published:   nn.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Get returns any announcement, draft or published. Admin use only.
func (svc *Service) Get(ctx context.Context, id int) (News, error) {
	return svc.repo.GetNewsByID(ctx, id)
}

// GetPublished returns a published announcement, reporting ErrNotFound
// for drafts so they stay invisible to the public feed.
func (svc *Service) GetPublished(ctx context.Context, id int) (News, error) {
	n, err := svc.repo.GetNewsByID(ctx, id)
	if err != nil {
		return News{}, err
	}
	if !n.Published {
		return News{}, ErrNotFound
	}
	return n, nil
}

// List lists all announcements, drafts included. Admin use only.
func (svc *Service) List(ctx context.Context, pg core.Pagination) ([]News, int, error) {
	return svc.repo.QueryNews(ctx, false, pg)
}

// ListPublishedTitles lists the public feed: published titles only,
// newest first.
func (svc *Service) ListPublishedTitles(ctx context.Context, pg core.Pagination) ([]TitleView, int, error) {
	items, total, err := svc.repo.QueryNews(ctx, true, pg)
	if err != nil {
		return nil, 0, err
	}

	titles := make([]TitleView, 0, len(items))
	for _, n := range items {
		titles = append(titles, TitleView{ID: n.ID, Title: n.Title, PublishDate: n.PublishDate})
	}
	return titles, total, nil
}

func (svc *Service) Update(ctx context.Context, id int, un UpdateNews) (News, error) {
	n, err := svc.repo.GetNewsByID(ctx, id)
	if err != nil {
		return News{}, err
	}

	n.Title = un.Title
	n.Content = un.Content
	n.Published = un.Published
	if !un.PublishDate.IsZero() {
		n.PublishDate = un.PublishDate
	}
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNews(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if _, err := svc.repo.GetNewsByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteNews(ctx, id)
}

func (svc *Service) CountPublished(ctx context.Context) (int, error) {
	return svc.repo.CountPublishedNews(ctx)
}
