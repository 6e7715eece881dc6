package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/news"
)

type newsRepository struct {
	db *DB
}

var _ news.Repository = (*newsRepository)(nil)

func NewNewsRepository(db *DB) news.Repository {
	return &newsRepository{db: db}
}

func (repo *newsRepository) CreateNews(ctx context.Context, n news.News, exec ...core.DBExecutor) (news.News, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.newsPK++
	n.ID = repo.db.newsPK
	repo.db.news[n.ID] = &n
	return n, nil
}

func (repo *newsRepository) GetNewsByID(ctx context.Context, id int, exec ...core.DBExecutor) (news.News, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if n, ok := repo.db.news[id]; ok {
		return *n, nil
	}
	return news.News{}, news.ErrNotFound
}

func (repo *newsRepository) QueryNews(ctx context.Context, publishedOnly bool, pg core.Pagination, exec ...core.DBExecutor) ([]news.News, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]news.News, 0, len(repo.db.news))
	for _, n := range repo.db.news {
		if publishedOnly && !n.Published {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PublishDate.After(all[j].PublishDate) })

	lo, hi := paginate(len(all), pg.Page, pg.Size)
	return all[lo:hi], len(all), nil
}

func (repo *newsRepository) UpdateNews(ctx context.Context, n news.News, exec ...core.DBExecutor) (news.News, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.news[n.ID]; !ok {
		return news.News{}, news.ErrNotFound
	}
	repo.db.news[n.ID] = &n
	return n, nil
}

func (repo *newsRepository) DeleteNews(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.news[id]; !ok {
		return news.ErrNotFound
	}
	delete(repo.db.news, id)
	return nil
}

func (repo *newsRepository) CountPublishedNews(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	count := 0
	for _, n := range repo.db.news {
		if n.Published {
			count++
		}
	}
	return count, nil
}
