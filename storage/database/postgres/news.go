package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/news"
)

type newsRepository struct {
	exec core.DBExecutor
}

var _ news.Repository = (*newsRepository)(nil) // interface compliance check

func NewNewsRepository(db *sqlx.DB) *newsRepository {
	return &newsRepository{exec: db.DB}
}

func (repo newsRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

const newsColumns = "id, title, content, publish_date, published, created_at, updated_at"

func scanNews(s rowScanner) (news.News, error) {
	var n news.News
	err := s.Scan(&n.ID, &n.Title, &n.Content, &n.PublishDate, &n.Published, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (repo newsRepository) CreateNews(ctx context.Context, n news.News, exec ...core.DBExecutor) (news.News, error) {
	const q = `
		INSERT INTO news (title, content, publish_date, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(
		ctx, q, n.Title, n.Content, n.PublishDate, n.Published, n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID)
	if err != nil {
		return news.News{}, errors.Wrap(err, "inserting news")
	}
	return n, nil
}

func (repo newsRepository) GetNewsByID(ctx context.Context, id int, exec ...core.DBExecutor) (news.News, error) {
	n, err := scanNews(repo.getExec(exec).QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return news.News{}, news.ErrNotFound
		}
		return news.News{}, errors.Wrap(err, "getting news by id")
	}
	return n, nil
}

func (repo newsRepository) QueryNews(ctx context.Context, publishedOnly bool, pg core.Pagination, exec ...core.DBExecutor) ([]news.News, int, error) {
	e := repo.getExec(exec)

	where := ""
	if publishedOnly {
		where = " WHERE published"
	}
	total, err := repo.count(ctx, e, "SELECT COUNT(*) FROM news"+where)
	if err != nil {
		return nil, 0, err
	}

	rows, err := e.QueryContext(
		ctx, "SELECT "+newsColumns+" FROM news"+where+" ORDER BY publish_date DESC LIMIT $1 OFFSET $2",
		pg.Size, pg.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying news")
	}
	defer func() { _ = rows.Close() }()

	items := make([]news.News, 0, pg.Size)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "querying news")
		}
		items = append(items, n)
	}
	return items, total, errors.Wrap(rows.Err(), "querying news")
}

func (repo newsRepository) count(ctx context.Context, exec core.DBExecutor, q string) (int, error) {
	var n int
	if err := exec.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting news")
	}
	return n, nil
}

func (repo newsRepository) UpdateNews(ctx context.Context, n news.News, exec ...core.DBExecutor) (news.News, error) {
	const q = `
		UPDATE news
		SET title = $1, content = $2, publish_date = $3, published = $4, updated_at = $5
		WHERE id = $6`

	res, err := repo.getExec(exec).ExecContext(ctx, q, n.Title, n.Content, n.PublishDate, n.Published, n.UpdatedAt, n.ID)
	if err != nil {
		return news.News{}, errors.Wrap(err, "updating news")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return news.News{}, errors.Wrap(err, "updating news")
	}
	if count == 0 {
		return news.News{}, news.ErrNotFound
	}
	return n, nil
}

func (repo newsRepository) DeleteNews(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting news")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting news")
	}
	if n == 0 {
		return news.ErrNotFound
	}
	return nil
}

func (repo newsRepository) CountPublishedNews(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return repo.count(ctx, repo.getExec(exec), "SELECT COUNT(*) FROM news WHERE published")
}
