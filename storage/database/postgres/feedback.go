package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
)

type feedbackRepository struct {
	exec core.DBExecutor
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

var feedbackConstraints = map[string]error{
	"uq_feedback_triple": feedback.ErrExists,
}

func NewFeedbackRepository(db *sqlx.DB) *feedbackRepository {
	return &feedbackRepository{exec: db.DB}
}

func (repo feedbackRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

const feedbackColumns = "id, educator_id, student_id, class_id, text, rating, created_at"

func scanFeedback(s rowScanner) (feedback.Feedback, error) {
	var fb feedback.Feedback
	var rating null.Int
	err := s.Scan(&fb.ID, &fb.EducatorID, &fb.StudentID, &fb.ClassID, &fb.Text, &rating, &fb.CreatedAt)
	fb.Rating = rating.Ptr()
	return fb, err
}

func (repo feedbackRepository) GetFeedbackByTriple(ctx context.Context, educatorID, studentID, classID int, exec ...core.DBExecutor) (feedback.Feedback, error) {
	const q = "SELECT " + feedbackColumns + ` FROM feedback
		WHERE educator_id = $1 AND student_id = $2 AND class_id = $3`

	fb, err := scanFeedback(repo.getExec(exec).QueryRowContext(ctx, q, educatorID, studentID, classID))
	if err != nil {
		if isNoRows(err) {
			return feedback.Feedback{}, feedback.ErrNotFound
		}
		return feedback.Feedback{}, errors.Wrap(err, "getting feedback")
	}
	return fb, nil
}

func (repo feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback, exec ...core.DBExecutor) (feedback.Feedback, error) {
	const q = `
		INSERT INTO feedback (educator_id, student_id, class_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repo.getExec(exec).QueryRowContext(
		ctx, q, fb.EducatorID, fb.StudentID, fb.ClassID, fb.Text, null.IntFromPtr(fb.Rating), fb.CreatedAt,
	).Scan(&fb.ID)
	if err != nil {
		return feedback.Feedback{}, trapConflictErr(err, feedbackConstraints, "inserting feedback")
	}
	return fb, nil
}

func (repo feedbackRepository) UpdateFeedback(ctx context.Context, fb feedback.Feedback, exec ...core.DBExecutor) (feedback.Feedback, error) {
	const q = `
		UPDATE feedback
		SET text = $1, rating = $2
		WHERE id = $3`

	res, err := repo.getExec(exec).ExecContext(ctx, q, fb.Text, null.IntFromPtr(fb.Rating), fb.ID)
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "updating feedback")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "updating feedback")
	}
	if n == 0 {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	return fb, nil
}

func (repo feedbackRepository) FeedbackByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]feedback.Feedback, error) {
	rows, err := repo.getExec(exec).QueryContext(
		ctx, "SELECT "+feedbackColumns+" FROM feedback WHERE student_id = $1 ORDER BY id", studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying feedback by student")
	}
	defer func() { _ = rows.Close() }()

	var records []feedback.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, errors.Wrap(err, "querying feedback by student")
		}
		records = append(records, fb)
	}
	return records, errors.Wrap(rows.Err(), "querying feedback by student")
}
