package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
)

type feedbackRepository struct {
	db *DB
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) GetFeedbackByTriple(ctx context.Context, educatorID, studentID, classID int, exec ...core.DBExecutor) (feedback.Feedback, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, fb := range repo.db.feedback {
		if fb.EducatorID == educatorID && fb.StudentID == studentID && fb.ClassID == classID {
			return *fb, nil
		}
	}
	return feedback.Feedback{}, feedback.ErrNotFound
}

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback, exec ...core.DBExecutor) (feedback.Feedback, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.feedbackPK++
	fb.ID = repo.db.feedbackPK
	repo.db.feedback[fb.ID] = &fb
	return fb, nil
}

func (repo *feedbackRepository) UpdateFeedback(ctx context.Context, fb feedback.Feedback, exec ...core.DBExecutor) (feedback.Feedback, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.feedback[fb.ID]; !ok {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	repo.db.feedback[fb.ID] = &fb
	return fb, nil
}

func (repo *feedbackRepository) FeedbackByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]feedback.Feedback, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var records []feedback.Feedback
	for _, fb := range repo.db.feedback {
		if fb.StudentID == studentID {
			records = append(records, *fb)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
