package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

var (
	ErrNotFound = core.NewNotFoundError("feedback not found")
	ErrExists   = core.NewConflictError("feedback", "feedback for this student in this class already exists")
)

type (
	Repository interface {
		// GetFeedbackByTriple returns ErrNotFound when no record exists
		// for the given (educator, student, class).
		GetFeedbackByTriple(ctx context.Context, educatorID, studentID, classID int, exec ...core.DBExecutor) (Feedback, error)
		CreateFeedback(ctx context.Context, fb Feedback, exec ...core.DBExecutor) (Feedback, error)
		UpdateFeedback(ctx context.Context, fb Feedback, exec ...core.DBExecutor) (Feedback, error)
		FeedbackByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]Feedback, error)
	}

	Service struct {
		db     core.Transactor
		repo   Repository
		roster roster.Repository
		linker *roster.Linker
	}
)

func NewService(db core.Transactor, repo Repository, rosterRepo roster.Repository) *Service {
	return &Service{
		db:     db,
		repo:   repo,
		roster: rosterRepo,
		linker: roster.NewLinker(rosterRepo),
	}
}

// Upsert writes feedback for a student in a class, overwriting any
// previous record by the same educator for the same student and class.
// The educator must teach the class and the class must own the student.
func (svc *Service) Upsert(ctx context.Context, educatorID, studentID, classID int, uf UpsertFeedback) (View, error) {
	edu, std, class, err := svc.resolve(ctx, educatorID, studentID, classID)
	if err != nil {
		return View{}, err
	}
	if err = svc.authorize(ctx, edu, std, classID); err != nil {
		return View{}, err
	}

	var fb Feedback
	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		fb, err = svc.repo.GetFeedbackByTriple(ctx, educatorID, studentID, classID, exec)
		switch {
		case err == nil:
			fb.Text = uf.Text
			fb.Rating = uf.Rating
			fb, err = svc.repo.UpdateFeedback(ctx, fb, exec)
			return err
		case errors.Is(err, ErrNotFound):
			fb = Feedback{
				EducatorID: educatorID,
				StudentID:  studentID,
				ClassID:    classID,
				Text:       uf.Text,
				Rating:     uf.Rating,
				CreatedAt:  time.Now().UTC(),
			}
			fb, err = svc.repo.CreateFeedback(ctx, fb, exec)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return View{}, err
	}

	return View{
		Feedback:     fb,
		EducatorName: fullName(edu.FirstName, edu.LastName),
		StudentName:  fullName(std.FirstName, std.LastName),
		ClassName:    class.Name,
	}, nil
}

// ListForStudent lists the educator's own feedback for a student in a
// class, under the same authorization as Upsert. At most one record
// exists per (educator, student, class).
func (svc *Service) ListForStudent(ctx context.Context, educatorID, studentID, classID int) ([]View, error) {
	edu, std, _, err := svc.resolve(ctx, educatorID, studentID, classID)
	if err != nil {
		return nil, err
	}
	if err = svc.authorize(ctx, edu, std, classID); err != nil {
		return nil, err
	}

	fb, err := svc.repo.GetFeedbackByTriple(ctx, educatorID, studentID, classID)
	if errors.Is(err, ErrNotFound) {
		return []View{}, nil
	}
	if err != nil {
		return nil, err
	}
	return svc.views(ctx, []Feedback{fb})
}

// FeedbackForStudent lists a student's own feedback records.
func (svc *Service) FeedbackForStudent(ctx context.Context, studentID int) ([]View, error) {
	if _, err := svc.roster.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := svc.repo.FeedbackByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return svc.views(ctx, records)
}

func (svc *Service) resolve(ctx context.Context, educatorID, studentID, classID int) (roster.Educator, roster.Student, roster.Class, error) {
	edu, err := svc.roster.GetEducatorByID(ctx, educatorID)
	if err != nil {
		return roster.Educator{}, roster.Student{}, roster.Class{}, err
	}
	std, err := svc.roster.GetStudentByID(ctx, studentID)
	if err != nil {
		return roster.Educator{}, roster.Student{}, roster.Class{}, err
	}
	class, err := svc.roster.GetClassByID(ctx, classID)
	if err != nil {
		return roster.Educator{}, roster.Student{}, roster.Class{}, err
	}
	return edu, std, class, nil
}

func (svc *Service) authorize(ctx context.Context, edu roster.Educator, std roster.Student, classID int) error {
	classIDs, err := svc.linker.ClassIDsByEducator(ctx, edu.ID)
	if err != nil {
		return err
	}
	teaches := false
	for _, id := range classIDs {
		if id == classID {
			teaches = true
			break
		}
	}
	if !teaches {
		return core.NewAuthorizationError("educator does not teach this class")
	}
	if std.ClassID == nil || *std.ClassID != classID {
		return core.NewAuthorizationError("student does not belong to this class")
	}
	return nil
}

func (svc *Service) views(ctx context.Context, records []Feedback) ([]View, error) {
	views := make([]View, 0, len(records))
	for _, fb := range records {
		edu, err := svc.roster.GetEducatorByID(ctx, fb.EducatorID)
		if err != nil {
			return nil, err
		}
		std, err := svc.roster.GetStudentByID(ctx, fb.StudentID)
		if err != nil {
			return nil, err
		}
		class, err := svc.roster.GetClassByID(ctx, fb.ClassID)
		if err != nil {
			return nil, err
		}
		views = append(views, View{
			Feedback:     fb,
			EducatorName: fullName(edu.FirstName, edu.LastName),
			StudentName:  fullName(std.FirstName, std.LastName),
			ClassName:    class.Name,
		})
	}
	return views, nil
}

func fullName(first, last string) string {
	return fmt.Sprintf("%s %s", first, last)
}
