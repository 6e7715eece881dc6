package feedback

import (
	"time"

	"github.com/campushq/backend/core"
)

// Feedback is a note an educator writes about a student in the context
// of a class. At most one record exists per (educator, student, class).
type Feedback struct {
	ID         int       `json:"id"`
	EducatorID int       `json:"educator_id"`
	StudentID  int       `json:"student_id"`
	ClassID    int       `json:"class_id"`
	Text       string    `json:"text"`
	Rating     *int      `json:"rating"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

type View struct {
	Feedback
	EducatorName string `json:"educator_name"`
	StudentName  string `json:"student_name"`
	ClassName    string `json:"class_name"`
}

// UpsertFeedback contains what an educator provides when writing or
// rewriting feedback.
type UpsertFeedback struct {
	Text   string `json:"text" validate:"required"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (uf *UpsertFeedback) Validate() error {
	uf.Text = core.CleanString(uf.Text)
	return core.Validate.Struct(uf)
}
