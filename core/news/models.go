package news

import (
	"time"

	"github.com/campushq/backend/core"
)

// News is an announcement published to the campus feed.
type News struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishDate time.Time `json:"publish_date"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// TitleView is the feed listing shape: title and date only.
type TitleView struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	PublishDate time.Time `json:"publish_date"`
}

// NewNews contains information needed to create an announcement.
type NewNews struct {
	Title       string    `json:"title" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	PublishDate time.Time `json:"publish_date"`
	Published   bool      `json:"published"`
}

func (nn *NewNews) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	return core.Validate.Struct(nn)
}

// UpdateNews defines what may be provided to modify an announcement.
type UpdateNews struct {
	Title       string    `json:"title" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	PublishDate time.Time `json:"publish_date"`
	Published   bool      `json:"published"`
}

func (un *UpdateNews) Validate() error {
	un.Title = core.CleanString(un.Title)
	un.Content = core.CleanString(un.Content)
	return core.Validate.Struct(un)
}
