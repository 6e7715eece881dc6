// Package inmem is a map-backed store used by tests and local
// development. Repositories ignore the DBExecutor arguments; InTx runs
// fn directly since services pre-check every failure mode before
// writing.
package inmem

import (
	"context"
	"sync"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
)

type DB struct {
	mu sync.RWMutex

	users     map[int]*user.User
	classes   map[int]*roster.Class
	educators map[int]*roster.Educator
	students  map[int]*roster.Student
	subjects  map[int]*roster.Subject
	feedback  map[int]*feedback.Feedback
	news      map[int]*news.News

	classEducators  map[int]map[int]bool // class ID -> educator IDs
	studentSubjects map[int]map[int]bool // student ID -> subject IDs

	userPK     int
	classPK    int
	educatorPK int
	studentPK  int
	subjectPK  int
	feedbackPK int
	newsPK     int
}

func NewDB() *DB {
	return &DB{
		users:           make(map[int]*user.User),
		classes:         make(map[int]*roster.Class),
		educators:       make(map[int]*roster.Educator),
		students:        make(map[int]*roster.Student),
		subjects:        make(map[int]*roster.Subject),
		feedback:        make(map[int]*feedback.Feedback),
		news:            make(map[int]*news.News),
		classEducators:  make(map[int]map[int]bool),
		studentSubjects: make(map[int]map[int]bool),
	}
}

var _ core.Transactor = (*DB)(nil)

func (db *DB) InTx(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	return fn(nil)
}
