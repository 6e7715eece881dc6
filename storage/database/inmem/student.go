package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

func (repo *rosterRepository) CheckRollNumberUniqueness(ctx context.Context, rollNumber string, excludedID int, exec ...core.DBExecutor) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, std := range repo.db.students {
		if std.ID != excludedID && std.RollNumber == rollNumber {
			return roster.ErrRollNumberExists
		}
	}
	return nil
}

func (repo *rosterRepository) CreateStudent(ctx context.Context, std roster.Student, exec ...core.DBExecutor) (roster.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, other := range repo.db.students {
		if other.RollNumber == std.RollNumber {
			return roster.Student{}, roster.ErrRollNumberExists
		}
	}

	repo.db.studentPK++
	std.ID = repo.db.studentPK
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *rosterRepository) GetStudentByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, nil
	}
	return roster.Student{}, roster.ErrStudentNotFound
}

func (repo *rosterRepository) GetStudentByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (roster.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, std := range repo.db.students {
		if std.UserID == userID {
			return *std, nil
		}
	}
	return roster.Student{}, roster.ErrStudentNotFound
}

func (repo *rosterRepository) GetStudentsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	stds := make([]roster.Student, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		std, ok := repo.db.students[id]
		if !ok || seen[id] {
			return nil, roster.ErrStudentNotFound
		}
		seen[id] = true
		stds = append(stds, *std)
	}
	return stds, nil
}

func (repo *rosterRepository) QueryStudents(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Student, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]roster.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		all = append(all, *std)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	lo, hi := paginate(len(all), pg.Page, pg.Size)
	return all[lo:hi], len(all), nil
}

func (repo *rosterRepository) UpdateStudent(ctx context.Context, std roster.Student, exec ...core.DBExecutor) (roster.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[std.ID]; !ok {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *rosterRepository) DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return roster.ErrStudentNotFound
	}

	delete(repo.db.studentSubjects, id)
	for fbID, fb := range repo.db.feedback {
		if fb.StudentID == id {
			delete(repo.db.feedback, fbID)
		}
	}
	delete(repo.db.students, id)
	return nil
}

func (repo *rosterRepository) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.db.students), nil
}
