package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

func (repo *rosterRepository) CheckCodeUniqueness(ctx context.Context, code string, excludedID int, exec ...core.DBExecutor) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, class := range repo.db.classes {
		if class.ID != excludedID && class.Code == code {
			return roster.ErrClassCodeExists
		}
	}
	return nil
}

func (repo *rosterRepository) CreateClass(ctx context.Context, class roster.Class, exec ...core.DBExecutor) (roster.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.classPK++
	class.ID = repo.db.classPK
	repo.db.classes[class.ID] = &class
	return class, nil
}

func (repo *rosterRepository) GetClassByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if class, ok := repo.db.classes[id]; ok {
		return *class, nil
	}
	return roster.Class{}, roster.ErrClassNotFound
}

func (repo *rosterRepository) GetClassesByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	classes := make([]roster.Class, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		class, ok := repo.db.classes[id]
		// a repeated id resolves to fewer rows than requested
		if !ok || seen[id] {
			return nil, roster.ErrClassNotFound
		}
		seen[id] = true
		classes = append(classes, *class)
	}
	return classes, nil
}

func (repo *rosterRepository) QueryClasses(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Class, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]roster.Class, 0, len(repo.db.classes))
	for _, class := range repo.db.classes {
		all = append(all, *class)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	lo, hi := paginate(len(all), pg.Page, pg.Size)
	return all[lo:hi], len(all), nil
}

func (repo *rosterRepository) UpdateClass(ctx context.Context, class roster.Class, exec ...core.DBExecutor) (roster.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.classes[class.ID]; !ok {
		return roster.Class{}, roster.ErrClassNotFound
	}
	repo.db.classes[class.ID] = &class
	return class, nil
}

func (repo *rosterRepository) DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.classes[id]; !ok {
		return roster.ErrClassNotFound
	}

	delete(repo.db.classEducators, id)
	for _, std := range repo.db.students {
		if std.ClassID != nil && *std.ClassID == id {
			std.ClassID = nil
		}
	}
	for fbID, fb := range repo.db.feedback {
		if fb.ClassID == id {
			delete(repo.db.feedback, fbID)
		}
	}
	delete(repo.db.classes, id)
	return nil
}

func (repo *rosterRepository) CountClasses(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.db.classes), nil
}
