package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

func (repo *rosterRepository) CreateEducator(ctx context.Context, edu roster.Educator, exec ...core.DBExecutor) (roster.Educator, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.educatorPK++
	edu.ID = repo.db.educatorPK
	repo.db.educators[edu.ID] = &edu
	return edu, nil
}

func (repo *rosterRepository) GetEducatorByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Educator, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if edu, ok := repo.db.educators[id]; ok {
		return *edu, nil
	}
	return roster.Educator{}, roster.ErrEducatorNotFound
}

func (repo *rosterRepository) GetEducatorByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) (roster.Educator, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, edu := range repo.db.educators {
		if edu.UserID == userID {
			return *edu, nil
		}
	}
	return roster.Educator{}, roster.ErrEducatorNotFound
}

func (repo *rosterRepository) GetEducatorsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Educator, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	edus := make([]roster.Educator, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		edu, ok := repo.db.educators[id]
		if !ok || seen[id] {
			return nil, roster.ErrEducatorNotFound
		}
		seen[id] = true
		edus = append(edus, *edu)
	}
	return edus, nil
}

func (repo *rosterRepository) QueryEducators(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Educator, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]roster.Educator, 0, len(repo.db.educators))
	for _, edu := range repo.db.educators {
		all = append(all, *edu)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	lo, hi := paginate(len(all), pg.Page, pg.Size)
	return all[lo:hi], len(all), nil
}

func (repo *rosterRepository) UpdateEducator(ctx context.Context, edu roster.Educator, exec ...core.DBExecutor) (roster.Educator, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.educators[edu.ID]; !ok {
		return roster.Educator{}, roster.ErrEducatorNotFound
	}
	repo.db.educators[edu.ID] = &edu
	return edu, nil
}

func (repo *rosterRepository) DeleteEducator(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.educators[id]; !ok {
		return roster.ErrEducatorNotFound
	}

	for _, edus := range repo.db.classEducators {
		delete(edus, id)
	}
	for fbID, fb := range repo.db.feedback {
		if fb.EducatorID == id {
			delete(repo.db.feedback, fbID)
		}
	}
	delete(repo.db.educators, id)
	return nil
}

func (repo *rosterRepository) CountEducators(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.db.educators), nil
}
