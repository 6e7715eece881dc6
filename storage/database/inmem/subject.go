package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/roster"
)

func (repo *rosterRepository) CheckNameUniqueness(ctx context.Context, name string, excludedID int, exec ...core.DBExecutor) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, sub := range repo.db.subjects {
		if sub.ID != excludedID && sub.Name == name {
			return roster.ErrSubjectNameExists
		}
	}
	return nil
}

func (repo *rosterRepository) CreateSubject(ctx context.Context, sub roster.Subject, exec ...core.DBExecutor) (roster.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.subjectPK++
	sub.ID = repo.db.subjectPK
	repo.db.subjects[sub.ID] = &sub
	return sub, nil
}

func (repo *rosterRepository) GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (roster.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if sub, ok := repo.db.subjects[id]; ok {
		return *sub, nil
	}
	return roster.Subject{}, roster.ErrSubjectNotFound
}

func (repo *rosterRepository) GetSubjectsByID(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]roster.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subs := make([]roster.Subject, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		sub, ok := repo.db.subjects[id]
		if !ok || seen[id] {
			return nil, roster.ErrSubjectNotFound
		}
		seen[id] = true
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (repo *rosterRepository) QuerySubjects(ctx context.Context, pg core.Pagination, exec ...core.DBExecutor) ([]roster.Subject, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]roster.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		all = append(all, *sub)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	lo, hi := paginate(len(all), pg.Page, pg.Size)
	return all[lo:hi], len(all), nil
}

func (repo *rosterRepository) UpdateSubject(ctx context.Context, sub roster.Subject, exec ...core.DBExecutor) (roster.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.subjects[sub.ID]; !ok {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	repo.db.subjects[sub.ID] = &sub
	return sub, nil
}

func (repo *rosterRepository) DeleteSubject(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.subjects[id]; !ok {
		return roster.ErrSubjectNotFound
	}

	for _, edu := range repo.db.educators {
		if edu.SubjectID != nil && *edu.SubjectID == id {
			edu.SubjectID = nil
		}
	}
	for _, subs := range repo.db.studentSubjects {
		delete(subs, id)
	}
	delete(repo.db.subjects, id)
	return nil
}

func (repo *rosterRepository) CountSubjects(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.db.subjects), nil
}
