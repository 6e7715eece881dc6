package inmem

import (
	"context"
	"sort"

	"github.com/campushq/backend/core"
)

func (repo *rosterRepository) AddClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	edus, ok := repo.db.classEducators[classID]
	if !ok {
		edus = make(map[int]bool)
		repo.db.classEducators[classID] = edus
	}
	edus[educatorID] = true
	return nil
}

func (repo *rosterRepository) RemoveClassEducator(ctx context.Context, classID, educatorID int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	delete(repo.db.classEducators[classID], educatorID)
	return nil
}

func (repo *rosterRepository) ClassIDsByEducator(ctx context.Context, educatorID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var ids []int
	for classID, edus := range repo.db.classEducators {
		if edus[educatorID] {
			ids = append(ids, classID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (repo *rosterRepository) EducatorIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return sortedIDs(repo.db.classEducators[classID]), nil
}

func (repo *rosterRepository) AddStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	subs, ok := repo.db.studentSubjects[studentID]
	if !ok {
		subs = make(map[int]bool)
		repo.db.studentSubjects[studentID] = subs
	}
	subs[subjectID] = true
	return nil
}

func (repo *rosterRepository) RemoveStudentSubject(ctx context.Context, studentID, subjectID int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	delete(repo.db.studentSubjects[studentID], subjectID)
	return nil
}

func (repo *rosterRepository) SubjectIDsByStudent(ctx context.Context, studentID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return sortedIDs(repo.db.studentSubjects[studentID]), nil
}

func (repo *rosterRepository) StudentIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var ids []int
	for stdID, subs := range repo.db.studentSubjects {
		if subs[subjectID] {
			ids = append(ids, stdID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (repo *rosterRepository) SetEducatorSubject(ctx context.Context, educatorID int, subjectID *int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	edu, ok := repo.db.educators[educatorID]
	if !ok {
		return nil
	}
	edu.SubjectID = subjectID
	return nil
}

func (repo *rosterRepository) EducatorIDsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var ids []int
	for _, edu := range repo.db.educators {
		if edu.SubjectID != nil && *edu.SubjectID == subjectID {
			ids = append(ids, edu.ID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (repo *rosterRepository) SetStudentClass(ctx context.Context, studentID int, classID *int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	std, ok := repo.db.students[studentID]
	if !ok {
		return nil
	}
	std.ClassID = classID
	return nil
}

func (repo *rosterRepository) StudentIDsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var ids []int
	for _, std := range repo.db.students {
		if std.ClassID != nil && *std.ClassID == classID {
			ids = append(ids, std.ID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
