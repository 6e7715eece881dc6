package roster

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
)

const rollNumberLength = 5

type (
	// Repository is the full persistence surface of the roster domain.
	Repository interface {
		ClassRepository
		EducatorRepository
		StudentRepository
		SubjectRepository
		EdgeRepository
	}

	Service struct {
		db     core.Transactor
		repo   Repository
		linker *Linker
		users  *user.Service
		mail   core.EmailService
		files  core.FileStorage
		conf   *core.Config
	}
)

func NewService(
	db core.Transactor,
	repo Repository,
	users *user.Service,
	mailSvc core.EmailService,
	files core.FileStorage,
	conf *core.Config,
) *Service {
	return &Service{
		db:     db,
		repo:   repo,
		linker: NewLinker(repo),
		users:  users,
		mail:   mailSvc,
		files:  files,
		conf:   conf,
	}
}

func (svc *Service) Linker() *Linker { return svc.linker }

// ---------------------------------------------------------------------
// Classes

// CreateClass persists a new Class and links the given educators to it.
func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (ClassView, error) {
	if err := svc.repo.CheckCodeUniqueness(ctx, nc.Code, 0); err != nil {
		return ClassView{}, err
	}
	edus, err := svc.repo.GetEducatorsByID(ctx, nc.EducatorIDs)
	if err != nil {
		return ClassView{}, err
	}

	class := Class{
		Name:        nc.Name,
		Code:        nc.Code,
		Description: nc.Description,
	}
	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if class, err = svc.repo.CreateClass(ctx, class, exec); err != nil {
			return err
		}
		for _, edu := range edus {
			if err = svc.linker.LinkClassEducator(ctx, class.ID, edu.ID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ClassView{}, err
	}
	return svc.classView(ctx, class)
}

func (svc *Service) GetClass(ctx context.Context, id int) (ClassView, error) {
	class, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return ClassView{}, err
	}
	return svc.classView(ctx, class)
}

func (svc *Service) ListClasses(ctx context.Context, pg core.Pagination) ([]ClassView, int, error) {
	classes, total, err := svc.repo.QueryClasses(ctx, pg)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ClassView, 0, len(classes))
	for _, class := range classes {
		view, err := svc.classView(ctx, class)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// UpdateClass modifies a Class and replaces its educator set with the
// given one.
func (svc *Service) UpdateClass(ctx context.Context, id int, uc UpdateClass) (ClassView, error) {
	class, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return ClassView{}, err
	}
	if err = svc.repo.CheckCodeUniqueness(ctx, uc.Code, id); err != nil {
		return ClassView{}, err
	}
	edus, err := svc.repo.GetEducatorsByID(ctx, uc.EducatorIDs)
	if err != nil {
		return ClassView{}, err
	}
	current, err := svc.linker.EducatorIDsByClass(ctx, id)
	if err != nil {
		return ClassView{}, err
	}
	toAdd, toRemove := diffIDs(current, educatorIDs(edus))

	class.Name = uc.Name
	class.Code = uc.Code
	class.Description = uc.Description

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if class, err = svc.repo.UpdateClass(ctx, class, exec); err != nil {
			return err
		}
		for _, eduID := range toAdd {
			if err = svc.linker.LinkClassEducator(ctx, id, eduID, exec); err != nil {
				return err
			}
		}
		for _, eduID := range toRemove {
			if err = svc.linker.UnlinkClassEducator(ctx, id, eduID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ClassView{}, err
	}
	return svc.classView(ctx, class)
}

// DeleteClass removes a Class along with the students it owns and their
// credential profiles. Educators survive; only their teaching edges to
// this class are removed.
func (svc *Service) DeleteClass(ctx context.Context, id int) error {
	if _, err := svc.repo.GetClassByID(ctx, id); err != nil {
		return err
	}
	stdIDs, err := svc.linker.StudentIDsByClass(ctx, id)
	if err != nil {
		return err
	}
	students, err := svc.repo.GetStudentsByID(ctx, stdIDs)
	if err != nil {
		return err
	}

	userIDs := make([]int, 0, len(students))
	var images []string
	for _, std := range students {
		userIDs = append(userIDs, std.UserID)
		if std.ProfileImageURL != "" {
			images = append(images, std.ProfileImageURL)
		}
	}

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		for _, std := range students {
			if err := svc.repo.DeleteStudent(ctx, std.ID, exec); err != nil {
				return err
			}
		}
		if len(userIDs) > 0 {
			if err := svc.users.Delete(ctx, userIDs, exec); err != nil {
				return err
			}
		}
		return svc.repo.DeleteClass(ctx, id, exec)
	})
	if err != nil {
		return err
	}

	for _, img := range images {
		svc.files.Delete(img) // best effort
	}
	return nil
}

// ---------------------------------------------------------------------
// Educators

// CreateEducator provisions a credential profile and persists a new
// Educator, linking the given classes and subject.
func (svc *Service) CreateEducator(ctx context.Context, ne NewEducator) (EducatorView, error) {
	classes, err := svc.repo.GetClassesByID(ctx, ne.ClassIDs)
	if err != nil {
		return EducatorView{}, err
	}
	if ne.SubjectID != nil {
		if _, err = svc.repo.GetSubjectByID(ctx, *ne.SubjectID); err != nil {
			return EducatorView{}, err
		}
	}

	var usr user.User
	edu := Educator{
		FirstName:       ne.FirstName,
		LastName:        ne.LastName,
		DateOfBirth:     ne.DateOfBirth,
		Gender:          ne.Gender,
		Phone:           ne.Phone,
		AddressLine1:    ne.AddressLine1,
		City:            ne.City,
		State:           ne.State,
		Country:         ne.Country,
		Qualification:   ne.Qualification,
		ExperienceYears: ne.ExperienceYears,
		HireDate:        ne.HireDate,
		ProfileImageURL: ne.ProfileImageURL,
		SubjectID:       ne.SubjectID,
	}
	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		nu := user.NewUser{Username: ne.Username, Email: ne.Email, Password: ne.Password, Role: user.RoleEducator}
		var err error
		if usr, err = svc.users.Create(ctx, nu, exec); err != nil {
			return err
		}
		edu.UserID = usr.ID
		if edu, err = svc.repo.CreateEducator(ctx, edu, exec); err != nil {
			return err
		}
		for _, class := range classes {
			if err = svc.linker.LinkClassEducator(ctx, class.ID, edu.ID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return EducatorView{}, err
	}

	svc.sendWelcomeEmail(usr)
	return svc.educatorView(ctx, edu, usr)
}

func (svc *Service) GetEducator(ctx context.Context, id int) (EducatorView, error) {
	edu, err := svc.repo.GetEducatorByID(ctx, id)
	if err != nil {
		return EducatorView{}, err
	}
	usr, err := svc.users.GetByID(ctx, edu.UserID)
	if err != nil {
		return EducatorView{}, err
	}
	return svc.educatorView(ctx, edu, usr)
}

// GetEducatorByUserID resolves the Educator profile behind a signed-in
// account.
func (svc *Service) GetEducatorByUserID(ctx context.Context, userID int) (EducatorView, error) {
	edu, err := svc.repo.GetEducatorByUserID(ctx, userID)
	if err != nil {
		return EducatorView{}, err
	}
	usr, err := svc.users.GetByID(ctx, edu.UserID)
	if err != nil {
		return EducatorView{}, err
	}
	return svc.educatorView(ctx, edu, usr)
}

func (svc *Service) ListEducators(ctx context.Context, pg core.Pagination) ([]EducatorView, int, error) {
	edus, total, err := svc.repo.QueryEducators(ctx, pg)
	if err != nil {
		return nil, 0, err
	}

	views := make([]EducatorView, 0, len(edus))
	for _, edu := range edus {
		usr, err := svc.users.GetByID(ctx, edu.UserID)
		if err != nil {
			return nil, 0, err
		}
		view, err := svc.educatorView(ctx, edu, usr)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// UpdateEducator modifies an Educator and its credential profile. A nil
// ClassIDs leaves class edges untouched. The subject binding is replaced
// outright with the given SubjectID, nil clearing it.
func (svc *Service) UpdateEducator(ctx context.Context, id int, ue UpdateEducator) (EducatorView, error) {
	edu, err := svc.repo.GetEducatorByID(ctx, id)
	if err != nil {
		return EducatorView{}, err
	}
	usr, err := svc.users.GetByID(ctx, edu.UserID)
	if err != nil {
		return EducatorView{}, err
	}
	if ue.SubjectID != nil {
		if _, err = svc.repo.GetSubjectByID(ctx, *ue.SubjectID); err != nil {
			return EducatorView{}, err
		}
	}

	var toAdd, toRemove []int
	if ue.ClassIDs != nil {
		classes, err := svc.repo.GetClassesByID(ctx, ue.ClassIDs)
		if err != nil {
			return EducatorView{}, err
		}
		current, err := svc.linker.ClassIDsByEducator(ctx, id)
		if err != nil {
			return EducatorView{}, err
		}
		toAdd, toRemove = diffIDs(current, classIDs(classes))
	}

	oldImage := edu.ProfileImageURL
	edu.FirstName = ue.FirstName
	edu.LastName = ue.LastName
	edu.DateOfBirth = ue.DateOfBirth
	edu.Gender = ue.Gender
	edu.Phone = ue.Phone
	edu.AddressLine1 = ue.AddressLine1
	edu.City = ue.City
	edu.State = ue.State
	edu.Country = ue.Country
	edu.Qualification = ue.Qualification
	edu.ExperienceYears = ue.ExperienceYears
	edu.HireDate = ue.HireDate
	// an empty incoming URL keeps the current image
	if ue.ProfileImageURL != "" {
		edu.ProfileImageURL = ue.ProfileImageURL
	}
	edu.SubjectID = ue.SubjectID

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if usr, err = svc.users.Update(ctx, usr, ue.Username, ue.Email, ue.Password, exec); err != nil {
			return err
		}
		if edu, err = svc.repo.UpdateEducator(ctx, edu, exec); err != nil {
			return err
		}
		for _, classID := range toAdd {
			if err = svc.linker.LinkClassEducator(ctx, classID, id, exec); err != nil {
				return err
			}
		}
		for _, classID := range toRemove {
			if err = svc.linker.UnlinkClassEducator(ctx, classID, id, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return EducatorView{}, err
	}

	if oldImage != "" && oldImage != edu.ProfileImageURL {
		svc.files.Delete(oldImage) // best effort
	}
	return svc.educatorView(ctx, edu, usr)
}

// DeleteEducator removes an Educator along with its credential profile
// and every edge that references it.
func (svc *Service) DeleteEducator(ctx context.Context, id int) error {
	edu, err := svc.repo.GetEducatorByID(ctx, id)
	if err != nil {
		return err
	}

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		if err := svc.repo.DeleteEducator(ctx, id, exec); err != nil {
			return err
		}
		return svc.users.Delete(ctx, []int{edu.UserID}, exec)
	})
	if err != nil {
		return err
	}

	if edu.ProfileImageURL != "" {
		svc.files.Delete(edu.ProfileImageURL) // best effort
	}
	return nil
}

// ClassesForEducator lists the classes an educator teaches.
func (svc *Service) ClassesForEducator(ctx context.Context, educatorID int) ([]Class, error) {
	if _, err := svc.repo.GetEducatorByID(ctx, educatorID); err != nil {
		return nil, err
	}
	ids, err := svc.linker.ClassIDsByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	return svc.repo.GetClassesByID(ctx, ids)
}

// ---------------------------------------------------------------------
// Students

// CreateStudent provisions a credential profile and persists a new
// Student, linking the given class and subjects. An empty roll number is
// auto-generated.
func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (StudentView, error) {
	if ns.RollNumber == "" {
		ns.RollNumber = strings.ToLower(core.RandomCode(rollNumberLength))
	} else if err := svc.repo.CheckRollNumberUniqueness(ctx, ns.RollNumber, 0); err != nil {
		return StudentView{}, err
	}
	if ns.ClassID != nil {
		if _, err := svc.repo.GetClassByID(ctx, *ns.ClassID); err != nil {
			return StudentView{}, err
		}
	}
	subjects, err := svc.repo.GetSubjectsByID(ctx, ns.SubjectIDs)
	if err != nil {
		return StudentView{}, err
	}

	var usr user.User
	std := Student{
		FirstName:       ns.FirstName,
		LastName:        ns.LastName,
		DateOfBirth:     ns.DateOfBirth,
		Gender:          ns.Gender,
		Phone:           ns.Phone,
		AddressLine1:    ns.AddressLine1,
		City:            ns.City,
		State:           ns.State,
		Country:         ns.Country,
		GuardianName:    ns.GuardianName,
		GuardianPhone:   ns.GuardianPhone,
		EnrollmentDate:  ns.EnrollmentDate,
		Grade:           ns.Grade,
		RollNumber:      ns.RollNumber,
		ProfileImageURL: ns.ProfileImageURL,
		ClassID:         ns.ClassID,
	}
	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		nu := user.NewUser{Username: ns.Username, Email: ns.Email, Password: ns.Password, Role: user.RoleStudent}
		var err error
		if usr, err = svc.users.Create(ctx, nu, exec); err != nil {
			return err
		}
		std.UserID = usr.ID
		if std, err = svc.repo.CreateStudent(ctx, std, exec); err != nil {
			return err
		}
		for _, sub := range subjects {
			if err = svc.linker.LinkStudentSubject(ctx, std.ID, sub.ID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return StudentView{}, err
	}

	svc.sendWelcomeEmail(usr)
	return svc.studentView(ctx, std, usr)
}

func (svc *Service) GetStudent(ctx context.Context, id int) (StudentView, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return StudentView{}, err
	}
	usr, err := svc.users.GetByID(ctx, std.UserID)
	if err != nil {
		return StudentView{}, err
	}
	return svc.studentView(ctx, std, usr)
}

// GetStudentByUserID resolves the Student profile behind a signed-in
// account.
func (svc *Service) GetStudentByUserID(ctx context.Context, userID int) (StudentView, error) {
	std, err := svc.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return StudentView{}, err
	}
	usr, err := svc.users.GetByID(ctx, std.UserID)
	if err != nil {
		return StudentView{}, err
	}
	return svc.studentView(ctx, std, usr)
}

func (svc *Service) ListStudents(ctx context.Context, pg core.Pagination) ([]StudentView, int, error) {
	stds, total, err := svc.repo.QueryStudents(ctx, pg)
	if err != nil {
		return nil, 0, err
	}

	views := make([]StudentView, 0, len(stds))
	for _, std := range stds {
		usr, err := svc.users.GetByID(ctx, std.UserID)
		if err != nil {
			return nil, 0, err
		}
		view, err := svc.studentView(ctx, std, usr)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ListStudentsInClass lists the students a class owns.
func (svc *Service) ListStudentsInClass(ctx context.Context, classID int) ([]StudentView, error) {
	if _, err := svc.repo.GetClassByID(ctx, classID); err != nil {
		return nil, err
	}
	ids, err := svc.linker.StudentIDsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	stds, err := svc.repo.GetStudentsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]StudentView, 0, len(stds))
	for _, std := range stds {
		usr, err := svc.users.GetByID(ctx, std.UserID)
		if err != nil {
			return nil, err
		}
		view, err := svc.studentView(ctx, std, usr)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateStudent modifies a Student and its credential profile. A nil
// SubjectIDs leaves subject edges untouched. The class membership is
// replaced outright with the given ClassID, nil clearing it.
func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (StudentView, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return StudentView{}, err
	}
	usr, err := svc.users.GetByID(ctx, std.UserID)
	if err != nil {
		return StudentView{}, err
	}
	if us.RollNumber != "" && us.RollNumber != std.RollNumber {
		if err = svc.repo.CheckRollNumberUniqueness(ctx, us.RollNumber, id); err != nil {
			return StudentView{}, err
		}
		std.RollNumber = us.RollNumber
	}
	if us.ClassID != nil {
		if _, err = svc.repo.GetClassByID(ctx, *us.ClassID); err != nil {
			return StudentView{}, err
		}
	}

	var toAdd, toRemove []int
	if us.SubjectIDs != nil {
		subjects, err := svc.repo.GetSubjectsByID(ctx, us.SubjectIDs)
		if err != nil {
			return StudentView{}, err
		}
		current, err := svc.linker.SubjectIDsByStudent(ctx, id)
		if err != nil {
			return StudentView{}, err
		}
		toAdd, toRemove = diffIDs(current, subjectIDs(subjects))
	}

	oldImage := std.ProfileImageURL
	std.FirstName = us.FirstName
	std.LastName = us.LastName
	std.DateOfBirth = us.DateOfBirth
	std.Gender = us.Gender
	std.Phone = us.Phone
	std.AddressLine1 = us.AddressLine1
	std.City = us.City
	std.State = us.State
	std.Country = us.Country
	std.GuardianName = us.GuardianName
	std.GuardianPhone = us.GuardianPhone
	std.EnrollmentDate = us.EnrollmentDate
	std.Grade = us.Grade
	// an empty incoming URL keeps the current image
	if us.ProfileImageURL != "" {
		std.ProfileImageURL = us.ProfileImageURL
	}
	std.ClassID = us.ClassID

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if usr, err = svc.users.Update(ctx, usr, us.Username, us.Email, us.Password, exec); err != nil {
			return err
		}
		if std, err = svc.repo.UpdateStudent(ctx, std, exec); err != nil {
			return err
		}
		for _, subID := range toAdd {
			if err = svc.linker.LinkStudentSubject(ctx, id, subID, exec); err != nil {
				return err
			}
		}
		for _, subID := range toRemove {
			if err = svc.linker.UnlinkStudentSubject(ctx, id, subID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return StudentView{}, err
	}

	if oldImage != "" && oldImage != std.ProfileImageURL {
		svc.files.Delete(oldImage) // best effort
	}
	return svc.studentView(ctx, std, usr)
}

// DeleteStudent removes a Student along with its credential profile and
// every edge and feedback record that references it.
func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		if err := svc.repo.DeleteStudent(ctx, id, exec); err != nil {
			return err
		}
		return svc.users.Delete(ctx, []int{std.UserID}, exec)
	})
	if err != nil {
		return err
	}

	if std.ProfileImageURL != "" {
		svc.files.Delete(std.ProfileImageURL) // best effort
	}
	return nil
}

// ---------------------------------------------------------------------
// Subjects

// CreateSubject persists a new Subject, binding the given educators to
// it and enrolling the given students. An educator already bound to
// another subject is a conflict.
func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (SubjectView, error) {
	if err := svc.repo.CheckNameUniqueness(ctx, ns.Name, 0); err != nil {
		return SubjectView{}, err
	}
	edus, err := svc.repo.GetEducatorsByID(ctx, ns.EducatorIDs)
	if err != nil {
		return SubjectView{}, err
	}
	stds, err := svc.repo.GetStudentsByID(ctx, ns.StudentIDs)
	if err != nil {
		return SubjectView{}, err
	}
	for _, edu := range edus {
		if edu.SubjectID != nil {
			if err = svc.educatorTakenErr(ctx, edu); err != nil {
				return SubjectView{}, err
			}
		}
	}

	sub := Subject{Name: ns.Name, Description: ns.Description}
	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if sub, err = svc.repo.CreateSubject(ctx, sub, exec); err != nil {
			return err
		}
		for _, edu := range edus {
			if err = svc.linker.AssignEducatorSubject(ctx, edu.ID, &sub.ID, exec); err != nil {
				return err
			}
		}
		for _, std := range stds {
			if err = svc.linker.LinkStudentSubject(ctx, std.ID, sub.ID, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SubjectView{}, err
	}
	return svc.subjectView(ctx, sub)
}

func (svc *Service) GetSubject(ctx context.Context, id int) (SubjectView, error) {
	sub, err := svc.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return SubjectView{}, err
	}
	return svc.subjectView(ctx, sub)
}

func (svc *Service) ListSubjects(ctx context.Context, pg core.Pagination) ([]SubjectView, int, error) {
	subs, total, err := svc.repo.QuerySubjects(ctx, pg)
	if err != nil {
		return nil, 0, err
	}

	views := make([]SubjectView, 0, len(subs))
	for _, sub := range subs {
		view, err := svc.subjectView(ctx, sub)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// UpdateSubject modifies a Subject and replaces its educator and student
// sets with the given ones. A newly added educator already bound to a
// different subject is a conflict.
func (svc *Service) UpdateSubject(ctx context.Context, id int, us UpdateSubject) (SubjectView, error) {
	sub, err := svc.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return SubjectView{}, err
	}
	if err = svc.repo.CheckNameUniqueness(ctx, us.Name, id); err != nil {
		return SubjectView{}, err
	}
	edus, err := svc.repo.GetEducatorsByID(ctx, us.EducatorIDs)
	if err != nil {
		return SubjectView{}, err
	}
	stds, err := svc.repo.GetStudentsByID(ctx, us.StudentIDs)
	if err != nil {
		return SubjectView{}, err
	}

	currentEdus, err := svc.linker.EducatorIDsBySubject(ctx, id)
	if err != nil {
		return SubjectView{}, err
	}
	eduToAdd, eduToRemove := diffIDs(currentEdus, educatorIDs(edus))
	for _, edu := range edus {
		if !containsID(eduToAdd, edu.ID) {
			continue
		}
		if edu.SubjectID != nil && *edu.SubjectID != id {
			if err = svc.educatorTakenErr(ctx, edu); err != nil {
				return SubjectView{}, err
			}
		}
	}

	currentStds, err := svc.linker.StudentIDsBySubject(ctx, id)
	if err != nil {
		return SubjectView{}, err
	}
	stdToAdd, stdToRemove := diffIDs(currentStds, studentIDs(stds))

	sub.Name = us.Name
	sub.Description = us.Description

	err = svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		var err error
		if sub, err = svc.repo.UpdateSubject(ctx, sub, exec); err != nil {
			return err
		}
		for _, eduID := range eduToAdd {
			if err = svc.linker.AssignEducatorSubject(ctx, eduID, &sub.ID, exec); err != nil {
				return err
			}
		}
		for _, eduID := range eduToRemove {
			if err = svc.linker.AssignEducatorSubject(ctx, eduID, nil, exec); err != nil {
				return err
			}
		}
		for _, stdID := range stdToAdd {
			if err = svc.linker.LinkStudentSubject(ctx, stdID, id, exec); err != nil {
				return err
			}
		}
		for _, stdID := range stdToRemove {
			if err = svc.linker.UnlinkStudentSubject(ctx, stdID, id, exec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SubjectView{}, err
	}
	return svc.subjectView(ctx, sub)
}

// DeleteSubject removes a Subject, unbinding its educators and
// unenrolling its students. Neither educators nor students are deleted.
func (svc *Service) DeleteSubject(ctx context.Context, id int) error {
	if _, err := svc.repo.GetSubjectByID(ctx, id); err != nil {
		return err
	}
	return svc.db.InTx(ctx, func(exec core.DBExecutor) error {
		return svc.repo.DeleteSubject(ctx, id, exec)
	})
}

// ---------------------------------------------------------------------
// Counts

func (svc *Service) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error
	if counts.Classes, err = svc.repo.CountClasses(ctx); err != nil {
		return Counts{}, err
	}
	if counts.Educators, err = svc.repo.CountEducators(ctx); err != nil {
		return Counts{}, err
	}
	if counts.Students, err = svc.repo.CountStudents(ctx); err != nil {
		return Counts{}, err
	}
	if counts.Subjects, err = svc.repo.CountSubjects(ctx); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// ---------------------------------------------------------------------
// views & helpers

func (svc *Service) classView(ctx context.Context, class Class) (ClassView, error) {
	eduIDs, err := svc.linker.EducatorIDsByClass(ctx, class.ID)
	if err != nil {
		return ClassView{}, err
	}
	stdIDs, err := svc.linker.StudentIDsByClass(ctx, class.ID)
	if err != nil {
		return ClassView{}, err
	}
	edus, err := svc.educatorMembers(ctx, eduIDs)
	if err != nil {
		return ClassView{}, err
	}
	stds, err := svc.studentMembers(ctx, stdIDs)
	if err != nil {
		return ClassView{}, err
	}
	return ClassView{Class: class, Educators: edus, Students: stds}, nil
}

func (svc *Service) educatorView(ctx context.Context, edu Educator, usr user.User) (EducatorView, error) {
	ids, err := svc.linker.ClassIDsByEducator(ctx, edu.ID)
	if err != nil {
		return EducatorView{}, err
	}
	view := EducatorView{
		Educator: edu,
		Username: usr.Username,
		Email:    usr.Email,
		Role:     usr.Role,
		ClassIDs: ids,
	}
	if edu.SubjectID != nil {
		sub, err := svc.repo.GetSubjectByID(ctx, *edu.SubjectID)
		if err != nil {
			return EducatorView{}, err
		}
		view.SubjectName = sub.Name
	}
	return view, nil
}

func (svc *Service) studentView(ctx context.Context, std Student, usr user.User) (StudentView, error) {
	ids, err := svc.linker.SubjectIDsByStudent(ctx, std.ID)
	if err != nil {
		return StudentView{}, err
	}
	return StudentView{
		Student:    std,
		Username:   usr.Username,
		Email:      usr.Email,
		Role:       usr.Role,
		SubjectIDs: ids,
	}, nil
}

func (svc *Service) subjectView(ctx context.Context, sub Subject) (SubjectView, error) {
	eduIDs, err := svc.linker.EducatorIDsBySubject(ctx, sub.ID)
	if err != nil {
		return SubjectView{}, err
	}
	stdIDs, err := svc.linker.StudentIDsBySubject(ctx, sub.ID)
	if err != nil {
		return SubjectView{}, err
	}
	edus, err := svc.educatorMembers(ctx, eduIDs)
	if err != nil {
		return SubjectView{}, err
	}
	return SubjectView{
		Subject:     sub,
		Educators:   edus,
		EducatorIDs: eduIDs,
		StudentIDs:  stdIDs,
	}, nil
}

func (svc *Service) educatorMembers(ctx context.Context, ids []int) ([]MemberInfo, error) {
	edus, err := svc.repo.GetEducatorsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(edus))
	for _, edu := range edus {
		usr, err := svc.users.GetByID(ctx, edu.UserID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, MemberInfo{ID: edu.ID, FirstName: edu.FirstName, LastName: edu.LastName, Email: usr.Email})
	}
	sortMembers(infos)
	return infos, nil
}

func (svc *Service) studentMembers(ctx context.Context, ids []int) ([]MemberInfo, error) {
	stds, err := svc.repo.GetStudentsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(stds))
	for _, std := range stds {
		usr, err := svc.users.GetByID(ctx, std.UserID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, MemberInfo{ID: std.ID, FirstName: std.FirstName, LastName: std.LastName, Email: usr.Email})
	}
	sortMembers(infos)
	return infos, nil
}

// educatorTakenErr reports a conflict naming the subject an educator is
// currently bound to.
func (svc *Service) educatorTakenErr(ctx context.Context, edu Educator) error {
	taken, err := svc.repo.GetSubjectByID(ctx, *edu.SubjectID)
	if err != nil {
		return err
	}
	return core.NewConflictError("educator_ids", fmt.Sprintf(
		"educator %s %s already teaches %s", edu.FirstName, edu.LastName, taken.Name))
}

func (svc *Service) sendWelcomeEmail(usr user.User) {
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: usr.Email}},
		Subject: fmt.Sprintf("Welcome to %s", svc.conf.AppName),
		Body: fmt.Sprintf(
			"Dear %s,\n\nYour %s account has been created. "+
				"You can now sign in at %s with your username.\n\nRegards,\nThe %s Team",
			usr.Username, svc.conf.AppName, svc.conf.FrontendBaseURL, svc.conf.AppName),
	})
}

func sortMembers(infos []MemberInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].LastName != infos[j].LastName {
			return infos[i].LastName < infos[j].LastName
		}
		return infos[i].FirstName < infos[j].FirstName
	})
}

// diffIDs splits a desired ID set against the current one into the IDs
// to add and the IDs to remove.
func diffIDs(current, desired []int) (toAdd, toRemove []int) {
	cur := make(map[int]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	des := make(map[int]bool, len(desired))
	for _, id := range desired {
		des[id] = true
		if !cur[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !des[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func classIDs(classes []Class) []int {
	ids := make([]int, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
	}
	return ids
}

func educatorIDs(edus []Educator) []int {
	ids := make([]int, len(edus))
	for i, e := range edus {
		ids[i] = e.ID
	}
	return ids
}

func studentIDs(stds []Student) []int {
	ids := make([]int, len(stds))
	for i, s := range stds {
		ids[i] = s.ID
	}
	return ids
}

func subjectIDs(subs []Subject) []int {
	ids := make([]int, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}
	return ids
}
