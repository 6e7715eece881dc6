package roster

import (
	"time"

	"github.com/campushq/backend/core"
)

// Class owns a set of Students and is taught by a set of Educators.
type Class struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Educator teaches at most one Subject and any number of Classes. It is
// paired 1:1 with a credential profile, created and deleted together.
type Educator struct {
	ID              int       `json:"id"`
	UserID          int       `json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	Qualification   string    `json:"qualification"`
	ExperienceYears int       `json:"experience_years"`
	HireDate        time.Time `json:"hire_date"`
	ProfileImageURL string    `json:"profile_image_url"`
	SubjectID       *int      `json:"subject_id"`
}

// Student is owned by at most one Class and enrolls in any number of
// Subjects. It is paired 1:1 with a credential profile.
type Student struct {
	ID              int       `json:"id"`
	UserID          int       `json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	GuardianName    string    `json:"guardian_name"`
	GuardianPhone   string    `json:"guardian_phone"`
	EnrollmentDate  time.Time `json:"enrollment_date"`
	Grade           string    `json:"grade"`
	RollNumber      string    `json:"roll_number"`
	ProfileImageURL string    `json:"profile_image_url"`
	ClassID         *int      `json:"class_id"`
}

// Subject is taught by a set of Educators (each bound to at most one
// Subject) and enrolls a set of Students.
type Subject struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MemberInfo is a short reference to an Educator or Student in a view.
type MemberInfo struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ClassView struct {
	Class
	Educators []MemberInfo `json:"educators"`
	Students  []MemberInfo `json:"students"`
}

type EducatorView struct {
	Educator
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ClassIDs    []int  `json:"class_ids"`
	SubjectName string `json:"subject_name,omitempty"`
}

type StudentView struct {
	Student
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	SubjectIDs []int  `json:"subject_ids"`
}

type SubjectView struct {
	Subject
	Educators   []MemberInfo `json:"educators"`
	EducatorIDs []int        `json:"educator_ids"`
	StudentIDs  []int        `json:"student_ids"`
}

// Counts reports current entity counts per type.
type Counts struct {
	Classes   int `json:"classes"`
	Educators int `json:"educators"`
	Students  int `json:"students"`
	Subjects  int `json:"subjects"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	EducatorIDs []int  `json:"educator_ids"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code)
	nc.Description = core.CleanString(nc.Description)
	return core.Validate.Struct(nc)
}

// UpdateClass defines what may be provided to modify an existing Class.
// A nil EducatorIDs clears the educator set, matching the create/replace
// semantics of the admin UI.
type UpdateClass struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	EducatorIDs []int  `json:"educator_ids"`
}

func (uc *UpdateClass) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	uc.Code = core.CleanString(uc.Code)
	uc.Description = core.CleanString(uc.Description)
	return core.Validate.Struct(uc)
}

// NewEducator contains information needed to create a new Educator along
// with its credential profile.
type NewEducator struct {
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	Qualification   string    `json:"qualification"`
	ExperienceYears int       `json:"experience_years" validate:"min=0"`
	HireDate        time.Time `json:"hire_date"`
	ProfileImageURL string    `json:"profile_image_url"`

	ClassIDs  []int `json:"class_ids"`
	SubjectID *int  `json:"subject_id"`
}

func (ne *NewEducator) Validate() error {
	ne.Username = core.CleanString(ne.Username, true /* lower */)
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	ne.FirstName = core.CleanString(ne.FirstName)
	ne.LastName = core.CleanString(ne.LastName)
	return core.Validate.Struct(ne)
}

// UpdateEducator defines what may be provided to modify an existing
// Educator. A nil ClassIDs means "no change"; an explicitly empty set
// clears every class edge. A nil SubjectID unassigns the subject.
type UpdateEducator struct {
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`

	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	Qualification   string    `json:"qualification"`
	ExperienceYears int       `json:"experience_years" validate:"min=0"`
	HireDate        time.Time `json:"hire_date"`
	ProfileImageURL string    `json:"profile_image_url"`

	ClassIDs  []int `json:"class_ids"`
	SubjectID *int  `json:"subject_id"`
}

func (ue *UpdateEducator) Validate() error {
	ue.Username = core.CleanString(ue.Username, true /* lower */)
	ue.Email = core.CleanString(ue.Email, true /* lower */)
	ue.FirstName = core.CleanString(ue.FirstName)
	ue.LastName = core.CleanString(ue.LastName)
	return core.Validate.Struct(ue)
}

// NewStudent contains information needed to create a new Student along
// with its credential profile. An empty RollNumber is auto-generated.
type NewStudent struct {
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	GuardianName    string    `json:"guardian_name"`
	GuardianPhone   string    `json:"guardian_phone"`
	EnrollmentDate  time.Time `json:"enrollment_date"`
	Grade           string    `json:"grade"`
	RollNumber      string    `json:"roll_number" validate:"omitempty,rollnum"`
	ProfileImageURL string    `json:"profile_image_url"`

	ClassID    *int  `json:"class_id"`
	SubjectIDs []int `json:"subject_ids"`
}

func (ns *NewStudent) Validate() error {
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.RollNumber = core.CleanString(ns.RollNumber, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what may be provided to modify an existing
// Student. A nil SubjectIDs means "no change"; an explicitly empty set
// clears every subject edge. A nil ClassID unassigns the owning class.
type UpdateStudent struct {
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`

	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	GuardianName    string    `json:"guardian_name"`
	GuardianPhone   string    `json:"guardian_phone"`
	EnrollmentDate  time.Time `json:"enrollment_date"`
	Grade           string    `json:"grade"`
	RollNumber      string    `json:"roll_number" validate:"omitempty,rollnum"`
	ProfileImageURL string    `json:"profile_image_url"`

	ClassID    *int  `json:"class_id"`
	SubjectIDs []int `json:"subject_ids"`
}

func (us *UpdateStudent) Validate() error {
	us.Username = core.CleanString(us.Username, true /* lower */)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	us.RollNumber = core.CleanString(us.RollNumber, true /* lower */)
	return core.Validate.Struct(us)
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	EducatorIDs []int  `json:"educator_ids"`
	StudentIDs  []int  `json:"student_ids"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Description = core.CleanString(ns.Description)
	return core.Validate.Struct(ns)
}

// UpdateSubject defines what may be provided to modify an existing
// Subject. Nil sets clear the corresponding edges, matching the
// create/replace semantics of the admin UI.
type UpdateSubject struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	EducatorIDs []int  `json:"educator_ids"`
	StudentIDs  []int  `json:"student_ids"`
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Description = core.CleanString(us.Description)
	return core.Validate.Struct(us)
}
