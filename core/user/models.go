package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/backend/core"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleEducator = "educator"
	RoleStudent  = "student"
)

var AllRoles = []string{RoleAdmin, RoleEducator, RoleStudent}

// User is the credential profile paired with a domain profile (Educator,
// Student) or standing alone (admin).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsEducator() bool { return u.Role == RoleEducator }
func (u *User) IsStudent() bool  { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User. The role is
// fixed by the caller (entity kind), never taken from client input.
type NewUser struct {
	Username string `json:"username" validate:"required,min=4,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"-"`
}

func (nu *NewUser) Clean() {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
}

func (nu *NewUser) Validate() error {
	nu.Clean()
	return core.Validate.Struct(nu)
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return core.Validate.Struct(c)
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

func (fp *ForgotPassword) Validate() error {
	fp.Email = core.CleanString(fp.Email, true /* lower */)
	return core.Validate.Struct(fp)
}

type ResetPassword struct {
	Token           string `json:"token" validate:"required"`
	UID             string `json:"uid" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (rp *ResetPassword) Validate() error {
	return core.Validate.Struct(rp)
}
