package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/campushq/backend/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("user not found")
	ErrUsernameExists = core.NewConflictError("username", "a user with this username already exists")
	ErrEmailExists    = core.NewConflictError("email", "a user with this email already exists")
)

type (
	Repository interface {
		// CheckUsernameUniqueness returns ErrUsernameExists or
		// ErrEmailExists when another user (not in excludedUsers) holds
		// the given username or email.
		CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []User, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (User, error)
		GetUserByUsername(ctx context.Context, username string, exec ...core.DBExecutor) (User, error)
		GetUserByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (User, error)
		GetUserByUsernameOrEmail(ctx context.Context, username string, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUsersByID(ctx context.Context, ids []int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo Repository
		mail core.EmailService
		conf *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mail: mailSvc, conf: conf}
}

// CheckUniqueness reports a Conflict naming the offending field when the
// username or email is already taken by a user not in exclUsers.
func (svc *Service) CheckUniqueness(ctx context.Context, uname, email string, exclUsers []User, exec ...core.DBExecutor) error {
	return svc.repo.CheckUsernameUniqueness(ctx, uname, email, exclUsers, exec...)
}

// Create checks username/email uniqueness, then persists a new User.
func (svc *Service) Create(ctx context.Context, nu NewUser, exec ...core.DBExecutor) (User, error) {
	if err := svc.CheckUniqueness(ctx, nu.Username, nu.Email, nil, exec...); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Username:  nu.Username,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (User, error) {
	return svc.repo.GetUserByID(ctx, id, exec...)
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string, exec ...core.DBExecutor) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(ctx, core.CleanString(uname, true /* lower */), exec...)
}

// Update persists new credentials for an existing User after checking
// that the username/email are not taken by anyone else.
func (svc *Service) Update(ctx context.Context, usr User, username, email, password string, exec ...core.DBExecutor) (User, error) {
	username = core.CleanString(username, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	if err := svc.CheckUniqueness(ctx, username, email, []User{usr}, exec...); err != nil {
		return User{}, err
	}

	usr.Username = username
	usr.Email = email
	usr.UpdatedAt = time.Now().UTC()
	if password != "" {
		if err := usr.SetPassword(password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(ctx, usr, exec...)
}

func (svc *Service) Delete(ctx context.Context, ids []int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteUsersByID(ctx, ids, exec...)
}

// Authenticate resolves a username or email and verifies the password.
// Both failure modes collapse into ErrNotFound so callers cannot probe
// which of the two was wrong.
func (svc *Service) Authenticate(ctx context.Context, uname, password string) (User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return User{}, ErrNotFound
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

// RequestPasswordReset emails a reset link to the account with the given
// email. The token is stateless (HMAC over the user's current password
// hash) and expires with conf.PasswordResetTimeoutDelta.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}

	token, err := svc.MakeToken(usr)
	if err != nil {
		return err
	}
	resetLink := fmt.Sprintf("%s/reset-password?uid=%s&token=%s", svc.conf.FrontendBaseURL, EncodeUID(usr), token)

	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: usr.Email}},
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"Dear %s,\n\nYou have requested to reset your password. "+
				"Please follow this link to reset it:\n%s\n\n"+
				"If you did not request this, please ignore this email.\n\nRegards,\nThe %s Team",
			usr.Username, resetLink, svc.conf.AppName),
	})
	return nil
}

// ResetPassword verifies a reset token and sets the new password. A used
// token is implicitly invalidated because the password hash it was
// derived from changes.
func (svc *Service) ResetPassword(ctx context.Context, rp ResetPassword) (User, error) {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return User{}, errInvalidToken
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err = svc.verifyToken(usr, rp.Token); err != nil {
		return User{}, err
	}

	if err = usr.SetPassword(rp.Password); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}
