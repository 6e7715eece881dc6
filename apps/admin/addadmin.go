package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
)

type userService interface {
	GetByUsernameOrEmail(ctx context.Context, uname string, exec ...core.DBExecutor) (user.User, error)
	Create(ctx context.Context, nu user.NewUser, exec ...core.DBExecutor) (user.User, error)
	Update(ctx context.Context, usr user.User, username, email, password string, exec ...core.DBExecutor) (user.User, error)
}

// addAdmin creates a user with the admin role.
func (cli *commandLine) addAdmin(uname, email, pwd string) error {
	ctx := context.Background()

	nu := user.NewUser{
		Username: uname,
		Email:    email,
		Password: pwd,
		Role:     user.RoleAdmin,
	}
	if err := nu.Validate(); err != nil {
		return err
	}

	if _, err := cli.usrSvc.Create(ctx, nu); err != nil {
		return errors.Wrap(err, "creating admin user")
	}
	return nil
}
