package main

import (
	"context"

	"github.com/pkg/errors"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()

	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	if _, err = cli.usrSvc.Update(ctx, usr, usr.Username, usr.Email, pwd); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return nil
}
