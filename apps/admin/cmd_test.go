package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	"github.com/campushq/backend/storage/database/inmem"
)

func setup(t *testing.T) (*commandLine, *user.Service) {
	t.Helper()
	conf := &core.Config{
		AppName:                   "Campus",
		SecretKey:                 []byte("secret"),
		PasswordResetTimeoutDelta: 24 * time.Hour,
	}
	db := inmem.NewDB()
	usrSvc := user.NewService(inmem.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
	return &commandLine{conf: conf, usrSvc: usrSvc}, usrSvc
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli, usrSvc := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addadmin", "-username", "root"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, wantErr: errHelp},
		{name: "creates admin", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, pwd: "Str0ngPwd!"},
		{name: "duplicate username", args: []string{"addadmin", "-username", "root", "-email", "other@test.cd"}, pwd: "Str0ngPwd!", wantErr: user.ErrUsernameExists},
	}
	for _, tt := range tests {
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.pwd), nil }

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}

			usr, err := usrSvc.GetByUsernameOrEmail(context.Background(), "root")
			if err != nil {
				t.Fatalf("GetByUsernameOrEmail() failed: %v", err)
			}
			if !usr.IsAdmin() {
				t.Errorf("created user role = %s, want %s", usr.Role, user.RoleAdmin)
			}
			if err = usr.CheckPassword(tt.pwd); err != nil {
				t.Error("failed to set password")
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, usrSvc := setup(t)

	usr, err := usrSvc.Create(context.Background(), user.NewUser{
		Username: "awe", Email: "awe@test.cd", Password: "0ldPwd!!!", Role: user.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "awe"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "N3wPwd!!!", wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, pwd: "N3wPwd!!!"},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, pwd: "An0therPwd!"},
	}
	for _, tt := range tests {
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.pwd), nil }

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}

			refreshed, err := usrSvc.GetByID(context.Background(), usr.ID)
			if err != nil {
				t.Fatalf("GetByID() failed: %v", err)
			}
			if err = refreshed.CheckPassword(tt.pwd); err != nil {
				t.Error("failed to update new password")
			}
		})
	}
}
