package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	"github.com/campushq/backend/storage/database/inmem"
)

func setup(t *testing.T) *user.Service {
	t.Helper()
	conf := &core.Config{
		AppName:                   "Campus",
		SecretKey:                 []byte("secret"),
		FrontendBaseURL:           "http://localhost:5173",
		PasswordResetTimeoutDelta: 24 * time.Hour,
	}
	db := inmem.NewDB()
	svc := user.NewService(inmem.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
	t.Cleanup(emailsvc.ClearSentMessages)
	return svc
}

func createUser(t *testing.T, svc *user.Service, uname, email, pwd, role string) user.User {
	t.Helper()
	usr, err := svc.Create(context.Background(), user.NewUser{
		Username: uname, Email: email, Password: pwd, Role: role,
	})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	usr := createUser(t, svc, "jdoe", "jdoe@test.cd", "Str0ngPwd!", user.RoleAdmin)
	assert.NotZero(t, usr.ID)
	assert.Equal(t, user.RoleAdmin, usr.Role)
	assert.NoError(t, usr.CheckPassword("Str0ngPwd!"))
	assert.Error(t, usr.CheckPassword("wrong"))

	_, err := svc.Create(ctx, user.NewUser{Username: "jdoe", Email: "other@test.cd", Password: "Str0ngPwd!"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = svc.Create(ctx, user.NewUser{Username: "other", Email: "jdoe@test.cd", Password: "Str0ngPwd!"})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	usr := createUser(t, svc, "jdoe", "jdoe@test.cd", "Str0ngPwd!", user.RoleStudent)
	other := createUser(t, svc, "other", "other@test.cd", "Str0ngPwd!", user.RoleStudent)

	// keeping one's own username is not a conflict
	updated, err := svc.Update(ctx, usr, "jdoe", "jdoe@test.cd", "")
	assert.NoError(t, err)
	assert.Equal(t, "jdoe", updated.Username)
	// empty password leaves the current one in place
	assert.NoError(t, updated.CheckPassword("Str0ngPwd!"))

	// taking someone else's is
	_, err = svc.Update(ctx, usr, other.Username, usr.Email, "")
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	// password change
	updated, err = svc.Update(ctx, usr, usr.Username, usr.Email, "An0therPwd!")
	assert.NoError(t, err)
	assert.NoError(t, updated.CheckPassword("An0therPwd!"))
	assert.Error(t, updated.CheckPassword("Str0ngPwd!"))
}

func TestService_Authenticate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	createUser(t, svc, "jdoe", "jdoe@test.cd", "Str0ngPwd!", user.RoleEducator)

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{name: "by username", uname: "jdoe", pwd: "Str0ngPwd!"},
		{name: "by email", uname: "jdoe@test.cd", pwd: "Str0ngPwd!"},
		{name: "case insensitive", uname: "JDoe", pwd: "Str0ngPwd!"},
		{name: "wrong password", uname: "jdoe", pwd: "nope", wantErr: user.ErrNotFound},
		{name: "unknown user", uname: "ghost", pwd: "Str0ngPwd!", wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(ctx, tt.uname, tt.pwd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "jdoe", usr.Username)
		})
	}
}

func TestService_PasswordReset(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	usr := createUser(t, svc, "jdoe", "jdoe@test.cd", "Str0ngPwd!", user.RoleStudent)

	assert.NoError(t, svc.RequestPasswordReset(ctx, "jdoe@test.cd"))
	if assert.NotEmpty(t, emailsvc.SentMessages) {
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		assert.Equal(t, "Password Reset Request", msg.Subject)
		assert.Contains(t, msg.Body, "reset-password?uid=")
	}

	assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "ghost@test.cd"), user.ErrNotFound)

	token, err := svc.MakeToken(usr)
	assert.NoError(t, err)

	updated, err := svc.ResetPassword(ctx, user.ResetPassword{
		UID:             user.EncodeUID(usr),
		Token:           token,
		Password:        "N3wStr0ngPwd!",
		PasswordConfirm: "N3wStr0ngPwd!",
	})
	assert.NoError(t, err)
	assert.NoError(t, updated.CheckPassword("N3wStr0ngPwd!"))

	// the token died with the old password hash
	_, err = svc.ResetPassword(ctx, user.ResetPassword{
		UID:             user.EncodeUID(usr),
		Token:           token,
		Password:        "YetAn0ther!",
		PasswordConfirm: "YetAn0ther!",
	})
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	usr1 := createUser(t, svc, "one", "one@test.cd", "Str0ngPwd!", user.RoleStudent)
	usr2 := createUser(t, svc, "two", "two@test.cd", "Str0ngPwd!", user.RoleStudent)

	assert.NoError(t, svc.Delete(ctx, []int{usr1.ID, usr2.ID}))

	_, err := svc.GetByID(ctx, usr1.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = svc.GetByID(ctx, usr2.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
