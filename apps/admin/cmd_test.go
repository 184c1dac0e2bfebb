package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/trezcool/shule/core/user"
	sqlxrepos "github.com/trezcool/shule/storage/database/sqlx"
	testutil "github.com/trezcool/shule/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	db := testutil.OpenDB(testutil.NewConfig())
	t.Cleanup(func() { _ = db.Close() })
	testutil.ResetDB(t, db)
	usrRepo = sqlxrepos.NewUserRepository(db)

	return &commandLine{usrRepo: usrRepo}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"adduser", "-name", "Awe"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-name", "Awe", "-email", "awe@test.cd"}, wantErr: errHelp},
		{name: "create teacher", args: []string{"adduser", "-name", "Awe", "-email", "awe@test.cd"}, extra: extra{pwd: "mdr"}},
		{name: "create admin", args: []string{"adduser", "-name", "Boss", "-email", "boss@test.cd", "-admin"}, extra: extra{pwd: "mdr"}},
		{name: "update existing", args: []string{"adduser", "-name", "Awe Renamed", "-email", "awe@test.cd"}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				var email string
				for i, arg := range tt.args {
					if arg == "-email" {
						email = tt.args[i+1]
					}
				}
				usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{Email: email})
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if usr.PasswordHash == nil {
					t.Error("password was not set")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	boss, err := usrRepo.GetUser(context.Background(), user.GetFilter{Email: "boss@test.cd"})
	if err != nil {
		t.Fatalf("GetUser() failed, %v", err)
	}
	if !boss.IsAdmin() {
		t.Errorf("expected admin role, got %q", boss.Role)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe@test.cd", "mdr", user.RoleTeacher)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
