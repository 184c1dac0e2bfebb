package main

import (
	"context"
	"time"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	var usr user.User
	var err error
	ctx := context.Background()
	now := time.Now().UTC()
	email = core.CleanString(email, true /* lower */)

	if usr, err = cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email}); err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			Role:      user.RoleTeacher,
			CreatedAt: now,
		}
	}
	usr.Name = core.CleanString(name)
	if isAdmin {
		usr.Role = user.RoleAdmin
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now
	if _, err := cli.usrRepo.UpdateOrCreateUser(ctx, usr); err != nil {
		return err
	}
	return nil
}
