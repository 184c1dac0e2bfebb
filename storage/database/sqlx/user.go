package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

type userRepository struct {
	exec core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{exec: exec}
}

func (repo userRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// trapUniqueErr maps a psql unique violation to user.ErrEmailExists
func (repo userRepository) trapUniqueErr(err error, msg string) error {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == "23505" {
		return user.ErrEmailExists
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, exec ...core.DBExecutor) error {
	var exists bool
	err := repo.getExec(exec).GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO users (id, name, email, role, password_hash, created_at, updated_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		usr.ID, usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin)
	if err != nil {
		return user.User{}, repo.trapUniqueErr(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryAllUsers(ctx context.Context, exec ...core.DBExecutor) ([]user.User, error) {
	var users []user.User
	err := repo.getExec(exec).SelectContext(ctx, &users,
		`SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	var usr user.User
	var err error
	exe := repo.getExec(exec)

	if filter.ID != "" {
		err = exe.GetContext(ctx, &usr, `SELECT * FROM users WHERE id = $1`, filter.ID)
	} else {
		err = exe.GetContext(ctx, &usr, `SELECT * FROM users WHERE email = $1`, filter.Email)
	}
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user")
	}
	return usr, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE users SET name = $2, email = $3, role = $4, password_hash = $5, updated_at = $6 WHERE id = $1`,
		usr.ID, usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.UpdatedAt)
	if err != nil {
		return user.User{}, repo.trapUniqueErr(err, "updating user")
	}
	return usr, nil
}

func (repo userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr, exec...)
	}
	return repo.UpdateUser(ctx, usr, exec...)
}

func (repo userRepository) SetLastLogin(ctx context.Context, id string, t time.Time, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, t)
	return errors.Wrap(err, "setting last login")
}
