package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	// GetFilter selects a single User by one of its unique keys.
	GetFilter struct {
		ID    string
		Email string
	}

	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		QueryAllUsers(ctx context.Context, exec ...core.DBExecutor) ([]User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		UpdateOrCreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		SetLastLogin(ctx context.Context, id string, t time.Time, exec ...core.DBExecutor) error
	}

	Service interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		// Register creates the User and, for student-role accounts, its Student
		// profile atomically. A welcome email is sent on success.
		Register(ctx context.Context, nu NewUser) (User, error)
		// Authenticate verifies the credentials and returns the matching User.
		// Unknown email and wrong password are indistinguishable: both fail
		// with ErrInvalidCredentials.
		Authenticate(ctx context.Context, email, pwd string) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		QueryAll(ctx context.Context) ([]User, error)
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, rp ResetUserPassword) error
	}

	service struct {
		db      *sqlx.DB
		repo    Repository
		stdRepo student.Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(db *sqlx.DB, repo Repository, stdRepo student.Repository, mailSvc core.EmailService, conf *core.Config) Service {
	initTokenGen(conf)
	return &service{
		db:      db,
		repo:    repo,
		stdRepo: stdRepo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) CheckEmailUniqueness(ctx context.Context, email string) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewConflictError(err)
		}
		return err
	}
	return nil
}

func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return User{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	usr, err = svc.repo.CreateUser(ctx, usr, tx)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return User{}, core.NewConflictError(err)
		}
		return User{}, err
	}

	var std student.Student
	if usr.IsStudent() {
		std = student.Student{
			UserID:        usr.ID,
			StudentNumber: student.NewStudentNumber(now),
			ClassID:       null.NewString(nu.ClassID, nu.ClassID != ""),
			Phone:         null.NewString(nu.Phone, nu.Phone != ""),
			Address:       null.NewString(nu.Address, nu.Address != ""),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if std, err = svc.stdRepo.CreateStudent(ctx, std, tx); err != nil {
			return User{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return User{}, errors.Wrap(err, "committing transaction")
	}

	svc.sendWelcomeMail(usr, std.StudentNumber)
	return usr, nil
}

func (svc *service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err = svc.repo.SetLastLogin(ctx, usr.ID, now); err != nil {
		return User{}, errors.Wrap(err, "setting lastLogin")
	}
	usr.LastLogin = null.TimeFrom(now)
	return usr, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	svc.sendPasswordResetMail(usr)
	return nil
}

func (svc *service) ResetPassword(ctx context.Context, rp ResetUserPassword) error {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return err
	}
	if err = verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err)
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return err
}

func (svc *service) sendWelcomeMail(usr User, studentNumber string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome to " + svc.conf.AppName,
		TemplateName: "welcome",
		TemplateData: map[string]interface{}{
			"Name":          usr.Name,
			"AppName":       svc.conf.AppName,
			"BaseURL":       svc.conf.FrontendBaseURL,
			"StudentNumber": studentNumber,
		},
	})
}

func (svc *service) sendPasswordResetMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password-reset",
		TemplateData: map[string]interface{}{
			"Name":    usr.Name,
			"AppName": svc.conf.AppName,
			"BaseURL": svc.conf.FrontendBaseURL,
			"UID":     EncodeUID(usr),
			"Token":   makeToken(usr),
		},
	})
}
