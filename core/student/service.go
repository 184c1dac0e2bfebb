package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("student not found")

type (
	// GetFilter selects a single Student by one of its unique keys.
	GetFilter struct {
		ID     string
		UserID string
	}

	Repository interface {
		CreateStudent(ctx context.Context, std Student, exec ...core.DBExecutor) (Student, error)
		// QueryAllStudents returns all profiles with their owning User joined in.
		QueryAllStudents(ctx context.Context, exec ...core.DBExecutor) ([]Student, error)
		GetStudent(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Student, error)
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		GetByUserID(ctx context.Context, userID string) (Student, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{ID: id})
}

func (svc *service) GetByUserID(ctx context.Context, userID string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{UserID: userID})
}
