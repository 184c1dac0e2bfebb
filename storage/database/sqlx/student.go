package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

type studentRepository struct {
	exec core.DBExecutor
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{exec: exec}
}

func (repo studentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student, exec ...core.DBExecutor) (student.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO students (id, user_id, student_number, class_id, phone, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		std.ID, std.UserID, std.StudentNumber, std.ClassID, std.Phone, std.Address, std.CreatedAt, std.UpdatedAt)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context, exec ...core.DBExecutor) ([]student.Student, error) {
	var students []student.Student
	err := repo.getExec(exec).SelectContext(ctx, &students,
		`SELECT s.*, u.name AS user_name, u.email AS user_email
		 FROM students s INNER JOIN users u ON u.id = s.user_id
		 ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter student.GetFilter, exec ...core.DBExecutor) (student.Student, error) {
	var std student.Student
	var err error
	exe := repo.getExec(exec)

	query := `SELECT s.*, u.name AS user_name, u.email AS user_email
			  FROM students s INNER JOIN users u ON u.id = s.user_id `
	if filter.ID != "" {
		err = exe.GetContext(ctx, &std, query+`WHERE s.id = $1`, filter.ID)
	} else {
		err = exe.GetContext(ctx, &std, query+`WHERE s.user_id = $1`, filter.UserID)
	}
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student")
	}
	return std, nil
}
