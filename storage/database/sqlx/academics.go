package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/academics"
)

type academicsRepository struct {
	exec core.DBExecutor
}

var _ academics.Repository = (*academicsRepository)(nil) // interface compliance check

func NewAcademicsRepository(exec core.DBExecutor) *academicsRepository {
	return &academicsRepository{exec: exec}
}

func (repo academicsRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo academicsRepository) CreateClass(ctx context.Context, cls academics.Class, exec ...core.DBExecutor) (academics.Class, error) {
	cls.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO classes (id, name, level, created_at) VALUES ($1, $2, $3, $4)`,
		cls.ID, cls.Name, cls.Level, cls.CreatedAt)
	if err != nil {
		return academics.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo academicsRepository) QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]academics.Class, error) {
	var classes []academics.Class
	err := repo.getExec(exec).SelectContext(ctx, &classes,
		`SELECT * FROM classes ORDER BY level, name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo academicsRepository) CreateSubject(ctx context.Context, sub academics.Subject, exec ...core.DBExecutor) (academics.Subject, error) {
	sub.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO subjects (id, name, code, created_at) VALUES ($1, $2, $3, $4)`,
		sub.ID, sub.Name, sub.Code, sub.CreatedAt)
	if err != nil {
		return academics.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo academicsRepository) QuerySubjects(ctx context.Context, exec ...core.DBExecutor) ([]academics.Subject, error) {
	var subjects []academics.Subject
	err := repo.getExec(exec).SelectContext(ctx, &subjects,
		`SELECT * FROM subjects ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo academicsRepository) CreateExam(ctx context.Context, exam academics.Exam, exec ...core.DBExecutor) (academics.Exam, error) {
	exam.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO exams (id, title, subject_id, class_id, duration_minutes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		exam.ID, exam.Title, exam.SubjectID, exam.ClassID, exam.DurationMinutes, exam.CreatedBy, exam.CreatedAt)
	if err != nil {
		return academics.Exam{}, errors.Wrap(err, "inserting exam")
	}
	return exam, nil
}

func (repo academicsRepository) QueryExams(ctx context.Context, exec ...core.DBExecutor) ([]academics.Exam, error) {
	var exams []academics.Exam
	err := repo.getExec(exec).SelectContext(ctx, &exams,
		`SELECT e.*, s.name AS subject_name, c.name AS class_name
		 FROM exams e
		 INNER JOIN subjects s ON s.id = e.subject_id
		 INNER JOIN classes c ON c.id = e.class_id
		 ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	return exams, nil
}

func (repo academicsRepository) GetExam(ctx context.Context, id string, exec ...core.DBExecutor) (academics.Exam, error) {
	var exam academics.Exam
	err := repo.getExec(exec).GetContext(ctx, &exam,
		`SELECT e.*, s.name AS subject_name, c.name AS class_name
		 FROM exams e
		 INNER JOIN subjects s ON s.id = e.subject_id
		 INNER JOIN classes c ON c.id = e.class_id
		 WHERE e.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return academics.Exam{}, academics.ErrExamNotFound
		}
		return academics.Exam{}, errors.Wrap(err, "finding exam")
	}
	return exam, nil
}

func (repo academicsRepository) CreateQuestion(ctx context.Context, q academics.Question, exec ...core.DBExecutor) (academics.Question, error) {
	q.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO questions (id, exam_id, question_text, question_text_ar, q_type, options, answer, marks, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.ExamID, q.Text, q.TextAr, q.Type, q.Options, q.Answer, q.Marks, q.CreatedAt)
	if err != nil {
		return academics.Question{}, errors.Wrap(err, "inserting question")
	}
	return q, nil
}

func (repo academicsRepository) QueryQuestions(ctx context.Context, examID string, exec ...core.DBExecutor) ([]academics.Question, error) {
	var questions []academics.Question
	err := repo.getExec(exec).SelectContext(ctx, &questions,
		`SELECT * FROM questions WHERE exam_id = $1 ORDER BY created_at`, examID)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	return questions, nil
}

func (repo academicsRepository) CreateResult(ctx context.Context, res academics.Result, exec ...core.DBExecutor) (academics.Result, error) {
	res.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO results (id, exam_id, student_id, answers, submitted_at) VALUES ($1, $2, $3, $4, $5)`,
		res.ID, res.ExamID, res.StudentID, res.Answers, res.SubmittedAt)
	if err != nil {
		return academics.Result{}, errors.Wrap(err, "inserting result")
	}
	return res, nil
}

func (repo academicsRepository) GradeResult(ctx context.Context, res academics.Result, exec ...core.DBExecutor) (academics.Result, error) {
	var graded academics.Result
	err := repo.getExec(exec).GetContext(ctx, &graded,
		`UPDATE results SET total_marks = $2, percentage = $3, grade = $4, graded_by = $5, graded_at = $6
		 WHERE id = $1
		 RETURNING *`,
		res.ID, res.TotalMarks, res.Percentage, res.Grade, res.GradedBy, res.GradedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return academics.Result{}, academics.ErrResultNotFound
		}
		return academics.Result{}, errors.Wrap(err, "grading result")
	}
	return graded, nil
}

func (repo academicsRepository) UpsertSemesterResult(ctx context.Context, sr academics.SemesterResult, exec ...core.DBExecutor) (academics.SemesterResult, error) {
	sr.ID = uuid.New().String()
	var saved academics.SemesterResult
	err := repo.getExec(exec).GetContext(ctx, &saved,
		`INSERT INTO semester_results (id, student_id, semester, total_marks, percentage, grade, remarks, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (student_id, semester) DO UPDATE
		 SET total_marks = EXCLUDED.total_marks, percentage = EXCLUDED.percentage, grade = EXCLUDED.grade,
		     remarks = EXCLUDED.remarks, created_by = EXCLUDED.created_by, created_at = EXCLUDED.created_at
		 RETURNING *`,
		sr.ID, sr.StudentID, sr.Semester, sr.TotalMarks, sr.Percentage, sr.Grade, sr.Remarks, sr.CreatedBy, sr.CreatedAt)
	if err != nil {
		return academics.SemesterResult{}, errors.Wrap(err, "upserting semester result")
	}
	return saved, nil
}

func (repo academicsRepository) QuerySemesterResultsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]academics.SemesterResult, error) {
	var results []academics.SemesterResult
	err := repo.getExec(exec).SelectContext(ctx, &results,
		`SELECT * FROM semester_results WHERE student_id = $1 ORDER BY semester`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying semester results")
	}
	return results, nil
}

func (repo academicsRepository) QueryResultsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]academics.Result, error) {
	var results []academics.Result
	err := repo.getExec(exec).SelectContext(ctx, &results,
		`SELECT r.*, COALESCE(e.title, '') AS exam_title
		 FROM results r
		 LEFT JOIN exams e ON e.id = r.exam_id
		 WHERE r.student_id = $1
		 ORDER BY r.submitted_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying results")
	}
	return results, nil
}
