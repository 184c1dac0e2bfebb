package academics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var (
	// errors
	ErrExamNotFound           = errors.New("exam not found")
	ErrResultNotFound         = errors.New("result not found")
	ErrStudentProfileRequired = errors.New("Student profile required")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error)
		QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]Class, error)
		CreateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)
		QuerySubjects(ctx context.Context, exec ...core.DBExecutor) ([]Subject, error)

		CreateExam(ctx context.Context, exam Exam, exec ...core.DBExecutor) (Exam, error)
		// QueryExams returns all exams with subject and class names joined in.
		QueryExams(ctx context.Context, exec ...core.DBExecutor) ([]Exam, error)
		GetExam(ctx context.Context, id string, exec ...core.DBExecutor) (Exam, error)

		CreateQuestion(ctx context.Context, q Question, exec ...core.DBExecutor) (Question, error)
		QueryQuestions(ctx context.Context, examID string, exec ...core.DBExecutor) ([]Question, error)

		CreateResult(ctx context.Context, res Result, exec ...core.DBExecutor) (Result, error)
		// GradeResult overwrites the grading fields unconditionally;
		// repeated calls silently re-grade (last write wins).
		GradeResult(ctx context.Context, res Result, exec ...core.DBExecutor) (Result, error)
		QueryResultsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]Result, error)

		// UpsertSemesterResult overwrites any existing aggregate for the
		// same (student, semester).
		UpsertSemesterResult(ctx context.Context, sr SemesterResult, exec ...core.DBExecutor) (SemesterResult, error)
		QuerySemesterResultsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]SemesterResult, error)
	}

	Service interface {
		CreateClass(ctx context.Context, nc NewClass) (Class, error)
		QueryClasses(ctx context.Context) ([]Class, error)
		CreateSubject(ctx context.Context, ns NewSubject) (Subject, error)
		QuerySubjects(ctx context.Context) ([]Subject, error)

		CreateExam(ctx context.Context, ne NewExam, createdBy string) (Exam, error)
		QueryExams(ctx context.Context) ([]Exam, error)
		// QueryQuestions lists an exam's questions. The canonical answer is
		// withheld unless includeAnswers is set (staff callers).
		QueryQuestions(ctx context.Context, examID string, includeAnswers bool) ([]Question, error)
		CreateQuestion(ctx context.Context, examID string, nq NewQuestion) (Question, error)

		// Submit records one attempt for the Student profile owned by
		// callerUserID; it fails with ErrStudentProfileRequired when no such
		// profile exists. The exam id and answers are persisted as-is.
		Submit(ctx context.Context, callerUserID, examID string, sub Submission) (Result, error)
		Grade(ctx context.Context, resultID string, in GradeInput, graderID string) (Result, error)
		RecordSemesterResult(ctx context.Context, in NewSemesterResult, recordedBy string) (SemesterResult, error)
		StudentReport(ctx context.Context, studentID string) (Report, error)
	}

	Report struct {
		Student         student.Student  `json:"student"`
		Results         []Result         `json:"results"`
		SemesterResults []SemesterResult `json:"semester_results"`
	}

	service struct {
		repo    Repository
		stdRepo student.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, stdRepo student.Repository) Service {
	return &service{repo: repo, stdRepo: stdRepo}
}

func (svc *service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	return svc.repo.CreateClass(ctx, Class{
		Name:      core.CleanString(nc.Name),
		Level:     nc.Level,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) QueryClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, Subject{
		Name:      core.CleanString(ns.Name),
		Code:      null.NewString(ns.Code, ns.Code != ""),
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) QuerySubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *service) CreateExam(ctx context.Context, ne NewExam, createdBy string) (Exam, error) {
	return svc.repo.CreateExam(ctx, Exam{
		Title:           core.CleanString(ne.Title),
		SubjectID:       ne.SubjectID,
		ClassID:         ne.ClassID,
		DurationMinutes: ne.DurationMinutes,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now().UTC(),
	})
}

func (svc *service) QueryExams(ctx context.Context) ([]Exam, error) {
	return svc.repo.QueryExams(ctx)
}

func (svc *service) QueryQuestions(ctx context.Context, examID string, includeAnswers bool) ([]Question, error) {
	questions, err := svc.repo.QueryQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		for i := range questions {
			questions[i].Answer = null.String{}
		}
	}
	return questions, nil
}

func (svc *service) CreateQuestion(ctx context.Context, examID string, nq NewQuestion) (Question, error) {
	if _, err := svc.repo.GetExam(ctx, examID); err != nil {
		return Question{}, err
	}
	marks := nq.Marks
	if marks == 0 {
		marks = 1
	}
	return svc.repo.CreateQuestion(ctx, Question{
		ExamID:    examID,
		Text:      nq.Text,
		TextAr:    null.NewString(nq.TextAr, nq.TextAr != ""),
		Type:      nq.Type,
		Options:   nq.Options,
		Answer:    null.NewString(nq.Answer, nq.Answer != ""),
		Marks:     marks,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) Submit(ctx context.Context, callerUserID, examID string, sub Submission) (Result, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{UserID: callerUserID})
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return Result{}, ErrStudentProfileRequired
		}
		return Result{}, errors.Wrap(err, "finding student profile")
	}

	return svc.repo.CreateResult(ctx, Result{
		ExamID:      examID,
		StudentID:   std.ID,
		Answers:     sub.Answers,
		SubmittedAt: time.Now().UTC(),
	})
}

func (svc *service) Grade(ctx context.Context, resultID string, in GradeInput, graderID string) (Result, error) {
	return svc.repo.GradeResult(ctx, Result{
		ID:         resultID,
		TotalMarks: null.IntFrom(in.TotalMarks),
		Percentage: null.Float64From(in.Percentage),
		Grade:      null.StringFrom(in.Grade),
		GradedBy:   null.StringFrom(graderID),
		GradedAt:   null.TimeFrom(time.Now().UTC()),
	})
}

func (svc *service) RecordSemesterResult(ctx context.Context, in NewSemesterResult, recordedBy string) (SemesterResult, error) {
	if _, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{ID: in.StudentID}); err != nil {
		return SemesterResult{}, err
	}
	return svc.repo.UpsertSemesterResult(ctx, SemesterResult{
		StudentID:  in.StudentID,
		Semester:   core.CleanString(in.Semester),
		TotalMarks: in.TotalMarks,
		Percentage: in.Percentage,
		Grade:      in.Grade,
		Remarks:    null.NewString(in.Remarks, in.Remarks != ""),
		CreatedBy:  recordedBy,
		CreatedAt:  time.Now().UTC(),
	})
}

func (svc *service) StudentReport(ctx context.Context, studentID string) (Report, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{ID: studentID})
	if err != nil {
		return Report{}, err
	}
	results, err := svc.repo.QueryResultsByStudent(ctx, std.ID)
	if err != nil {
		return Report{}, err
	}
	if results == nil {
		results = []Result{}
	}
	semResults, err := svc.repo.QuerySemesterResultsByStudent(ctx, std.ID)
	if err != nil {
		return Report{}, err
	}
	if semResults == nil {
		semResults = []SemesterResult{}
	}
	return Report{Student: std, Results: results, SemesterResults: semResults}, nil
}
