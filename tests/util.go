package testutil

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/academics"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database"
)

// NewConfig returns a test configuration pointing at a throwaway database.
func NewConfig() *core.Config {
	_ = os.Setenv("ENV", "TEST")
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Database.Name += "_test"
	return conf
}

// OpenDB creates the test database if needed, migrates it and returns a handle.
func OpenDB(conf *core.Config) *sqlx.DB {
	if err := database.CreateIfNotExist(conf); err != nil {
		log.Fatalf("testutil.OpenDB(): %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		log.Fatalf("testutil.OpenDB(): %v", err)
	}
	if err = database.Migrate(db); err != nil {
		log.Fatalf("testutil.OpenDB(): %v", err)
	}
	return db
}

// ResetDB truncates all tables so each test starts from a clean slate.
func ResetDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE TABLE
		pod_posts, pod_members, pods, posts, journals,
		payments, semester_results, results, questions, exams,
		students, subjects, classes, users
		CASCADE`)
	if err != nil {
		t.Fatalf("ResetDB() failed: %v", err)
	}
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, usr user.User) student.Student {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	std, err := repo.CreateStudent(context.Background(), student.Student{
		UserID:        usr.ID,
		StudentNumber: student.NewStudentNumber(now),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	std.UserName = usr.Name
	std.UserEmail = usr.Email
	return std
}

func CreateClass(t *testing.T, repo academics.Repository, name string, level int) academics.Class {
	t.Helper()
	cls, err := repo.CreateClass(context.Background(), academics.Class{
		Name:      name,
		Level:     level,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateSubject(t *testing.T, repo academics.Repository, name string) academics.Subject {
	t.Helper()
	sub, err := repo.CreateSubject(context.Background(), academics.Subject{
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateExam(t *testing.T, repo academics.Repository, title string, sub academics.Subject, cls academics.Class, createdBy user.User) academics.Exam {
	t.Helper()
	exam, err := repo.CreateExam(context.Background(), academics.Exam{
		Title:           title,
		SubjectID:       sub.ID,
		ClassID:         cls.ID,
		DurationMinutes: 60,
		CreatedBy:       createdBy.ID,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("CreateExam() failed: %v", err)
	}
	exam.SubjectName = sub.Name
	exam.ClassName = cls.Name
	return exam
}

func CreateQuestion(t *testing.T, repo academics.Repository, exam academics.Exam, text, answer string) academics.Question {
	t.Helper()
	q, err := repo.CreateQuestion(context.Background(), academics.Question{
		ExamID: exam.ID,
		Text:   text,
		Type:   academics.QuestionMCQ,
		Options: academics.OptionList{
			{Key: "a", Text: "Option A"},
			{Key: "b", Text: "Option B"},
		},
		Answer:    null.StringFrom(answer),
		Marks:     1,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("CreateQuestion() failed: %v", err)
	}
	return q
}

func CreateResult(t *testing.T, repo academics.Repository, exam academics.Exam, std student.Student, answers academics.AnswerList) academics.Result {
	t.Helper()
	res, err := repo.CreateResult(context.Background(), academics.Result{
		ExamID:      exam.ID,
		StudentID:   std.ID,
		Answers:     answers,
		SubmittedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		t.Fatalf("CreateResult() failed: %v", err)
	}
	return res
}
