package academics

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// Question types
const (
	QuestionMCQ   = "mcq"
	QuestionEssay = "essay"
)

// Class is a static reference academic level, eg. "Form 1".
type Class struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Level     int       `json:"level" db:"level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// Subject is a static reference catalog entry of a taught subject.
type Subject struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Code      null.String `json:"code" db:"code"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
}

type Exam struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	SubjectID       string    `json:"subject_id" db:"subject_id"`
	ClassID         string    `json:"class_id" db:"class_id"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedBy       string    `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"` // UTC

	// joined reference names
	SubjectName string `json:"subject_name,omitempty" db:"subject_name"`
	ClassName   string `json:"class_name,omitempty" db:"class_name"`
}

// ChoiceOption is one selectable option of a multiple-choice question.
type ChoiceOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// OptionList is stored as a JSON column.
type OptionList []ChoiceOption

func (ol OptionList) Value() (driver.Value, error) {
	if ol == nil {
		return nil, nil
	}
	return json.Marshal([]ChoiceOption(ol))
}

func (ol *OptionList) Scan(src interface{}) error {
	if src == nil {
		*ol = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return errors.Errorf("academics.OptionList: cannot scan %T", src)
	}
	return json.Unmarshal(data, (*[]ChoiceOption)(ol))
}

type Question struct {
	ID        string      `json:"id" db:"id"`
	ExamID    string      `json:"exam_id" db:"exam_id"`
	Text      string      `json:"question_text" db:"question_text"`
	TextAr    null.String `json:"question_text_ar" db:"question_text_ar"`
	Type      string      `json:"q_type" db:"q_type"`
	Options   OptionList  `json:"options" db:"options"`
	Answer    null.String `json:"answer" db:"answer"` // canonical answer; withheld from students
	Marks     int         `json:"marks" db:"marks"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
}

// Answer is one submitted answer: a choice key for MCQ questions or
// free text for essays. Unknown question ids are persisted as-is.
type Answer struct {
	QuestionID string `json:"question_id"`
	Choice     string `json:"choice,omitempty"`
	Text       string `json:"text,omitempty"`
}

// AnswerList is stored as a JSON column.
type AnswerList []Answer

func (al AnswerList) Value() (driver.Value, error) {
	if al == nil {
		return nil, nil
	}
	return json.Marshal([]Answer(al))
}

func (al *AnswerList) Scan(src interface{}) error {
	if src == nil {
		*al = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return errors.Errorf("academics.AnswerList: cannot scan %T", src)
	}
	return json.Unmarshal(data, (*[]Answer)(al))
}

// Result is one attempt by a Student on an Exam. Grading fields are null
// until a grading action occurs; regrading overwrites them (no history).
type Result struct {
	ID          string       `json:"id" db:"id"`
	ExamID      string       `json:"exam_id" db:"exam_id"`
	StudentID   string       `json:"student_id" db:"student_id"`
	Answers     AnswerList   `json:"answers" db:"answers"`
	TotalMarks  null.Int     `json:"total_marks" db:"total_marks"`
	Percentage  null.Float64 `json:"percentage" db:"percentage"`
	Grade       null.String  `json:"grade" db:"grade"`
	GradedBy    null.String  `json:"graded_by" db:"graded_by"`
	GradedAt    null.Time    `json:"graded_at" db:"graded_at"`       // UTC
	SubmittedAt time.Time    `json:"submitted_at" db:"submitted_at"` // UTC

	// joined Exam title (reports)
	ExamTitle string `json:"exam_title,omitempty" db:"exam_title"`
}

// SemesterResult is the per-semester aggregate for a Student. One row per
// (student, semester); re-recording a semester overwrites it.
type SemesterResult struct {
	ID         string      `json:"id" db:"id"`
	StudentID  string      `json:"student_id" db:"student_id"`
	Semester   string      `json:"semester" db:"semester"`
	TotalMarks int         `json:"total_marks" db:"total_marks"`
	Percentage float64     `json:"percentage" db:"percentage"`
	Grade      string      `json:"grade" db:"grade"`
	Remarks    null.String `json:"remarks" db:"remarks"`
	CreatedBy  string      `json:"created_by" db:"created_by"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"` // UTC
}

// Inputs

type NewClass struct {
	Name  string `json:"name" validate:"required,namechars"`
	Level int    `json:"level" validate:"gte=0"`
}

type NewSubject struct {
	Name string `json:"name" validate:"required,namechars"`
	Code string `json:"code"`
}

type NewExam struct {
	Title           string `json:"title" validate:"required"`
	SubjectID       string `json:"subject_id" validate:"required"`
	ClassID         string `json:"class_id" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

type NewQuestion struct {
	Text    string     `json:"question_text" validate:"required"`
	TextAr  string     `json:"question_text_ar"`
	Type    string     `json:"q_type" validate:"required,oneof=mcq essay"`
	Options OptionList `json:"options"`
	Answer  string     `json:"answer"`
	Marks   int        `json:"marks" validate:"gte=0"`
}

type Submission struct {
	Answers AnswerList `json:"answers" validate:"required"`
}

type GradeInput struct {
	TotalMarks int     `json:"total_marks" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Grade      string  `json:"grade" validate:"required"`
}

type NewSemesterResult struct {
	StudentID  string  `json:"student_id" validate:"required"`
	Semester   string  `json:"semester" validate:"required"`
	TotalMarks int     `json:"total_marks" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Grade      string  `json:"grade" validate:"required"`
	Remarks    string  `json:"remarks"`
}
