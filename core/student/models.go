package student

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Student is the academic profile attached 1:1 to a student-role User.
// It is created at registration and cascade-deleted with its owning User.
type Student struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	StudentNumber string      `json:"student_number" db:"student_number"`
	ClassID       null.String `json:"class_id" db:"class_id"`
	Phone         null.String `json:"phone" db:"phone"`
	Address       null.String `json:"address" db:"address"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"` // UTC

	// joined User fields
	UserName  string `json:"name,omitempty" db:"user_name"`
	UserEmail string `json:"email,omitempty" db:"user_email"`
}

// NewStudentNumber generates a unique student number, eg. "STU-2021-1A2B3C4D".
func NewStudentNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("STU-%d-%s", now.Year(), suffix)
}
