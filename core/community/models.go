package community

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Journal is a private note owned by a Student.
type Journal struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// Post is a public post authored by any User.
type Post struct {
	ID        string    `json:"id" db:"id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC

	// joined author name
	AuthorName string `json:"author_name,omitempty" db:"author_name"`
}

// Pod is a study group users can join and post into.
type Pod struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description null.String `json:"description" db:"description"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
}

type PodMember struct {
	PodID    string    `json:"pod_id" db:"pod_id"`
	UserID   string    `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"` // UTC
}

type PodPost struct {
	ID        string    `json:"id" db:"id"`
	PodID     string    `json:"pod_id" db:"pod_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC

	// joined author name
	AuthorName string `json:"author_name,omitempty" db:"author_name"`
}

// Inputs

type NewJournal struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type NewPost struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type NewPod struct {
	Name        string `json:"name" validate:"required,namechars"`
	Description string `json:"description"`
}

type NewPodPost struct {
	Body string `json:"body" validate:"required"`
}
