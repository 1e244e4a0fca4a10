package models

import (
	"database/sql"
	"time"
)

type Question struct {
	ID            string      `db:"id"`
	Subject       string      `db:"subject"`
	ClassLevel    string      `db:"class_level"`
	Difficulty    string      `db:"difficulty"`
	QuestionType  string      `db:"question_type"`
	Prompt        string      `db:"prompt"`
	Options       StringSlice `db:"options_json"`
	CorrectAnswer string      `db:"correct_answer"`
	Points        int         `db:"points"`
	IsActive      int         `db:"is_active"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

type Test struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Subject          string         `db:"subject"`
	ClassLevel       string         `db:"class_level"`
	Difficulty       string         `db:"difficulty"`
	TimeLimit        int            `db:"time_limit"`
	TotalPoints      int            `db:"total_points"`
	IsActive         int            `db:"is_active"`
	MaxAttempts      int            `db:"max_attempts"`
	ShuffleQuestions int            `db:"shuffle_questions"`
	ShuffleOptions   int            `db:"shuffle_options"`
	ShowResults      int            `db:"show_results"`
	AllowReview      int            `db:"allow_review"`
	StartDate        sql.NullTime   `db:"start_date"`
	EndDate          sql.NullTime   `db:"end_date"`
	Timezone         sql.NullString `db:"schedule_timezone"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// TestQuestion is the scoring projection of a question linked to a test.
type TestQuestion struct {
	ID            string `db:"id"`
	CorrectAnswer string `db:"correct_answer"`
	Points        int    `db:"points"`
}
