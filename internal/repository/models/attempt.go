package models

import (
	"database/sql"
	"time"
)

// Attempt maps the attempts table. Boolean columns are NUMBER(1)/SMALLINT.
type Attempt struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	TestID          string          `db:"test_id"`
	Answers         AnswerMap       `db:"answers"`
	QuestionResults QuestionResults `db:"question_results"`
	Score           int             `db:"score"`
	TotalPoints     int             `db:"total_points"`
	Percentage      int             `db:"percentage"`
	Category        string          `db:"category"`
	TimeSpent       int             `db:"time_spent"`
	TabSwitchCount  int             `db:"tab_switch_count"`
	IsCompleted     int             `db:"is_completed"`
	StartedAt       time.Time       `db:"started_at"`
	SubmittedAt     time.Time       `db:"submitted_at"`
	IPAddress       sql.NullString  `db:"ip_address"`
	UserAgent       sql.NullString  `db:"user_agent"`
	Flagged         int             `db:"flagged"`
	FlagReason      sql.NullString  `db:"flag_reason"`
	ReviewedBy      sql.NullString  `db:"reviewed_by"`
	ReviewedAt      sql.NullTime    `db:"reviewed_at"`
	Feedback        sql.NullString  `db:"feedback"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ActivitySample is the narrow row used for daily activity bucketing.
type ActivitySample struct {
	SubmittedAt time.Time `db:"submitted_at"`
	Percentage  int       `db:"percentage"`
}

type SubjectPerformanceRow struct {
	Subject       string  `db:"subject"`
	TotalAttempts int     `db:"total_attempts"`
	AvgPercentage float64 `db:"avg_percentage"`
	MaxPercentage int     `db:"max_percentage"`
	MinPercentage int     `db:"min_percentage"`
}

type TopPerformerRow struct {
	UserID        string  `db:"user_id"`
	TotalAttempts int     `db:"total_attempts"`
	AvgPercentage float64 `db:"avg_percentage"`
	TotalScore    int     `db:"total_score"`
}

type TestRollupRow struct {
	TestID        string  `db:"test_id"`
	Title         string  `db:"title"`
	Subject       string  `db:"subject"`
	TotalAttempts int     `db:"total_attempts"`
	AvgPercentage float64 `db:"avg_percentage"`
}

type GroupCountRow struct {
	Key   string `db:"group_key"`
	Count int    `db:"group_count"`
}

type AttemptStatsRow struct {
	TotalAttempts   int     `db:"total_attempts"`
	AverageScore    float64 `db:"average_score"`
	FlaggedAttempts int     `db:"flagged_attempts"`
}

type StudentSummaryRow struct {
	TotalAttempts  int     `db:"total_attempts"`
	AvgPercentage  float64 `db:"avg_percentage"`
	BestPercentage int     `db:"best_percentage"`
	TotalTimeSpent int     `db:"total_time_spent"`
}

type TestSummaryRow struct {
	TotalAttempts     int     `db:"total_attempts"`
	AvgPercentage     float64 `db:"avg_percentage"`
	HighestPercentage int     `db:"highest_percentage"`
	LowestPercentage  int     `db:"lowest_percentage"`
	AvgTimeSpent      float64 `db:"avg_time_spent"`
}
