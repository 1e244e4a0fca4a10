package domain

import "time"

type Category string

const (
	CategoryBeginner     Category = "Beginner"
	CategoryIntermediate Category = "Intermediate"
	CategoryAdvanced     Category = "Advanced"
	CategoryExpert       Category = "Expert"
)

// Categories lists every category from lowest to highest.
var Categories = []Category{CategoryBeginner, CategoryIntermediate, CategoryAdvanced, CategoryExpert}

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Requester is the authenticated caller of an operation.
type Requester struct {
	UserID string
	Role   Role
}

func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// CanAccess reports whether the requester may read data owned by ownerID.
func (r Requester) CanAccess(ownerID string) bool {
	return r.IsAdmin() || (r.UserID != "" && r.UserID == ownerID)
}

// QuestionResult is the graded outcome of one canonical question.
type QuestionResult struct {
	QuestionID      string `json:"questionId"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
	Points          int    `json:"points"`
	PointsAwarded   int    `json:"pointsAwarded"`
}

// Attempt is one graded submission. Only the review fields change after creation.
type Attempt struct {
	ID              string
	UserID          string
	TestID          string
	Answers         map[string]string
	QuestionResults []QuestionResult
	Score           int
	TotalPoints     int
	Percentage      int
	Category        Category
	TimeSpent       int
	TabSwitchCount  int
	IsCompleted     bool
	StartedAt       time.Time
	SubmittedAt     time.Time
	IPAddress       string
	UserAgent       string
	Flagged         bool
	FlagReason      string
	ReviewedBy      string
	ReviewedAt      *time.Time
	Feedback        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AttemptFilter narrows attempt listings. Empty fields are ignored.
type AttemptFilter struct {
	UserID  string
	TestID  string
	Flagged *bool
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// ReviewInput is the bounded admin mutation.
type ReviewInput struct {
	Feedback string
	Unflag   bool
}

const MaxFeedbackLength = 1000

// Upper bounds for client telemetry. Both fit a 32-bit column.
const (
	MaxTimeSpentSeconds = 7 * 24 * 60 * 60
	MaxTabSwitchCount   = 10000
)
