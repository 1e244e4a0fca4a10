package dto

import (
	"time"

	"quiz-arena/internal/domain"
)

// SubmitAttemptRequest is the body of POST /api/tests/{testId}/attempts.
// @Description Answers keyed by question id plus client telemetry
type SubmitAttemptRequest struct {
	Answers        map[string]string `json:"answers"`
	TimeSpent      *int              `json:"timeSpent"`
	TabSwitchCount int               `json:"tabSwitchCount"`
	StartedAt      *time.Time        `json:"startedAt,omitempty"`
}

// AttemptSummary is the slice of the attempt returned right after submission.
type AttemptSummary struct {
	ID          string          `json:"id"`
	TestID      string          `json:"testId"`
	Score       int             `json:"score"`
	TotalPoints int             `json:"totalPoints"`
	Percentage  int             `json:"percentage"`
	Category    domain.Category `json:"category"`
	TimeSpent   int             `json:"timeSpent"`
	Flagged     bool            `json:"flagged"`
	FlagReason  string          `json:"flagReason,omitempty"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

type QuestionOutcome struct {
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Points        int    `json:"points"`
}

// SubmitAttemptResponse
// @Description Graded attempt and per-question outcome
type SubmitAttemptResponse struct {
	Message string                     `json:"message"`
	Attempt AttemptSummary             `json:"attempt"`
	Results map[string]QuestionOutcome `json:"results"`
}

// AttemptResponse is the full stored record.
type AttemptResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"userId"`
	TestID          string                  `json:"testId"`
	Answers         map[string]string       `json:"answers"`
	QuestionResults []domain.QuestionResult `json:"questionResults"`
	Score           int                     `json:"score"`
	TotalPoints     int                     `json:"totalPoints"`
	Percentage      int                     `json:"percentage"`
	Category        domain.Category         `json:"category"`
	TimeSpent       int                     `json:"timeSpent"`
	TabSwitchCount  int                     `json:"tabSwitchCount"`
	IsCompleted     bool                    `json:"isCompleted"`
	StartedAt       time.Time               `json:"startedAt"`
	SubmittedAt     time.Time               `json:"submittedAt"`
	Flagged         bool                    `json:"flagged"`
	FlagReason      string                  `json:"flagReason,omitempty"`
	ReviewedBy      string                  `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time              `json:"reviewedAt,omitempty"`
	Feedback        string                  `json:"feedback,omitempty"`
}

// PaginationInfo mirrors the page/limit query parameters.
type PaginationInfo struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

type AttemptListResponse struct {
	Attempts   []AttemptResponse `json:"attempts"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ReviewAttemptRequest is the admin review body. Feedback is kept only when non-empty.
type ReviewAttemptRequest struct {
	Feedback string `json:"feedback"`
	Unflag   bool   `json:"unflag"`
}

// LeaderboardEntry is one ranked attempt.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	AttemptID   string    `json:"attemptId"`
	UserID      string    `json:"userId"`
	Score       int       `json:"score"`
	Percentage  int       `json:"percentage"`
	TimeSpent   int       `json:"timeSpent"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type LeaderboardResponse struct {
	TestID  string             `json:"testId"`
	Entries []LeaderboardEntry `json:"entries"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewAttemptSummary(a *domain.Attempt) AttemptSummary {
	return AttemptSummary{
		ID:          a.ID,
		TestID:      a.TestID,
		Score:       a.Score,
		TotalPoints: a.TotalPoints,
		Percentage:  a.Percentage,
		Category:    a.Category,
		TimeSpent:   a.TimeSpent,
		Flagged:     a.Flagged,
		FlagReason:  a.FlagReason,
		SubmittedAt: a.SubmittedAt,
	}
}

func NewSubmitAttemptResponse(a *domain.Attempt) SubmitAttemptResponse {
	results := make(map[string]QuestionOutcome, len(a.QuestionResults))
	for _, r := range a.QuestionResults {
		results[r.QuestionID] = QuestionOutcome{
			UserAnswer:    r.SubmittedAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
			Points:        r.PointsAwarded,
		}
	}
	return SubmitAttemptResponse{
		Message: "Test submitted successfully",
		Attempt: NewAttemptSummary(a),
		Results: results,
	}
}

func NewAttemptResponse(a *domain.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		TestID:          a.TestID,
		Answers:         a.Answers,
		QuestionResults: a.QuestionResults,
		Score:           a.Score,
		TotalPoints:     a.TotalPoints,
		Percentage:      a.Percentage,
		Category:        a.Category,
		TimeSpent:       a.TimeSpent,
		TabSwitchCount:  a.TabSwitchCount,
		IsCompleted:     a.IsCompleted,
		StartedAt:       a.StartedAt,
		SubmittedAt:     a.SubmittedAt,
		Flagged:         a.Flagged,
		FlagReason:      a.FlagReason,
		ReviewedBy:      a.ReviewedBy,
		ReviewedAt:      a.ReviewedAt,
		Feedback:        a.Feedback,
	}
}

func NewAttemptResponses(attempts []domain.Attempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for i := range attempts {
		out = append(out, NewAttemptResponse(&attempts[i]))
	}
	return out
}

// NewPaginationInfo derives page counts; page is 1-based.
func NewPaginationInfo(page, limit, total int) PaginationInfo {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PaginationInfo{Current: page, Pages: pages, Total: total, Limit: limit}
}

func NewLeaderboardResponse(testID string, attempts []domain.Attempt) LeaderboardResponse {
	entries := make([]LeaderboardEntry, 0, len(attempts))
	for i, a := range attempts {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			AttemptID:   a.ID,
			UserID:      a.UserID,
			Score:       a.Score,
			Percentage:  a.Percentage,
			TimeSpent:   a.TimeSpent,
			SubmittedAt: a.SubmittedAt,
		})
	}
	return LeaderboardResponse{TestID: testID, Entries: entries}
}
