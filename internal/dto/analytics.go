package dto

import "quiz-arena/internal/domain"

type StudentReportResponse struct {
	UserID         string                      `json:"userId"`
	Summary        domain.StudentSummary       `json:"summary"`
	Subjects       []domain.SubjectPerformance `json:"subjects"`
	RecentAttempts []AttemptResponse           `json:"recentAttempts"`
}

type TestInfo struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Subject     string            `json:"subject"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	TotalPoints int               `json:"totalPoints"`
	IsActive    bool              `json:"isActive"`
}

type TestReportResponse struct {
	Test                 TestInfo                `json:"test"`
	Summary              domain.TestSummary      `json:"summary"`
	CategoryDistribution map[domain.Category]int `json:"categoryDistribution"`
	TopAttempts          []LeaderboardEntry      `json:"topAttempts"`
}

func NewStudentReportResponse(r *domain.StudentReport) StudentReportResponse {
	return StudentReportResponse{
		UserID:         r.UserID,
		Summary:        r.Summary,
		Subjects:       r.Subjects,
		RecentAttempts: NewAttemptResponses(r.RecentAttempts),
	}
}

func NewTestReportResponse(r *domain.TestReport) TestReportResponse {
	return TestReportResponse{
		Test: TestInfo{
			ID:          r.Test.ID,
			Title:       r.Test.Title,
			Subject:     r.Test.Subject,
			Difficulty:  r.Test.Difficulty,
			TotalPoints: r.Test.TotalPoints,
			IsActive:    r.Test.IsActive,
		},
		Summary:              r.Summary,
		CategoryDistribution: r.CategoryDistribution,
		TopAttempts:          NewLeaderboardResponse(r.Test.ID, r.TopAttempts).Entries,
	}
}
