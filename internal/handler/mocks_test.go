package handler_test

import (
	"context"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/middleware"
	"quiz-arena/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	testULID    = "01HV5Z8Q6X3J9K2M4N7P8R0S1T"
	attemptULID = "01HV5Z8Q6X3J9K2M4N7P8R0S2A"
)

// --- Manual Mocks ---

type MockAttemptService struct {
	SubmitFunc           func(ctx context.Context, in service.SubmitInput) (*domain.Attempt, error)
	GetAttemptFunc       func(ctx context.Context, requester domain.Requester, id string) (*domain.Attempt, error)
	ListUserAttemptsFunc func(ctx context.Context, requester domain.Requester, userID string, page domain.Page) ([]domain.Attempt, int, error)
	ListAttemptsFunc     func(ctx context.Context, requester domain.Requester, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error)
	ReviewFunc           func(ctx context.Context, requester domain.Requester, id string, input domain.ReviewInput) (*domain.Attempt, error)
	LeaderboardFunc      func(ctx context.Context, testID string, limit int) ([]domain.Attempt, error)
	BestAttemptFunc      func(ctx context.Context, userID, testID string) (*domain.Attempt, error)
}

func (m *MockAttemptService) Submit(ctx context.Context, in service.SubmitInput) (*domain.Attempt, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in)
	}
	panic("MockAttemptService.SubmitFunc not implemented")
}
func (m *MockAttemptService) GetAttempt(ctx context.Context, requester domain.Requester, id string) (*domain.Attempt, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, requester, id)
	}
	panic("MockAttemptService.GetAttemptFunc not implemented")
}
func (m *MockAttemptService) ListUserAttempts(ctx context.Context, requester domain.Requester, userID string, page domain.Page) ([]domain.Attempt, int, error) {
	if m.ListUserAttemptsFunc != nil {
		return m.ListUserAttemptsFunc(ctx, requester, userID, page)
	}
	panic("MockAttemptService.ListUserAttemptsFunc not implemented")
}
func (m *MockAttemptService) ListAttempts(ctx context.Context, requester domain.Requester, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error) {
	if m.ListAttemptsFunc != nil {
		return m.ListAttemptsFunc(ctx, requester, filter, page)
	}
	panic("MockAttemptService.ListAttemptsFunc not implemented")
}
func (m *MockAttemptService) Review(ctx context.Context, requester domain.Requester, id string, input domain.ReviewInput) (*domain.Attempt, error) {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, requester, id, input)
	}
	panic("MockAttemptService.ReviewFunc not implemented")
}
func (m *MockAttemptService) Leaderboard(ctx context.Context, testID string, limit int) ([]domain.Attempt, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, testID, limit)
	}
	panic("MockAttemptService.LeaderboardFunc not implemented")
}
func (m *MockAttemptService) BestAttempt(ctx context.Context, userID, testID string) (*domain.Attempt, error) {
	if m.BestAttemptFunc != nil {
		return m.BestAttemptFunc(ctx, userID, testID)
	}
	panic("MockAttemptService.BestAttemptFunc not implemented")
}

type MockAnalyticsService struct {
	DashboardOverviewFunc    func(ctx context.Context) (*domain.DashboardOverview, error)
	AttemptStatsOverviewFunc func(ctx context.Context) (*domain.AttemptStatsOverview, error)
	StudentReportFunc        func(ctx context.Context, userID string) (*domain.StudentReport, error)
	TestReportFunc           func(ctx context.Context, testID string) (*domain.TestReport, error)
}

func (m *MockAnalyticsService) DashboardOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	if m.DashboardOverviewFunc != nil {
		return m.DashboardOverviewFunc(ctx)
	}
	panic("MockAnalyticsService.DashboardOverviewFunc not implemented")
}
func (m *MockAnalyticsService) AttemptStatsOverview(ctx context.Context) (*domain.AttemptStatsOverview, error) {
	if m.AttemptStatsOverviewFunc != nil {
		return m.AttemptStatsOverviewFunc(ctx)
	}
	panic("MockAnalyticsService.AttemptStatsOverviewFunc not implemented")
}
func (m *MockAnalyticsService) StudentReport(ctx context.Context, userID string) (*domain.StudentReport, error) {
	if m.StudentReportFunc != nil {
		return m.StudentReportFunc(ctx, userID)
	}
	panic("MockAnalyticsService.StudentReportFunc not implemented")
}
func (m *MockAnalyticsService) TestReport(ctx context.Context, testID string) (*domain.TestReport, error) {
	if m.TestReportFunc != nil {
		return m.TestReportFunc(ctx, testID)
	}
	panic("MockAnalyticsService.TestReportFunc not implemented")
}

// newTestApp returns an app whose requests are authenticated as requester.
func newTestApp(requester domain.Requester) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if requester.UserID != "" {
			c.Locals(middleware.UserIDKey, requester.UserID)
			c.Locals(middleware.RoleKey, requester.Role)
		}
		return c.Next()
	})
	return app
}
