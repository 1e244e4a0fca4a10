package service

import (
	"context"
	"time"

	"quiz-arena/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetTest(ctx context.Context, id string) (*domain.TestDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestDefinition), args.Error(1)
}

func (m *MockCatalogRepository) LockTest(ctx context.Context, id string) (*domain.TestDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestDefinition), args.Error(1)
}

func (m *MockCatalogRepository) SaveQuestion(ctx context.Context, q *domain.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockCatalogRepository) SaveTest(ctx context.Context, t *domain.TestDefinition) error {
	return m.Called(ctx, t).Error(0)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) List(ctx context.Context, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Attempt), args.Int(1), args.Error(2)
}

func (m *MockAttemptRepository) CountCompleted(ctx context.Context, userID, testID string) (int, error) {
	args := m.Called(ctx, userID, testID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) UpdateReview(ctx context.Context, id, reviewerID string, reviewedAt time.Time, input domain.ReviewInput) error {
	return m.Called(ctx, id, reviewerID, reviewedAt, input).Error(0)
}

func (m *MockAttemptRepository) Leaderboard(ctx context.Context, testID string, limit int) ([]domain.Attempt, error) {
	args := m.Called(ctx, testID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) BestAttempt(ctx context.Context, userID, testID string) (*domain.Attempt, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

// --- MockAnalyticsRepository ---
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Totals(ctx context.Context) (*domain.Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Totals), args.Error(1)
}

func (m *MockAnalyticsRepository) SubjectPerformance(ctx context.Context) ([]domain.SubjectPerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubjectPerformance), args.Error(1)
}

func (m *MockAnalyticsRepository) TopPerformers(ctx context.Context, limit int) ([]domain.TopPerformer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopPerformer), args.Error(1)
}

func (m *MockAnalyticsRepository) ActivitySince(ctx context.Context, since time.Time) ([]domain.ActivitySample, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivitySample), args.Error(1)
}

func (m *MockAnalyticsRepository) TestRollups(ctx context.Context, limit int) ([]domain.TestRollup, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TestRollup), args.Error(1)
}

func (m *MockAnalyticsRepository) DifficultyDistribution(ctx context.Context) ([]domain.DifficultyCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DifficultyCount), args.Error(1)
}

func (m *MockAnalyticsRepository) AttemptStats(ctx context.Context) (*domain.AttemptStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttemptStats), args.Error(1)
}

func (m *MockAnalyticsRepository) CategoryCounts(ctx context.Context, testID string) (map[domain.Category]int, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Category]int), args.Error(1)
}

func (m *MockAnalyticsRepository) StudentSummary(ctx context.Context, userID string) (*domain.StudentSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentSummary), args.Error(1)
}

func (m *MockAnalyticsRepository) StudentSubjects(ctx context.Context, userID string) ([]domain.SubjectPerformance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubjectPerformance), args.Error(1)
}

func (m *MockAnalyticsRepository) TestSummary(ctx context.Context, testID string) (*domain.TestSummary, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestSummary), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn inline and records whether the transaction committed.
type MockTransactionManager struct {
	mock.Mock
	Committed  int
	RolledBack int
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

// --- MockSubmissionLocker ---
type MockSubmissionLocker struct {
	mock.Mock
	Released int
}

func (m *MockSubmissionLocker) Acquire(ctx context.Context, userID, testID string) (domain.Unlock, error) {
	args := m.Called(ctx, userID, testID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.Released++
		return nil
	}, nil
}
