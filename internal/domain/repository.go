package domain

import (
	"context"
	"errors"
	"time"
)

// TransactionManager runs fn in a single database transaction. Repositories
// pick the transaction up from the context passed to fn.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogRepository is the read side of the question/test catalog. The write
// methods exist for fixture loading only.
type CatalogRepository interface {
	// GetTest returns the test with its ordered questions, or nil when absent.
	GetTest(ctx context.Context, id string) (*TestDefinition, error)
	// LockTest re-reads the test row with a row lock held until the surrounding
	// transaction ends. Questions are not loaded.
	LockTest(ctx context.Context, id string) (*TestDefinition, error)
	SaveQuestion(ctx context.Context, q *Question) error
	SaveTest(ctx context.Context, t *TestDefinition) error
}

// AttemptRepository persists graded attempts.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *Attempt) error
	// GetByID returns nil, nil when the attempt does not exist.
	GetByID(ctx context.Context, id string) (*Attempt, error)
	List(ctx context.Context, filter AttemptFilter, page Page) ([]Attempt, int, error)
	CountCompleted(ctx context.Context, userID, testID string) (int, error)
	UpdateReview(ctx context.Context, id, reviewerID string, reviewedAt time.Time, input ReviewInput) error
	// Leaderboard orders by score desc, time spent asc, then submission time and id.
	Leaderboard(ctx context.Context, testID string, limit int) ([]Attempt, error)
	BestAttempt(ctx context.Context, userID, testID string) (*Attempt, error)
}

// AnalyticsRepository holds the read-only aggregate queries.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (*Totals, error)
	SubjectPerformance(ctx context.Context) ([]SubjectPerformance, error)
	TopPerformers(ctx context.Context, limit int) ([]TopPerformer, error)
	ActivitySince(ctx context.Context, since time.Time) ([]ActivitySample, error)
	TestRollups(ctx context.Context, limit int) ([]TestRollup, error)
	DifficultyDistribution(ctx context.Context) ([]DifficultyCount, error)
	AttemptStats(ctx context.Context) (*AttemptStats, error)
	// CategoryCounts counts attempts per category, for one test when testID is set.
	CategoryCounts(ctx context.Context, testID string) (map[Category]int, error)
	StudentSummary(ctx context.Context, userID string) (*StudentSummary, error)
	StudentSubjects(ctx context.Context, userID string) ([]SubjectPerformance, error)
	TestSummary(ctx context.Context, testID string) (*TestSummary, error)
}

// ErrLockNotAcquired is returned by a SubmissionLocker when another holder
// kept the lock for the whole wait period.
var ErrLockNotAcquired = errors.New("submission lock not acquired")

// Unlock releases a lock obtained from SubmissionLocker.
type Unlock func(ctx context.Context) error

// SubmissionLocker serialises submissions for one (user, test) pair.
type SubmissionLocker interface {
	Acquire(ctx context.Context, userID, testID string) (Unlock, error)
}
