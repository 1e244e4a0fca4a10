package service

import (
	"context"
	"errors"
	"time"

	"quiz-arena/internal/config"
	"quiz-arena/internal/domain"
	"quiz-arena/internal/logger"

	"go.uber.org/zap"
)

// SubmitInput carries one submission after transport-level validation.
type SubmitInput struct {
	UserID         string
	TestID         string
	Answers        map[string]string
	TimeSpent      int
	TabSwitchCount int
	StartedAt      *time.Time
	IPAddress      string
	UserAgent      string
}

// AttemptService drives the attempt lifecycle: grading, integrity flags,
// quota-safe persistence, review, and leaderboard reads.
type AttemptService interface {
	Submit(ctx context.Context, in SubmitInput) (*domain.Attempt, error)
	GetAttempt(ctx context.Context, requester domain.Requester, id string) (*domain.Attempt, error)
	ListUserAttempts(ctx context.Context, requester domain.Requester, userID string, page domain.Page) ([]domain.Attempt, int, error)
	ListAttempts(ctx context.Context, requester domain.Requester, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error)
	Review(ctx context.Context, requester domain.Requester, id string, input domain.ReviewInput) (*domain.Attempt, error)
	Leaderboard(ctx context.Context, testID string, limit int) ([]domain.Attempt, error)
	BestAttempt(ctx context.Context, userID, testID string) (*domain.Attempt, error)
}

type attemptServiceImpl struct {
	catalog  domain.CatalogRepository
	attempts domain.AttemptRepository
	tx       domain.TransactionManager
	locker   domain.SubmissionLocker
	cfg      config.AttemptConfig
	now      func() time.Time
}

func NewAttemptService(
	catalog domain.CatalogRepository,
	attempts domain.AttemptRepository,
	tx domain.TransactionManager,
	locker domain.SubmissionLocker,
	cfg config.AttemptConfig,
) AttemptService {
	return &attemptServiceImpl{
		catalog:  catalog,
		attempts: attempts,
		tx:       tx,
		locker:   locker,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *attemptServiceImpl) Submit(ctx context.Context, in SubmitInput) (*domain.Attempt, error) {
	l := logger.Get().With(zap.String("userID", in.UserID), zap.String("testID", in.TestID))
	now := s.now().UTC()

	test, err := s.catalog.GetTest(ctx, in.TestID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load test", err)
	}

	// Pre-check outside the transaction so obvious rejections skip grading.
	completed := 0
	if test != nil && test.IsActive {
		if completed, err = s.attempts.CountCompleted(ctx, in.UserID, in.TestID); err != nil {
			return nil, domain.NewUnavailableError("Failed to count attempts", err)
		}
	}
	if err := domain.CheckEligibility(test, now, completed); err != nil {
		return nil, err
	}
	if test.TotalPoints <= 0 {
		return nil, domain.NewPreconditionFailedError("Test has no scorable points")
	}

	score, err := domain.Score(test.Questions, in.Answers)
	if err != nil {
		return nil, err
	}
	if score.TotalPoints != test.TotalPoints {
		return nil, domain.NewPreconditionFailedError("Test total points do not match its questions").
			WithContext("totalPoints", test.TotalPoints).
			WithContext("questionPoints", score.TotalPoints)
	}
	flagged, reason := domain.Inspect(in.TabSwitchCount, in.TimeSpent)

	startedAt := now.Add(-time.Duration(in.TimeSpent) * time.Second)
	if in.StartedAt != nil && !in.StartedAt.IsZero() {
		startedAt = in.StartedAt.UTC()
	}
	if startedAt.After(now) {
		startedAt = now
	}

	attempt := &domain.Attempt{
		UserID:          in.UserID,
		TestID:          in.TestID,
		Answers:         score.Answers,
		QuestionResults: score.Results,
		Score:           score.Score,
		TotalPoints:     score.TotalPoints,
		Percentage:      score.Percentage,
		Category:        score.Category,
		TimeSpent:       in.TimeSpent,
		TabSwitchCount:  in.TabSwitchCount,
		IsCompleted:     true,
		StartedAt:       startedAt,
		SubmittedAt:     now,
		IPAddress:       in.IPAddress,
		UserAgent:       in.UserAgent,
		Flagged:         flagged,
		FlagReason:      reason,
	}

	unlock, err := s.locker.Acquire(ctx, in.UserID, in.TestID)
	switch {
	case errors.Is(err, domain.ErrLockNotAcquired):
		return nil, domain.NewConflictError("Another submission for this test is in progress")
	case err != nil:
		l.Warn("Submission lock unavailable, relying on transactional quota check", zap.Error(err))
	default:
		defer func() {
			// Release must outlive a cancelled request context.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			if err := unlock(releaseCtx); err != nil {
				l.Warn("Failed to release submission lock", zap.Error(err))
			}
		}()
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.catalog.LockTest(txCtx, in.TestID)
		if err != nil {
			return domain.NewUnavailableError("Failed to lock test", err)
		}
		if locked != nil && locked.TotalPoints != score.TotalPoints {
			return domain.NewPreconditionFailedError("test definition changed during submission")
		}

		count, err := s.attempts.CountCompleted(txCtx, in.UserID, in.TestID)
		if err != nil {
			return domain.NewUnavailableError("Failed to count attempts", err)
		}
		if err := domain.CheckEligibility(locked, now, count); err != nil {
			return err
		}

		if err := s.attempts.Create(txCtx, attempt); err != nil {
			return domain.NewUnavailableError("Failed to store attempt", err)
		}
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			err = domain.NewUnavailableError("Failed to store attempt", err)
		}
		return nil, err
	}

	l.Info("Attempt submitted",
		zap.String("attemptID", attempt.ID),
		zap.Int("score", attempt.Score),
		zap.Int("percentage", attempt.Percentage),
		zap.Bool("flagged", attempt.Flagged))
	return attempt, nil
}

func (s *attemptServiceImpl) GetAttempt(ctx context.Context, requester domain.Requester, id string) (*domain.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Attempt not found")
	}
	if !requester.CanAccess(attempt.UserID) {
		return nil, domain.NewForbiddenError("Access denied")
	}
	return attempt, nil
}

func (s *attemptServiceImpl) ListUserAttempts(ctx context.Context, requester domain.Requester, userID string, page domain.Page) ([]domain.Attempt, int, error) {
	if !requester.CanAccess(userID) {
		return nil, 0, domain.NewForbiddenError("Access denied")
	}
	attempts, total, err := s.attempts.List(ctx, domain.AttemptFilter{UserID: userID}, page)
	if err != nil {
		return nil, 0, domain.NewUnavailableError("Failed to list attempts", err)
	}
	return attempts, total, nil
}

func (s *attemptServiceImpl) ListAttempts(ctx context.Context, requester domain.Requester, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error) {
	if !requester.IsAdmin() {
		return nil, 0, domain.NewForbiddenError("Admin access required")
	}
	attempts, total, err := s.attempts.List(ctx, filter, page)
	if err != nil {
		return nil, 0, domain.NewUnavailableError("Failed to list attempts", err)
	}
	return attempts, total, nil
}

func (s *attemptServiceImpl) Review(ctx context.Context, requester domain.Requester, id string, input domain.ReviewInput) (*domain.Attempt, error) {
	if !requester.IsAdmin() {
		return nil, domain.NewForbiddenError("Admin access required")
	}
	if len(input.Feedback) > domain.MaxFeedbackLength {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError("feedback", len(input.Feedback), 0, domain.MaxFeedbackLength),
		}
	}

	if err := s.attempts.UpdateReview(ctx, id, requester.UserID, s.now().UTC(), input); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewUnavailableError("Failed to review attempt", err)
	}

	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Attempt not found")
	}
	logger.Get().Info("Attempt reviewed",
		zap.String("attemptID", id),
		zap.String("reviewer", requester.UserID),
		zap.Bool("unflag", input.Unflag))
	return attempt, nil
}

// leaderboardLimit applies the configured default and cap.
func (s *attemptServiceImpl) leaderboardLimit(limit int) int {
	def, max := s.cfg.DefaultLeaderboardLimit, s.cfg.MaxLeaderboardLimit
	if def <= 0 {
		def = 10
	}
	if max <= 0 {
		max = 100
	}
	switch {
	case limit <= 0:
		return def
	case limit > max:
		return max
	default:
		return limit
	}
}

func (s *attemptServiceImpl) Leaderboard(ctx context.Context, testID string, limit int) ([]domain.Attempt, error) {
	attempts, err := s.attempts.Leaderboard(ctx, testID, s.leaderboardLimit(limit))
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load leaderboard", err)
	}
	return attempts, nil
}

func (s *attemptServiceImpl) BestAttempt(ctx context.Context, userID, testID string) (*domain.Attempt, error) {
	attempt, err := s.attempts.BestAttempt(ctx, userID, testID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load best attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("No completed attempts found for this test")
	}
	return attempt, nil
}
