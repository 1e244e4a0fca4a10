package service

import (
	"context"
	"time"

	"quiz-arena/internal/domain"

	"golang.org/x/sync/errgroup"
)

// AnalyticsService assembles the read-side reports. Every call recomputes
// from committed attempts.
type AnalyticsService interface {
	DashboardOverview(ctx context.Context) (*domain.DashboardOverview, error)
	AttemptStatsOverview(ctx context.Context) (*domain.AttemptStatsOverview, error)
	StudentReport(ctx context.Context, userID string) (*domain.StudentReport, error)
	TestReport(ctx context.Context, testID string) (*domain.TestReport, error)
}

type analyticsServiceImpl struct {
	analytics domain.AnalyticsRepository
	attempts  domain.AttemptRepository
	catalog   domain.CatalogRepository
	now       func() time.Time
}

func NewAnalyticsService(analytics domain.AnalyticsRepository, attempts domain.AttemptRepository, catalog domain.CatalogRepository) AnalyticsService {
	return &analyticsServiceImpl{
		analytics: analytics,
		attempts:  attempts,
		catalog:   catalog,
		now:       time.Now,
	}
}

func (s *analyticsServiceImpl) DashboardOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	var (
		out     domain.DashboardOverview
		samples []domain.ActivitySample
	)
	since := s.now().UTC().AddDate(0, 0, -domain.RecentActivityDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.analytics.Totals(gctx)
		if err != nil {
			return err
		}
		out.Totals = *totals
		return nil
	})
	g.Go(func() error {
		var err error
		out.SubjectPerformance, err = s.analytics.SubjectPerformance(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.TopPerformers, err = s.analytics.TopPerformers(gctx, domain.TopPerformersLimit)
		return err
	})
	g.Go(func() error {
		var err error
		samples, err = s.analytics.ActivitySince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		out.TestRollups, err = s.analytics.TestRollups(gctx, domain.DefaultTestRollups)
		return err
	})
	g.Go(func() error {
		var err error
		out.DifficultyDistribution, err = s.analytics.DifficultyDistribution(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewUnavailableError("Failed to load analytics", err)
	}

	out.RecentActivity = domain.BucketDaily(samples, since)
	return &out, nil
}

func (s *analyticsServiceImpl) AttemptStatsOverview(ctx context.Context) (*domain.AttemptStatsOverview, error) {
	stats, err := s.analytics.AttemptStats(ctx)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load attempt stats", err)
	}
	counts, err := s.analytics.CategoryCounts(ctx, "")
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load attempt stats", err)
	}
	return &domain.AttemptStatsOverview{
		AttemptStats:         *stats,
		CategoryDistribution: domain.CategoryDistribution(counts),
	}, nil
}

func (s *analyticsServiceImpl) StudentReport(ctx context.Context, userID string) (*domain.StudentReport, error) {
	report := &domain.StudentReport{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.analytics.StudentSummary(gctx, userID)
		if err != nil {
			return err
		}
		report.Summary = *summary
		return nil
	})
	g.Go(func() error {
		var err error
		report.Subjects, err = s.analytics.StudentSubjects(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		report.RecentAttempts, _, err = s.attempts.List(gctx,
			domain.AttemptFilter{UserID: userID},
			domain.Page{Limit: domain.StudentRecentLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewUnavailableError("Failed to build student report", err)
	}
	return report, nil
}

func (s *analyticsServiceImpl) TestReport(ctx context.Context, testID string) (*domain.TestReport, error) {
	test, err := s.catalog.GetTest(ctx, testID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load test", err)
	}
	if test == nil {
		return nil, domain.NewNotFoundError("Test not found")
	}

	report := &domain.TestReport{Test: test}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.analytics.TestSummary(gctx, testID)
		if err != nil {
			return err
		}
		report.Summary = *summary
		return nil
	})
	g.Go(func() error {
		counts, err := s.analytics.CategoryCounts(gctx, testID)
		if err != nil {
			return err
		}
		report.CategoryDistribution = domain.CategoryDistribution(counts)
		return nil
	})
	g.Go(func() error {
		var err error
		report.TopAttempts, err = s.attempts.Leaderboard(gctx, testID, domain.TestReportTopLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewUnavailableError("Failed to build test report", err)
	}
	return report, nil
}
