package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/repository/models"
)

// sqlxAnalyticsRepository runs read-only aggregates over committed attempts.
// Nothing here is cached.
type sqlxAnalyticsRepository struct {
	db DBTX
}

func NewAnalyticsRepository(db DBTX) domain.AnalyticsRepository {
	return &sqlxAnalyticsRepository{db: db}
}

func (r *sqlxAnalyticsRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	db := GetExecutor(ctx, r.db)
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *sqlxAnalyticsRepository) Totals(ctx context.Context) (*domain.Totals, error) {
	var (
		totals domain.Totals
		err    error
	)
	if totals.Students, err = r.count(ctx, `SELECT COUNT(DISTINCT user_id) FROM attempts WHERE is_completed = 1`); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if totals.Tests, err = r.count(ctx, `SELECT COUNT(*) FROM tests WHERE is_active = 1`); err != nil {
		return nil, fmt.Errorf("failed to count tests: %w", err)
	}
	if totals.Questions, err = r.count(ctx, `SELECT COUNT(*) FROM questions WHERE is_active = 1`); err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if totals.Attempts, err = r.count(ctx, `SELECT COUNT(*) FROM attempts WHERE is_completed = 1`); err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}
	return &totals, nil
}

func toSubjectPerformance(rows []models.SubjectPerformanceRow) []domain.SubjectPerformance {
	out := make([]domain.SubjectPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SubjectPerformance{
			Subject:       row.Subject,
			TotalAttempts: row.TotalAttempts,
			AvgPercentage: domain.Round2(row.AvgPercentage),
			MaxPercentage: row.MaxPercentage,
			MinPercentage: row.MinPercentage,
		})
	}
	return out
}

const subjectPerformanceQuery = `SELECT t.subject "subject", COUNT(*) "total_attempts",
	AVG(a.percentage) "avg_percentage", MAX(a.percentage) "max_percentage", MIN(a.percentage) "min_percentage"
	FROM attempts a JOIN tests t ON t.id = a.test_id
	WHERE a.is_completed = 1%s
	GROUP BY t.subject
	ORDER BY AVG(a.percentage) DESC, t.subject ASC`

func (r *sqlxAnalyticsRepository) SubjectPerformance(ctx context.Context) ([]domain.SubjectPerformance, error) {
	db := GetExecutor(ctx, r.db)
	var rows []models.SubjectPerformanceRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(fmt.Sprintf(subjectPerformanceQuery, ""))); err != nil {
		return nil, fmt.Errorf("failed to aggregate subject performance: %w", err)
	}
	return toSubjectPerformance(rows), nil
}

func (r *sqlxAnalyticsRepository) StudentSubjects(ctx context.Context, userID string) ([]domain.SubjectPerformance, error) {
	db := GetExecutor(ctx, r.db)
	var rows []models.SubjectPerformanceRow
	query := fmt.Sprintf(subjectPerformanceQuery, " AND a.user_id = ?")
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("failed to aggregate subjects for user %s: %w", userID, err)
	}
	return toSubjectPerformance(rows), nil
}

func (r *sqlxAnalyticsRepository) TopPerformers(ctx context.Context, limit int) ([]domain.TopPerformer, error) {
	query := `SELECT a.user_id "user_id", COUNT(*) "total_attempts", AVG(a.percentage) "avg_percentage",
		SUM(a.score) "total_score"
		FROM attempts a WHERE a.is_completed = 1
		GROUP BY a.user_id
		ORDER BY AVG(a.percentage) DESC, SUM(a.score) DESC, a.user_id ASC
		FETCH FIRST ? ROWS ONLY`

	db := GetExecutor(ctx, r.db)
	var rows []models.TopPerformerRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to aggregate top performers: %w", err)
	}

	out := make([]domain.TopPerformer, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TopPerformer{
			UserID:        row.UserID,
			TotalAttempts: row.TotalAttempts,
			AvgPercentage: domain.Round2(row.AvgPercentage),
			TotalScore:    row.TotalScore,
		})
	}
	return out, nil
}

// ActivitySince returns raw samples; bucketing by day happens in Go so the
// query stays portable across Oracle and Postgres.
func (r *sqlxAnalyticsRepository) ActivitySince(ctx context.Context, since time.Time) ([]domain.ActivitySample, error) {
	query := `SELECT a.submitted_at "submitted_at", a.percentage "percentage"
		FROM attempts a WHERE a.is_completed = 1 AND a.submitted_at >= ?`

	db := GetExecutor(ctx, r.db)
	var rows []models.ActivitySample
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), since); err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	out := make([]domain.ActivitySample, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ActivitySample(row))
	}
	return out, nil
}

func (r *sqlxAnalyticsRepository) TestRollups(ctx context.Context, limit int) ([]domain.TestRollup, error) {
	query := `SELECT t.id "test_id", t.title "title", t.subject "subject", COUNT(*) "total_attempts",
		AVG(a.percentage) "avg_percentage"
		FROM attempts a JOIN tests t ON t.id = a.test_id
		WHERE a.is_completed = 1
		GROUP BY t.id, t.title, t.subject
		ORDER BY COUNT(*) DESC, t.id ASC
		FETCH FIRST ? ROWS ONLY`

	db := GetExecutor(ctx, r.db)
	var rows []models.TestRollupRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to aggregate test rollups: %w", err)
	}

	out := make([]domain.TestRollup, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TestRollup{
			TestID:        row.TestID,
			Title:         row.Title,
			Subject:       row.Subject,
			TotalAttempts: row.TotalAttempts,
			AvgPercentage: domain.Round2(row.AvgPercentage),
		})
	}
	return out, nil
}

func (r *sqlxAnalyticsRepository) DifficultyDistribution(ctx context.Context) ([]domain.DifficultyCount, error) {
	query := `SELECT q.difficulty "group_key", COUNT(*) "group_count"
		FROM questions q WHERE q.is_active = 1
		GROUP BY q.difficulty ORDER BY q.difficulty ASC`

	db := GetExecutor(ctx, r.db)
	var rows []models.GroupCountRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to aggregate question difficulty: %w", err)
	}

	out := make([]domain.DifficultyCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DifficultyCount{Difficulty: domain.Difficulty(row.Key), Count: row.Count})
	}
	return out, nil
}

func (r *sqlxAnalyticsRepository) AttemptStats(ctx context.Context) (*domain.AttemptStats, error) {
	query := `SELECT COUNT(*) "total_attempts", COALESCE(AVG(a.percentage), 0) "average_score",
		COALESCE(SUM(a.flagged), 0) "flagged_attempts"
		FROM attempts a WHERE a.is_completed = 1`

	db := GetExecutor(ctx, r.db)
	var row models.AttemptStatsRow
	if err := db.GetContext(ctx, &row, db.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to aggregate attempt stats: %w", err)
	}
	return &domain.AttemptStats{
		TotalAttempts:   row.TotalAttempts,
		AverageScore:    domain.Round2(row.AverageScore),
		FlaggedAttempts: row.FlaggedAttempts,
	}, nil
}

func (r *sqlxAnalyticsRepository) CategoryCounts(ctx context.Context, testID string) (map[domain.Category]int, error) {
	query := `SELECT a.category "group_key", COUNT(*) "group_count" FROM attempts a WHERE a.is_completed = 1`
	var args []interface{}
	if testID != "" {
		query += " AND a.test_id = ?"
		args = append(args, testID)
	}
	query += " GROUP BY a.category"

	db := GetExecutor(ctx, r.db)
	var rows []models.GroupCountRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	counts := make(map[domain.Category]int, len(rows))
	for _, row := range rows {
		counts[domain.Category(row.Key)] = row.Count
	}
	return counts, nil
}

func (r *sqlxAnalyticsRepository) StudentSummary(ctx context.Context, userID string) (*domain.StudentSummary, error) {
	query := `SELECT COUNT(*) "total_attempts", COALESCE(AVG(a.percentage), 0) "avg_percentage",
		COALESCE(MAX(a.percentage), 0) "best_percentage", COALESCE(SUM(a.time_spent), 0) "total_time_spent"
		FROM attempts a WHERE a.user_id = ? AND a.is_completed = 1`

	db := GetExecutor(ctx, r.db)
	var row models.StudentSummaryRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("failed to summarise user %s: %w", userID, err)
	}
	return &domain.StudentSummary{
		TotalAttempts:  row.TotalAttempts,
		AvgPercentage:  domain.Round2(row.AvgPercentage),
		BestPercentage: row.BestPercentage,
		TotalTimeSpent: row.TotalTimeSpent,
	}, nil
}

func (r *sqlxAnalyticsRepository) TestSummary(ctx context.Context, testID string) (*domain.TestSummary, error) {
	query := `SELECT COUNT(*) "total_attempts", COALESCE(AVG(a.percentage), 0) "avg_percentage",
		COALESCE(MAX(a.percentage), 0) "highest_percentage", COALESCE(MIN(a.percentage), 0) "lowest_percentage",
		COALESCE(AVG(a.time_spent), 0) "avg_time_spent"
		FROM attempts a WHERE a.test_id = ? AND a.is_completed = 1`

	db := GetExecutor(ctx, r.db)
	var row models.TestSummaryRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), testID); err != nil {
		return nil, fmt.Errorf("failed to summarise test %s: %w", testID, err)
	}
	return &domain.TestSummary{
		TotalAttempts:     row.TotalAttempts,
		AvgPercentage:     domain.Round2(row.AvgPercentage),
		HighestPercentage: row.HighestPercentage,
		LowestPercentage:  row.LowestPercentage,
		AvgTimeSpent:      domain.Round2(row.AvgTimeSpent),
	}, nil
}
