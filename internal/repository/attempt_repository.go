package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/repository/models"
	"quiz-arena/internal/util"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// attemptColumns uses quoted lowercase aliases so Oracle returns names that
// match the db tags.
const attemptColumns = `a.id "id", a.user_id "user_id", a.test_id "test_id", a.answers "answers",
	a.question_results "question_results", a.score "score", a.total_points "total_points",
	a.percentage "percentage", a.category "category", a.time_spent "time_spent",
	a.tab_switch_count "tab_switch_count", a.is_completed "is_completed", a.started_at "started_at",
	a.submitted_at "submitted_at", a.ip_address "ip_address", a.user_agent "user_agent",
	a.flagged "flagged", a.flag_reason "flag_reason", a.reviewed_by "reviewed_by",
	a.reviewed_at "reviewed_at", a.feedback "feedback", a.created_at "created_at", a.updated_at "updated_at"`

// leaderboardOrder is a total order: ties on score and time fall back to the
// earlier submission, then to id.
const leaderboardOrder = "a.score DESC, a.time_spent ASC, a.submitted_at ASC, a.id ASC"

type sqlxAttemptRepository struct {
	db DBTX
}

func NewAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	results := make([]domain.QuestionResult, len(m.QuestionResults))
	for i, r := range m.QuestionResults {
		results[i] = domain.QuestionResult(r)
	}

	answers := make(map[string]string, len(m.Answers))
	for k, v := range m.Answers {
		answers[k] = v
	}

	return &domain.Attempt{
		ID:              m.ID,
		UserID:          m.UserID,
		TestID:          m.TestID,
		Answers:         answers,
		QuestionResults: results,
		Score:           m.Score,
		TotalPoints:     m.TotalPoints,
		Percentage:      m.Percentage,
		Category:        domain.Category(m.Category),
		TimeSpent:       m.TimeSpent,
		TabSwitchCount:  m.TabSwitchCount,
		IsCompleted:     m.IsCompleted == 1,
		StartedAt:       m.StartedAt,
		SubmittedAt:     m.SubmittedAt,
		IPAddress:       m.IPAddress.String,
		UserAgent:       m.UserAgent.String,
		Flagged:         m.Flagged == 1,
		FlagReason:      m.FlagReason.String,
		ReviewedBy:      m.ReviewedBy.String,
		ReviewedAt:      util.TimePtr(m.ReviewedAt),
		Feedback:        m.Feedback.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainAttempt(d *domain.Attempt) *models.Attempt {
	if d == nil {
		return nil
	}
	results := make(models.QuestionResults, len(d.QuestionResults))
	for i, r := range d.QuestionResults {
		results[i] = models.QuestionResult(r)
	}

	return &models.Attempt{
		ID:              d.ID,
		UserID:          d.UserID,
		TestID:          d.TestID,
		Answers:         models.AnswerMap(d.Answers),
		QuestionResults: results,
		Score:           d.Score,
		TotalPoints:     d.TotalPoints,
		Percentage:      d.Percentage,
		Category:        string(d.Category),
		TimeSpent:       d.TimeSpent,
		TabSwitchCount:  d.TabSwitchCount,
		IsCompleted:     boolToInt(d.IsCompleted),
		StartedAt:       d.StartedAt,
		SubmittedAt:     d.SubmittedAt,
		IPAddress:       util.NullString(d.IPAddress),
		UserAgent:       util.NullString(d.UserAgent),
		Flagged:         boolToInt(d.Flagged),
		FlagReason:      util.NullString(d.FlagReason),
		ReviewedBy:      util.NullString(d.ReviewedBy),
		ReviewedAt:      util.NullTime(d.ReviewedAt),
		Feedback:        util.NullString(d.Feedback),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Create inserts a fully graded attempt. ID and timestamps are filled in when empty.
func (r *sqlxAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	now := time.Now().UTC()
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = now
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	attempt.UpdatedAt = attempt.CreatedAt

	m := fromDomainAttempt(attempt)
	answers, err := m.Answers.Value()
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	results, err := m.QuestionResults.Value()
	if err != nil {
		return fmt.Errorf("failed to encode question results: %w", err)
	}

	query := `INSERT INTO attempts (id, user_id, test_id, answers, question_results, score, total_points,
		percentage, category, time_spent, tab_switch_count, is_completed, started_at, submitted_at,
		ip_address, user_agent, flagged, flag_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	db := GetExecutor(ctx, r.db)
	_, err = db.ExecContext(ctx, db.Rebind(query),
		m.ID,
		m.UserID,
		m.TestID,
		answers,
		results,
		m.Score,
		m.TotalPoints,
		m.Percentage,
		m.Category,
		m.TimeSpent,
		m.TabSwitchCount,
		m.IsCompleted,
		m.StartedAt,
		m.SubmittedAt,
		m.IPAddress,
		m.UserAgent,
		m.Flagged,
		m.FlagReason,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

func (r *sqlxAttemptRepository) GetByID(ctx context.Context, id string) (*domain.Attempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM attempts a WHERE a.id = ?`, attemptColumns)

	db := GetExecutor(ctx, r.db)
	var m models.Attempt
	if err := db.GetContext(ctx, &m, db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", id, err)
	}
	return toDomainAttempt(&m), nil
}

// buildAttemptListQuery returns the page query, the count query and the
// shared filter arguments. Paging arguments are appended by the caller.
func buildAttemptListQuery(filter domain.AttemptFilter) (string, string, []interface{}) {
	whereClauses := []string{"a.is_completed = 1"}
	var args []interface{}

	if filter.UserID != "" {
		whereClauses = append(whereClauses, "a.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.TestID != "" {
		whereClauses = append(whereClauses, "a.test_id = ?")
		args = append(args, filter.TestID)
	}
	if filter.Flagged != nil {
		whereClauses = append(whereClauses, "a.flagged = ?")
		args = append(args, boolToInt(*filter.Flagged))
	}

	queryWhere := "WHERE " + strings.Join(whereClauses, " AND ")
	resultsQuery := fmt.Sprintf("SELECT %s FROM attempts a %s ORDER BY a.submitted_at DESC, a.id DESC OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", attemptColumns, queryWhere)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attempts a %s", queryWhere)
	return resultsQuery, countQuery, args
}

func normalizePage(page domain.Page) domain.Page {
	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}
	if page.Limit > maxListLimit {
		page.Limit = maxListLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

// List returns completed attempts, newest first, and the total matching count.
func (r *sqlxAttemptRepository) List(ctx context.Context, filter domain.AttemptFilter, page domain.Page) ([]domain.Attempt, int, error) {
	page = normalizePage(page)
	resultsQuery, countQuery, args := buildAttemptListQuery(filter)

	db := GetExecutor(ctx, r.db)

	var total int
	if err := db.GetContext(ctx, &total, db.Rebind(countQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	pageArgs := append(append([]interface{}{}, args...), page.Offset, page.Limit)
	var rows []models.Attempt
	if err := db.SelectContext(ctx, &rows, db.Rebind(resultsQuery), pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, *toDomainAttempt(&rows[i]))
	}
	return attempts, total, nil
}

func (r *sqlxAttemptRepository) CountCompleted(ctx context.Context, userID, testID string) (int, error) {
	query := `SELECT COUNT(*) FROM attempts WHERE user_id = ? AND test_id = ? AND is_completed = 1`

	db := GetExecutor(ctx, r.db)
	var count int
	if err := db.GetContext(ctx, &count, db.Rebind(query), userID, testID); err != nil {
		return 0, fmt.Errorf("failed to count completed attempts: %w", err)
	}
	return count, nil
}

// UpdateReview writes only the review columns and, when asked, clears the flag.
func (r *sqlxAttemptRepository) UpdateReview(ctx context.Context, id, reviewerID string, reviewedAt time.Time, input domain.ReviewInput) error {
	setClauses := []string{"reviewed_by = ?", "reviewed_at = ?", "updated_at = ?"}
	args := []interface{}{reviewerID, reviewedAt, reviewedAt}

	if input.Feedback != "" {
		setClauses = append(setClauses, "feedback = ?")
		args = append(args, input.Feedback)
	}
	if input.Unflag {
		setClauses = append(setClauses, "flagged = 0")
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE attempts SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	db := GetExecutor(ctx, r.db)
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update attempt review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("Attempt not found")
	}
	return nil
}

func (r *sqlxAttemptRepository) Leaderboard(ctx context.Context, testID string, limit int) ([]domain.Attempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM attempts a WHERE a.test_id = ? AND a.is_completed = 1
		ORDER BY %s FETCH FIRST ? ROWS ONLY`, attemptColumns, leaderboardOrder)

	db := GetExecutor(ctx, r.db)
	var rows []models.Attempt
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), testID, limit); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard for test %s: %w", testID, err)
	}

	attempts := make([]domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, *toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

// BestAttempt returns nil, nil when the user has no completed attempt for the test.
func (r *sqlxAttemptRepository) BestAttempt(ctx context.Context, userID, testID string) (*domain.Attempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM attempts a WHERE a.user_id = ? AND a.test_id = ? AND a.is_completed = 1
		ORDER BY %s FETCH FIRST 1 ROWS ONLY`, attemptColumns, leaderboardOrder)

	db := GetExecutor(ctx, r.db)
	var m models.Attempt
	if err := db.GetContext(ctx, &m, db.Rebind(query), userID, testID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get best attempt: %w", err)
	}
	return toDomainAttempt(&m), nil
}
