package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var attemptRowColumns = []string{
	"id", "user_id", "test_id", "answers", "question_results", "score", "total_points", "percentage",
	"category", "time_spent", "tab_switch_count", "is_completed", "started_at", "submitted_at",
	"ip_address", "user_agent", "flagged", "flag_reason", "reviewed_by", "reviewed_at", "feedback",
	"created_at", "updated_at",
}

func addAttemptRow(rows *sqlmock.Rows, id, userID string, score, timeSpent int, submittedAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, userID, "test-1", `{"q1":"Paris","q2":"4"}`,
		`[{"questionId":"q1","submittedAnswer":"Paris","correctAnswer":"Paris","isCorrect":true,"points":10,"pointsAwarded":10}]`,
		score, 25, score*4, string(domain.CategoryFor(score*4)), timeSpent, 0, 1,
		submittedAt.Add(-time.Duration(timeSpent)*time.Second), submittedAt,
		"127.0.0.1", "go-test", 0, nil, nil, nil, nil,
		submittedAt, submittedAt,
	)
}

func TestToDomainAttempt(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	m := &models.Attempt{
		ID:              "a1",
		UserID:          "u1",
		TestID:          "t1",
		Answers:         models.AnswerMap{"q1": "x"},
		QuestionResults: models.QuestionResults{{QuestionID: "q1", SubmittedAnswer: "x", CorrectAnswer: "x", IsCorrect: true, Points: 5, PointsAwarded: 5}},
		Score:           5,
		TotalPoints:     5,
		Percentage:      100,
		Category:        "Expert",
		IsCompleted:     1,
		Flagged:         1,
		FlagReason:      sql.NullString{String: domain.FlagReasonFastFinish, Valid: true},
		ReviewedAt:      sql.NullTime{Time: now, Valid: true},
		SubmittedAt:     now,
	}

	d := toDomainAttempt(m)
	require.NotNil(t, d)
	assert.True(t, d.IsCompleted)
	assert.True(t, d.Flagged)
	assert.Equal(t, domain.CategoryExpert, d.Category)
	assert.Equal(t, "x", d.Answers["q1"])
	assert.True(t, d.QuestionResults[0].IsCorrect)
	require.NotNil(t, d.ReviewedAt)
	assert.Equal(t, now, *d.ReviewedAt)
	assert.Equal(t, "", d.ReviewedBy)

	back := fromDomainAttempt(d)
	assert.Equal(t, 1, back.Flagged)
	assert.Equal(t, 1, back.IsCompleted)
	assert.False(t, back.ReviewedBy.Valid)
	assert.Equal(t, m.QuestionResults, back.QuestionResults)

	assert.Nil(t, toDomainAttempt(nil))
	assert.Nil(t, fromDomainAttempt(nil))
}

func TestAttemptRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	attempt := &domain.Attempt{
		UserID:      "u1",
		TestID:      "t1",
		Answers:     map[string]string{"q1": "Paris"},
		Score:       10,
		TotalPoints: 25,
		Percentage:  40,
		Category:    domain.CategoryBeginner,
		TimeSpent:   120,
		IsCompleted: true,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attempts (id, user_id, test_id, answers, question_results`)).
		WithArgs(sqlmock.AnyArg(), "u1", "t1", `{"q1":"Paris"}`, "[]", 10, 25, 40, "Beginner", 120, 0, 1,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 0, sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), attempt)
	require.NoError(t, err)
	assert.Len(t, attempt.ID, 26)
	assert.False(t, attempt.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_Create_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attempts`)).WillReturnError(errors.New("ORA-00001"))

	err := repo.Create(context.Background(), &domain.Attempt{ID: "a1"})
	assert.ErrorContains(t, err, "failed to create attempt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_GetByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Found", func(t *testing.T) {
		rows := addAttemptRow(sqlmock.NewRows(attemptRowColumns), "a1", "u1", 25, 120, now)
		mock.ExpectQuery(`(?s)SELECT (.+) FROM attempts a WHERE a.id = \?`).WithArgs("a1").WillReturnRows(rows)

		attempt, err := repo.GetByID(context.Background(), "a1")
		require.NoError(t, err)
		require.NotNil(t, attempt)
		assert.Equal(t, "a1", attempt.ID)
		assert.Equal(t, 100, attempt.Percentage)
		assert.Equal(t, "Paris", attempt.Answers["q1"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT (.+) FROM attempts a WHERE a.id = \?`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		attempt, err := repo.GetByID(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, attempt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuildAttemptListQuery(t *testing.T) {
	flagged := true
	results, count, args := buildAttemptListQuery(domain.AttemptFilter{UserID: "u1", TestID: "t1", Flagged: &flagged})

	assert.Contains(t, results, "WHERE a.is_completed = 1 AND a.user_id = ? AND a.test_id = ? AND a.flagged = ?")
	assert.Contains(t, results, "ORDER BY a.submitted_at DESC, a.id DESC OFFSET ? ROWS FETCH NEXT ? ROWS ONLY")
	assert.Equal(t, "SELECT COUNT(*) FROM attempts a WHERE a.is_completed = 1 AND a.user_id = ? AND a.test_id = ? AND a.flagged = ?", count)
	assert.Equal(t, []interface{}{"u1", "t1", 1}, args)

	_, count, args = buildAttemptListQuery(domain.AttemptFilter{})
	assert.Equal(t, "SELECT COUNT(*) FROM attempts a WHERE a.is_completed = 1", count)
	assert.Empty(t, args)
}

func TestAttemptRepository_List(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM attempts a WHERE a.is_completed = 1 AND a.user_id = ?`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(attemptRowColumns)
	addAttemptRow(rows, "a2", "u1", 20, 90, now)
	addAttemptRow(rows, "a1", "u1", 10, 60, now.Add(-time.Hour))
	mock.ExpectQuery(`(?s)SELECT (.+) FROM attempts a WHERE a.is_completed = 1 AND a.user_id = \? ORDER BY a.submitted_at DESC`).
		WithArgs("u1", 10, 10).
		WillReturnRows(rows)

	attempts, total, err := repo.List(context.Background(), domain.AttemptFilter{UserID: "u1"}, domain.Page{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, attempts, 2)
	assert.Equal(t, "a2", attempts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, domain.Page{Limit: defaultListLimit, Offset: 0}, normalizePage(domain.Page{Limit: 0, Offset: -5}))
	assert.Equal(t, domain.Page{Limit: maxListLimit, Offset: 20}, normalizePage(domain.Page{Limit: 1000, Offset: 20}))
}

func TestAttemptRepository_CountCompleted(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM attempts WHERE user_id = ? AND test_id = ? AND is_completed = 1`)).
		WithArgs("u1", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountCompleted(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_UpdateReview(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)
	reviewedAt := time.Now().UTC()

	t.Run("FeedbackAndUnflag", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE attempts SET reviewed_by = ?, reviewed_at = ?, updated_at = ?, feedback = ?, flagged = 0 WHERE id = ?`)).
			WithArgs("admin-1", reviewedAt, reviewedAt, "Looks fine", "a1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateReview(context.Background(), "a1", "admin-1", reviewedAt, domain.ReviewInput{Feedback: "Looks fine", Unflag: true})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReviewOnly", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE attempts SET reviewed_by = ?, reviewed_at = ?, updated_at = ? WHERE id = ?`)).
			WithArgs("admin-1", reviewedAt, reviewedAt, "a1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateReview(context.Background(), "a1", "admin-1", reviewedAt, domain.ReviewInput{})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE attempts SET`)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateReview(context.Background(), "nope", "admin-1", reviewedAt, domain.ReviewInput{})
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttemptRepository_Leaderboard(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	rows := sqlmock.NewRows(attemptRowColumns)
	addAttemptRow(rows, "a1", "u1", 25, 60, now)
	addAttemptRow(rows, "a2", "u2", 25, 90, now)
	addAttemptRow(rows, "a3", "u3", 10, 30, now)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY a.score DESC, a.time_spent ASC, a.submitted_at ASC, a.id ASC FETCH FIRST ? ROWS ONLY`)).
		WithArgs("test-1", 3).
		WillReturnRows(rows)

	entries, err := repo.Leaderboard(context.Background(), "test-1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		assert.True(t, prev.Score > cur.Score || (prev.Score == cur.Score && prev.TimeSpent <= cur.TimeSpent))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_BestAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FETCH FIRST 1 ROWS ONLY`)).
		WithArgs("u1", "t1").
		WillReturnError(sql.ErrNoRows)

	best, err := repo.BestAttempt(context.Background(), "u1", "t1")
	assert.NoError(t, err)
	assert.Nil(t, best)
	assert.NoError(t, mock.ExpectationsWereMet())
}
