package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/repository/models"
	"quiz-arena/internal/util"
)

const testColumns = `t.id "id", t.title "title", t.subject "subject", t.class_level "class_level",
	t.difficulty "difficulty", t.time_limit "time_limit", t.total_points "total_points", t.is_active "is_active",
	t.max_attempts "max_attempts", t.shuffle_questions "shuffle_questions", t.shuffle_options "shuffle_options",
	t.show_results "show_results", t.allow_review "allow_review", t.start_date "start_date", t.end_date "end_date",
	t.schedule_timezone "schedule_timezone", t.created_at "created_at", t.updated_at "updated_at"`

// CatalogDatabaseAdapter reads tests and questions. It is also the write path
// for fixture loading.
type CatalogDatabaseAdapter struct {
	db DBTX
}

func NewCatalogDatabaseAdapter(db DBTX) domain.CatalogRepository {
	return &CatalogDatabaseAdapter{db: db}
}

func toDomainTest(m *models.Test) *domain.TestDefinition {
	if m == nil {
		return nil
	}
	td := &domain.TestDefinition{
		ID:          m.ID,
		Title:       m.Title,
		Subject:     m.Subject,
		Class:       m.ClassLevel,
		Difficulty:  domain.Difficulty(m.Difficulty),
		TimeLimit:   m.TimeLimit,
		TotalPoints: m.TotalPoints,
		IsActive:    m.IsActive == 1,
		Settings: domain.TestSettings{
			MaxAttempts:      m.MaxAttempts,
			ShuffleQuestions: m.ShuffleQuestions == 1,
			ShuffleOptions:   m.ShuffleOptions == 1,
			ShowResults:      m.ShowResults == 1,
			AllowReview:      m.AllowReview == 1,
		},
		Schedule: domain.Schedule{
			StartDate: util.TimePtr(m.StartDate),
			EndDate:   util.TimePtr(m.EndDate),
			Timezone:  m.Timezone.String,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	return td
}

func (a *CatalogDatabaseAdapter) getTestRow(ctx context.Context, id string, forUpdate bool) (*domain.TestDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM tests t WHERE t.id = ?`, testColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}

	db := GetExecutor(ctx, a.db)
	var m models.Test
	if err := db.GetContext(ctx, &m, db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test %s: %w", id, err)
	}
	return toDomainTest(&m), nil
}

// GetTest loads the test and its questions in their configured order.
func (a *CatalogDatabaseAdapter) GetTest(ctx context.Context, id string) (*domain.TestDefinition, error) {
	td, err := a.getTestRow(ctx, id, false)
	if err != nil || td == nil {
		return td, err
	}

	query := `SELECT q.id "id", q.correct_answer "correct_answer", q.points "points"
		FROM test_questions tq JOIN questions q ON q.id = tq.question_id
		WHERE tq.test_id = ? ORDER BY tq.position ASC`

	db := GetExecutor(ctx, a.db)
	var rows []models.TestQuestion
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to load questions for test %s: %w", id, err)
	}

	td.Questions = make([]domain.TestQuestion, 0, len(rows))
	for _, r := range rows {
		td.Questions = append(td.Questions, domain.TestQuestion{ID: r.ID, CorrectAnswer: r.CorrectAnswer, Points: r.Points})
	}
	return td, nil
}

// LockTest must run inside a transaction; the row lock is released on commit or rollback.
func (a *CatalogDatabaseAdapter) LockTest(ctx context.Context, id string) (*domain.TestDefinition, error) {
	return a.getTestRow(ctx, id, true)
}

func (a *CatalogDatabaseAdapter) SaveQuestion(ctx context.Context, q *domain.Question) error {
	if errs := q.Validate(); len(errs) > 0 {
		return errs
	}
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	m := models.Question{
		ID:            q.ID,
		Subject:       q.Subject,
		ClassLevel:    q.Class,
		Difficulty:    string(q.Difficulty),
		QuestionType:  string(q.Type),
		Prompt:        q.Prompt,
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		IsActive:      boolToInt(q.IsActive),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	options, err := m.Options.Value()
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	query := `INSERT INTO questions (id, subject, class_level, difficulty, question_type, prompt, options_json,
		correct_answer, points, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	db := GetExecutor(ctx, a.db)
	if _, err := db.ExecContext(ctx, db.Rebind(query),
		m.ID, m.Subject, m.ClassLevel, m.Difficulty, m.QuestionType, m.Prompt, options,
		m.CorrectAnswer, m.Points, m.IsActive, m.CreatedAt, m.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// SaveTest recomputes TotalPoints from the referenced questions before inserting
// the test row and its ordered question links.
func (a *CatalogDatabaseAdapter) SaveTest(ctx context.Context, t *domain.TestDefinition) error {
	t.RecomputeTotalPoints()
	if errs := t.Validate(); len(errs) > 0 {
		return errs
	}
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = util.NewULID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	start, end := util.NullTime(t.Schedule.StartDate), util.NullTime(t.Schedule.EndDate)

	query := `INSERT INTO tests (id, title, subject, class_level, difficulty, time_limit, total_points, is_active,
		max_attempts, shuffle_questions, shuffle_options, show_results, allow_review, start_date, end_date,
		schedule_timezone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	db := GetExecutor(ctx, a.db)
	if _, err := db.ExecContext(ctx, db.Rebind(query),
		t.ID, t.Title, t.Subject, t.Class, string(t.Difficulty), t.TimeLimit, t.TotalPoints, boolToInt(t.IsActive),
		t.Settings.MaxAttempts, boolToInt(t.Settings.ShuffleQuestions), boolToInt(t.Settings.ShuffleOptions),
		boolToInt(t.Settings.ShowResults), boolToInt(t.Settings.AllowReview), start, end,
		util.NullString(t.Schedule.Timezone), t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save test: %w", err)
	}

	linkQuery := db.Rebind(`INSERT INTO test_questions (test_id, question_id, position) VALUES (?, ?, ?)`)
	for i, q := range t.Questions {
		if _, err := db.ExecContext(ctx, linkQuery, t.ID, q.ID, i+1); err != nil {
			return fmt.Errorf("failed to link question %s to test %s: %w", q.ID, t.ID, err)
		}
	}
	return nil
}
