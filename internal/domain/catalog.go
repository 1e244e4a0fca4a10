package domain

import (
	"strings"
	"time"
)

type QuestionType string

const (
	QuestionObjective  QuestionType = "objective"
	QuestionSubjective QuestionType = "subjective"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulty tiers.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	MaxCorrectAnswerLength = 500
	MinQuestionPoints      = 1
	MaxQuestionPoints      = 100
	MinTimeLimitMinutes    = 5
	MaxTimeLimitMinutes    = 180
	DefaultMaxAttempts     = 3
)

// Question is a canonical bank entry.
type Question struct {
	ID            string
	Subject       string
	Class         string
	Difficulty    Difficulty
	Type          QuestionType
	Prompt        string
	Options       []string
	CorrectAnswer string
	Points        int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Question) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(q.Subject) == "" {
		errs = append(errs, NewMissingFieldError("subject"))
	}
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, NewMissingFieldError("prompt"))
	}
	if !q.Difficulty.IsValid() {
		errs = append(errs, NewInvalidFormatError("difficulty", q.Difficulty))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		errs = append(errs, NewMissingFieldError("correctAnswer"))
	} else if len(q.CorrectAnswer) > MaxCorrectAnswerLength {
		errs = append(errs, NewOutOfRangeError("correctAnswer", len(q.CorrectAnswer), 1, MaxCorrectAnswerLength))
	}
	if q.Points < MinQuestionPoints || q.Points > MaxQuestionPoints {
		errs = append(errs, NewOutOfRangeError("points", q.Points, MinQuestionPoints, MaxQuestionPoints))
	}

	switch q.Type {
	case QuestionObjective:
		if len(q.Options) < 2 {
			errs = append(errs, ValidationError{Field: "options", Code: CodeOutOfRange, Message: "objective questions need at least 2 options", Value: len(q.Options)})
		} else if !containsOption(q.Options, q.CorrectAnswer) {
			errs = append(errs, ValidationError{Field: "correctAnswer", Code: CodeInvalidFormat, Message: "correctAnswer must be one of the options", Value: q.CorrectAnswer})
		}
	case QuestionSubjective:
	default:
		errs = append(errs, NewInvalidFormatError("type", q.Type))
	}

	return errs
}

func containsOption(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}

// Schedule is an optional availability window.
type Schedule struct {
	StartDate *time.Time
	EndDate   *time.Time
	Timezone  string
}

type TestSettings struct {
	// MaxAttempts of 0 means unlimited.
	MaxAttempts      int
	ShuffleQuestions bool
	ShuffleOptions   bool
	ShowResults      bool
	AllowReview      bool
}

// TestQuestion is the scoring view of a question referenced by a test.
type TestQuestion struct {
	ID            string
	CorrectAnswer string
	Points        int
}

// TestDefinition is what the validator and scorer consume.
type TestDefinition struct {
	ID          string
	Title       string
	Subject     string
	Class       string
	Difficulty  Difficulty
	Questions   []TestQuestion
	TimeLimit   int
	TotalPoints int
	IsActive    bool
	Settings    TestSettings
	Schedule    Schedule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecomputeTotalPoints must be called whenever Questions changes.
func (t *TestDefinition) RecomputeTotalPoints() int {
	total := 0
	for _, q := range t.Questions {
		total += q.Points
	}
	t.TotalPoints = total
	return total
}

func (t *TestDefinition) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if strings.TrimSpace(t.Subject) == "" {
		errs = append(errs, NewMissingFieldError("subject"))
	}
	if len(t.Questions) == 0 {
		errs = append(errs, NewMissingFieldError("questions"))
	}
	if t.TimeLimit < MinTimeLimitMinutes || t.TimeLimit > MaxTimeLimitMinutes {
		errs = append(errs, NewOutOfRangeError("timeLimit", t.TimeLimit, MinTimeLimitMinutes, MaxTimeLimitMinutes))
	}
	if t.Settings.MaxAttempts < 0 {
		errs = append(errs, NewMinValueError("settings.maxAttempts", t.Settings.MaxAttempts, 0))
	}
	if t.Schedule.StartDate != nil && t.Schedule.EndDate != nil && t.Schedule.EndDate.Before(*t.Schedule.StartDate) {
		errs = append(errs, ValidationError{Field: "schedule.endDate", Code: CodeOutOfRange, Message: "endDate must not be before startDate"})
	}

	seen := make(map[string]struct{}, len(t.Questions))
	for _, q := range t.Questions {
		if _, dup := seen[q.ID]; dup {
			errs = append(errs, ValidationError{Field: "questions", Code: CodeInvalidFormat, Message: "duplicate question reference", Value: q.ID})
		}
		seen[q.ID] = struct{}{}
	}

	return errs
}
