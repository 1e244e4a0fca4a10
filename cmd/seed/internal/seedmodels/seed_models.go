package seedmodels

import (
	"fmt"
	"time"

	"quiz-arena/internal/domain"

	"gopkg.in/yaml.v3"
)

// SeedQuestion defines a question in the YAML catalog. Key is local to the
// file and only used to reference the question from tests.
type SeedQuestion struct {
	Key           string   `yaml:"key"`
	Subject       string   `yaml:"subject"`
	Class         string   `yaml:"class"`
	Difficulty    string   `yaml:"difficulty"`
	Type          string   `yaml:"type"`
	Prompt        string   `yaml:"prompt"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Points        int      `yaml:"points"`
}

type SeedSchedule struct {
	StartDate *time.Time `yaml:"start_date"`
	EndDate   *time.Time `yaml:"end_date"`
	Timezone  string     `yaml:"timezone"`
}

// SeedTest defines a test. Questions lists question keys in display order.
type SeedTest struct {
	Title       string       `yaml:"title"`
	Subject     string       `yaml:"subject"`
	Class       string       `yaml:"class"`
	Difficulty  string       `yaml:"difficulty"`
	TimeLimit   int          `yaml:"time_limit"`
	MaxAttempts *int         `yaml:"max_attempts"`
	ShowResults bool         `yaml:"show_results"`
	AllowReview bool         `yaml:"allow_review"`
	Inactive    bool         `yaml:"inactive"`
	Schedule    SeedSchedule `yaml:"schedule"`
	Questions   []string     `yaml:"questions"`
}

type SeedCatalog struct {
	Questions []SeedQuestion `yaml:"questions"`
	Tests     []SeedTest     `yaml:"tests"`
}

func Parse(raw []byte) (*SeedCatalog, error) {
	var c SeedCatalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return &c, nil
}

// Build converts the catalog into domain objects. Question IDs are left empty
// and must be assigned by SaveQuestion before tests are linked, so tests are
// returned as closures over the saved questions.
func (c *SeedCatalog) Build() ([]*domain.Question, func() ([]*domain.TestDefinition, error), error) {
	byKey := make(map[string]*domain.Question, len(c.Questions))
	questions := make([]*domain.Question, 0, len(c.Questions))
	for i, sq := range c.Questions {
		if sq.Key == "" {
			return nil, nil, fmt.Errorf("question %d has no key", i)
		}
		if _, dup := byKey[sq.Key]; dup {
			return nil, nil, fmt.Errorf("duplicate question key %q", sq.Key)
		}
		q := &domain.Question{
			Subject:       sq.Subject,
			Class:         sq.Class,
			Difficulty:    domain.Difficulty(sq.Difficulty),
			Type:          domain.QuestionType(sq.Type),
			Prompt:        sq.Prompt,
			Options:       sq.Options,
			CorrectAnswer: sq.CorrectAnswer,
			Points:        sq.Points,
			IsActive:      true,
		}
		byKey[sq.Key] = q
		questions = append(questions, q)
	}

	for _, st := range c.Tests {
		for _, key := range st.Questions {
			if _, ok := byKey[key]; !ok {
				return nil, nil, fmt.Errorf("test %q references unknown question %q", st.Title, key)
			}
		}
	}

	buildTests := func() ([]*domain.TestDefinition, error) {
		tests := make([]*domain.TestDefinition, 0, len(c.Tests))
		for _, st := range c.Tests {
			maxAttempts := domain.DefaultMaxAttempts
			if st.MaxAttempts != nil {
				maxAttempts = *st.MaxAttempts
			}
			t := &domain.TestDefinition{
				Title:      st.Title,
				Subject:    st.Subject,
				Class:      st.Class,
				Difficulty: domain.Difficulty(st.Difficulty),
				TimeLimit:  st.TimeLimit,
				IsActive:   !st.Inactive,
				Settings: domain.TestSettings{
					MaxAttempts: maxAttempts,
					ShowResults: st.ShowResults,
					AllowReview: st.AllowReview,
				},
				Schedule: domain.Schedule{
					StartDate: st.Schedule.StartDate,
					EndDate:   st.Schedule.EndDate,
					Timezone:  st.Schedule.Timezone,
				},
			}
			for _, key := range st.Questions {
				q := byKey[key]
				if q.ID == "" {
					return nil, fmt.Errorf("question %q was not saved before test %q", key, st.Title)
				}
				t.Questions = append(t.Questions, domain.TestQuestion{ID: q.ID, CorrectAnswer: q.CorrectAnswer, Points: q.Points})
			}
			tests = append(tests, t)
		}
		return tests, nil
	}

	return questions, buildTests, nil
}
