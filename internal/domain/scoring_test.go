package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionTest() []TestQuestion {
	return []TestQuestion{
		{ID: "q1", CorrectAnswer: "Paris", Points: 10},
		{ID: "q2", CorrectAnswer: "4", Points: 15},
	}
}

func TestScore_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		answers      map[string]string
		wantScore    int
		wantPct      int
		wantCategory Category
	}{
		{
			name:         "all correct",
			answers:      map[string]string{"q1": "Paris", "q2": "4"},
			wantScore:    25,
			wantPct:      100,
			wantCategory: CategoryExpert,
		},
		{
			name:         "only ten point question correct",
			answers:      map[string]string{"q1": "paris", "q2": "5"},
			wantScore:    10,
			wantPct:      40,
			wantCategory: CategoryBeginner,
		},
		{
			name:         "case and whitespace are ignored",
			answers:      map[string]string{"q1": "  PARIS ", "q2": "\t4\n"},
			wantScore:    25,
			wantPct:      100,
			wantCategory: CategoryExpert,
		},
		{
			name:         "missing answers score zero",
			answers:      map[string]string{},
			wantScore:    0,
			wantPct:      0,
			wantCategory: CategoryBeginner,
		},
		{
			name:         "unknown keys are ignored",
			answers:      map[string]string{"q2": "4", "bogus": "Paris"},
			wantScore:    15,
			wantPct:      60,
			wantCategory: CategoryIntermediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(twoQuestionTest(), tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, 25, res.TotalPoints)
			assert.Equal(t, tt.wantPct, res.Percentage)
			assert.Equal(t, tt.wantCategory, res.Category)
			assert.Len(t, res.Results, 2)
			assert.Len(t, res.Answers, 2)
			assert.NotContains(t, res.Answers, "bogus")
		})
	}
}

func TestScore_PerQuestionDetail(t *testing.T) {
	res, err := Score(twoQuestionTest(), map[string]string{"q1": "Paris"})
	require.NoError(t, err)

	assert.Equal(t, QuestionResult{QuestionID: "q1", SubmittedAnswer: "Paris", CorrectAnswer: "Paris", IsCorrect: true, Points: 10, PointsAwarded: 10}, res.Results[0])
	assert.Equal(t, QuestionResult{QuestionID: "q2", SubmittedAnswer: "", CorrectAnswer: "4", IsCorrect: false, Points: 15, PointsAwarded: 0}, res.Results[1])
	assert.Equal(t, "", res.Answers["q2"])
}

func TestScore_ZeroTotalPointsFailsFast(t *testing.T) {
	for _, qs := range [][]TestQuestion{nil, {{ID: "q1", CorrectAnswer: "a", Points: 0}}} {
		res, err := Score(qs, map[string]string{"q1": "a"})
		assert.Nil(t, res)
		var domainErr *DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, CodePreconditionFailed, domainErr.Code)
	}
}

func TestScore_Monotonic(t *testing.T) {
	questions := []TestQuestion{
		{ID: "a", CorrectAnswer: "x", Points: 3},
		{ID: "b", CorrectAnswer: "y", Points: 7},
		{ID: "c", CorrectAnswer: "z", Points: 1},
	}
	answers := map[string]string{"a": "wrong", "b": "wrong", "c": "wrong"}

	prev, err := Score(questions, answers)
	require.NoError(t, err)
	for _, q := range questions {
		answers[q.ID] = q.CorrectAnswer
		next, err := Score(questions, answers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.Score, prev.Score)
		assert.GreaterOrEqual(t, next.Percentage, prev.Percentage)
		prev = next
	}
	assert.Equal(t, 100, prev.Percentage)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 25, 0},
		{25, 25, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
		{1, 201, 0},
	}
	for _, tt := range tests {
		got, err := Percentage(tt.score, tt.total)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Percentage(%d, %d)", tt.score, tt.total)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}

	_, err := Percentage(1, 0)
	assert.Error(t, err)
	_, err = Percentage(30, 25)
	assert.Error(t, err)
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Category
	}{
		{100, CategoryExpert},
		{90, CategoryExpert},
		{89, CategoryAdvanced},
		{75, CategoryAdvanced},
		{74, CategoryIntermediate},
		{60, CategoryIntermediate},
		{59, CategoryBeginner},
		{0, CategoryBeginner},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFor(tt.pct), "CategoryFor(%d)", tt.pct)
	}
}
