package domain

import "strings"

// ScoreResult is the scorer output for one submission.
type ScoreResult struct {
	Score       int
	TotalPoints int
	Percentage  int
	Category    Category
	Results     []QuestionResult
	// Answers holds the submitted answer for every canonical question, "" when absent.
	Answers map[string]string
}

// Score grades answers against the canonical questions. Answer keys that do
// not name a question are ignored.
func Score(questions []TestQuestion, answers map[string]string) (*ScoreResult, error) {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	if total <= 0 {
		return nil, NewPreconditionFailedError("Test has no scorable points")
	}

	result := &ScoreResult{
		TotalPoints: total,
		Results:     make([]QuestionResult, 0, len(questions)),
		Answers:     make(map[string]string, len(questions)),
	}

	for _, q := range questions {
		submitted := answers[q.ID]
		correct := AnswersMatch(submitted, q.CorrectAnswer)
		awarded := 0
		if correct {
			awarded = q.Points
			result.Score += q.Points
		}
		result.Answers[q.ID] = submitted
		result.Results = append(result.Results, QuestionResult{
			QuestionID:      q.ID,
			SubmittedAnswer: submitted,
			CorrectAnswer:   q.CorrectAnswer,
			IsCorrect:       correct,
			Points:          q.Points,
			PointsAwarded:   awarded,
		})
	}

	pct, err := Percentage(result.Score, total)
	if err != nil {
		return nil, err
	}
	result.Percentage = pct
	result.Category = CategoryFor(pct)
	return result, nil
}

// AnswersMatch compares case-insensitively after trimming surrounding whitespace.
func AnswersMatch(submitted, canonical string) bool {
	return normalizeAnswer(submitted) == normalizeAnswer(canonical)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Percentage returns round(100*score/total) with halves rounded up.
func Percentage(score, total int) (int, error) {
	if total <= 0 {
		return 0, NewPreconditionFailedError("Test has no scorable points")
	}
	if score < 0 || score > total {
		return 0, NewInternalError("score out of range", nil).
			WithContext("score", score).
			WithContext("totalPoints", total)
	}
	return (200*score + total) / (2 * total), nil
}

// CategoryFor maps a percentage to its performance tier.
func CategoryFor(percentage int) Category {
	switch {
	case percentage >= 90:
		return CategoryExpert
	case percentage >= 75:
		return CategoryAdvanced
	case percentage >= 60:
		return CategoryIntermediate
	default:
		return CategoryBeginner
	}
}
