package domain

import (
	"math"
	"sort"
	"time"
)

const (
	RecentActivityDays = 30
	TopPerformersLimit = 10
	DefaultTestRollups = 10
	StudentRecentLimit = 20
	TestReportTopLimit = 50
	activityDateLayout = "2006-01-02"
)

type SubjectPerformance struct {
	Subject       string  `json:"subject"`
	TotalAttempts int     `json:"totalAttempts"`
	AvgPercentage float64 `json:"avgPercentage"`
	MaxPercentage int     `json:"maxPercentage"`
	MinPercentage int     `json:"minPercentage"`
}

type TopPerformer struct {
	UserID        string  `json:"userId"`
	TotalAttempts int     `json:"totalAttempts"`
	AvgPercentage float64 `json:"avgPercentage"`
	TotalScore    int     `json:"totalScore"`
}

// ActivitySample is one committed attempt reduced to what daily bucketing needs.
type ActivitySample struct {
	SubmittedAt time.Time
	Percentage  int
}

type DailyActivity struct {
	Date          string  `json:"date"`
	Attempts      int     `json:"attempts"`
	AvgPercentage float64 `json:"avgPercentage"`
}

type TestRollup struct {
	TestID        string  `json:"testId"`
	Title         string  `json:"title"`
	Subject       string  `json:"subject"`
	TotalAttempts int     `json:"totalAttempts"`
	AvgPercentage float64 `json:"avgPercentage"`
}

type DifficultyCount struct {
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

type Totals struct {
	Students  int `json:"students"`
	Tests     int `json:"tests"`
	Questions int `json:"questions"`
	Attempts  int `json:"attempts"`
}

type AttemptStats struct {
	TotalAttempts   int     `json:"totalAttempts"`
	AverageScore    float64 `json:"averageScore"`
	FlaggedAttempts int     `json:"flaggedAttempts"`
}

// StudentSummary aggregates one user's completed attempts.
type StudentSummary struct {
	TotalAttempts  int     `json:"totalAttempts"`
	AvgPercentage  float64 `json:"avgPercentage"`
	BestPercentage int     `json:"bestPercentage"`
	TotalTimeSpent int     `json:"totalTimeSpent"`
}

// TestSummary aggregates all completed attempts of one test.
type TestSummary struct {
	TotalAttempts     int     `json:"totalAttempts"`
	AvgPercentage     float64 `json:"avgPercentage"`
	HighestPercentage int     `json:"highestPercentage"`
	LowestPercentage  int     `json:"lowestPercentage"`
	AvgTimeSpent      float64 `json:"avgTimeSpent"`
}

// DashboardOverview is the admin analytics page, assembled per request.
type DashboardOverview struct {
	Totals                 Totals               `json:"totals"`
	SubjectPerformance     []SubjectPerformance `json:"subjectPerformance"`
	TopPerformers          []TopPerformer       `json:"topPerformers"`
	RecentActivity         []DailyActivity      `json:"recentActivity"`
	TestRollups            []TestRollup         `json:"testRollups"`
	DifficultyDistribution []DifficultyCount    `json:"difficultyDistribution"`
}

type AttemptStatsOverview struct {
	AttemptStats
	CategoryDistribution map[Category]int `json:"categoryDistribution"`
}

type StudentReport struct {
	UserID         string
	Summary        StudentSummary
	Subjects       []SubjectPerformance
	RecentAttempts []Attempt
}

type TestReport struct {
	Test                 *TestDefinition
	Summary              TestSummary
	CategoryDistribution map[Category]int
	TopAttempts          []Attempt
}

// BucketDaily groups samples submitted at or after since into UTC calendar
// days. Only days with at least one attempt are returned, oldest first.
func BucketDaily(samples []ActivitySample, since time.Time) []DailyActivity {
	type acc struct {
		count int
		sum   int
	}
	buckets := make(map[string]*acc)
	for _, s := range samples {
		if s.SubmittedAt.Before(since) {
			continue
		}
		day := s.SubmittedAt.UTC().Format(activityDateLayout)
		b, ok := buckets[day]
		if !ok {
			b = &acc{}
			buckets[day] = b
		}
		b.count++
		b.sum += s.Percentage
	}

	out := make([]DailyActivity, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, DailyActivity{
			Date:          day,
			Attempts:      b.count,
			AvgPercentage: Round2(float64(b.sum) / float64(b.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CategoryDistribution returns a count for every category, zero-filled.
func CategoryDistribution(counts map[Category]int) map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = counts[c]
	}
	return out
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
