package domain

import (
	"fmt"
	"time"
)

// CheckEligibility decides whether a new attempt may be recorded for test at
// now, given the number of attempts the user has already completed.
func CheckEligibility(test *TestDefinition, now time.Time, completedCount int) error {
	if test == nil || !test.IsActive {
		return NewNotFoundError("Test not found or inactive")
	}

	if start := test.Schedule.StartDate; start != nil && now.Before(*start) {
		return NewForbiddenError("Test is not yet available").WithContext("startDate", start.UTC())
	}
	if end := test.Schedule.EndDate; end != nil && now.After(*end) {
		return NewForbiddenError("Test has ended").WithContext("endDate", end.UTC())
	}

	if max := test.Settings.MaxAttempts; max > 0 && completedCount >= max {
		return NewForbiddenError(fmt.Sprintf("Maximum attempts (%d) reached for this test", max)).
			WithContext("maxAttempts", max).
			WithContext("completedAttempts", completedCount)
	}

	return nil
}
