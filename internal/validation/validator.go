package validation

import (
	"regexp"
	"strings"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/dto"
	"quiz-arena/internal/util"
)

const (
	MaxAnswerLength = 2000
	maxUserIDLength = 64

	// Tolerated client clock drift for startedAt.
	clockSkew = time.Minute
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator provides request validation functionality
type Validator struct {
	now func() time.Time
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// ValidateSubmitAttempt checks the submission body before anything is graded.
func (v *Validator) ValidateSubmitAttempt(req *dto.SubmitAttemptRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	for key, answer := range req.Answers {
		if strings.TrimSpace(key) == "" {
			errors = append(errors, domain.NewInvalidFormatError("answers", key))
			continue
		}
		if len(answer) > MaxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError("answers."+key, len(answer), 0, MaxAnswerLength))
		}
	}

	if req.TimeSpent == nil {
		errors = append(errors, domain.NewMissingFieldError("timeSpent"))
	} else if *req.TimeSpent < 0 || *req.TimeSpent > domain.MaxTimeSpentSeconds {
		errors = append(errors, domain.NewOutOfRangeError("timeSpent", *req.TimeSpent, 0, domain.MaxTimeSpentSeconds))
	}

	if req.TabSwitchCount < 0 || req.TabSwitchCount > domain.MaxTabSwitchCount {
		errors = append(errors, domain.NewOutOfRangeError("tabSwitchCount", req.TabSwitchCount, 0, domain.MaxTabSwitchCount))
	}

	if req.StartedAt != nil && !req.StartedAt.IsZero() {
		if err, ok := v.checkStartedAt(*req.StartedAt, req.TimeSpent); !ok {
			errors = append(errors, err)
		}
	}

	return errors
}

// checkStartedAt rejects a start time in the future, or one that leaves less
// elapsed time than the reported timeSpent.
func (v *Validator) checkStartedAt(startedAt time.Time, timeSpent *int) (domain.ValidationError, bool) {
	now := v.now()
	if startedAt.After(now.Add(clockSkew)) {
		return domain.ValidationError{
			Field:   "startedAt",
			Code:    domain.CodeOutOfRange,
			Message: "startedAt must not be in the future",
			Value:   startedAt,
		}, false
	}
	if timeSpent != nil && *timeSpent >= 0 && *timeSpent <= domain.MaxTimeSpentSeconds {
		latest := now.Add(-time.Duration(*timeSpent) * time.Second).Add(clockSkew)
		if startedAt.After(latest) {
			return domain.ValidationError{
				Field:   "startedAt",
				Code:    domain.CodeOutOfRange,
				Message: "startedAt is later than timeSpent allows",
				Value:   startedAt,
			}, false
		}
	}
	return domain.ValidationError{}, true
}

// ValidateReview bounds the admin feedback text.
func (v *Validator) ValidateReview(req *dto.ReviewAttemptRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(req.Feedback) > domain.MaxFeedbackLength {
		errors = append(errors, domain.NewOutOfRangeError("feedback", len(req.Feedback), 0, domain.MaxFeedbackLength))
	}
	return errors
}

// ValidateID checks a ULID path or query parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !util.IsValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// ValidateUserID accepts the opaque ids issued by the auth service.
func (v *Validator) ValidateUserID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	switch {
	case strings.TrimSpace(id) == "":
		errors = append(errors, domain.NewMissingFieldError(field))
	case len(id) > maxUserIDLength || !userIDPattern.MatchString(id):
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}
