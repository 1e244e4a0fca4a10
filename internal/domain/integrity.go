package domain

const (
	TabSwitchThreshold   = 3
	MinTimeSpentSeconds  = 30
	FlagReasonTabSwitch  = "Excessive tab switching"
	FlagReasonFastFinish = "Suspiciously fast completion"
)

// Inspect applies the fixed integrity rule. Tab switching wins when both apply.
func Inspect(tabSwitchCount, timeSpent int) (flagged bool, reason string) {
	if tabSwitchCount >= TabSwitchThreshold {
		return true, FlagReasonTabSwitch
	}
	if timeSpent < MinTimeSpentSeconds {
		return true, FlagReasonFastFinish
	}
	return false, ""
}
