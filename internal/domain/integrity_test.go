package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		tabSwitches int
		timeSpent   int
		wantFlagged bool
		wantReason  string
	}{
		{"clean", 0, 120, false, ""},
		{"fast completion", 0, 10, true, FlagReasonFastFinish},
		{"excessive tab switching", 4, 120, true, FlagReasonTabSwitch},
		{"both apply, tab switching wins", 5, 5, true, FlagReasonTabSwitch},
		{"thresholds are inclusive for tabs", 3, 30, true, FlagReasonTabSwitch},
		{"thirty seconds is not fast", 2, 30, false, ""},
		{"twenty nine seconds is fast", 2, 29, true, FlagReasonFastFinish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagged, reason := Inspect(tt.tabSwitches, tt.timeSpent)
			assert.Equal(t, tt.wantFlagged, flagged)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
