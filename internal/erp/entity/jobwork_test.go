package entity

import "testing"

func TestJobWorkCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{JobWorkStatusSent, JobWorkStatusProcessing, true},
		{JobWorkStatusSent, JobWorkStatusReturned, true},
		{JobWorkStatusSent, JobWorkStatusQualityCheck, false},
		{JobWorkStatusSent, JobWorkStatusCompleted, false},
		{JobWorkStatusProcessing, JobWorkStatusQualityCheck, true},
		{JobWorkStatusProcessing, JobWorkStatusReturned, false},
		{JobWorkStatusProcessing, JobWorkStatusSent, false},
		{JobWorkStatusQualityCheck, JobWorkStatusCompleted, true},
		{JobWorkStatusQualityCheck, JobWorkStatusProcessing, false},
		{JobWorkStatusCompleted, JobWorkStatusSent, false},
		{JobWorkStatusCompleted, JobWorkStatusReturned, false},
		{JobWorkStatusReturned, JobWorkStatusProcessing, false},
	}
	for _, tc := range cases {
		j := &JobWorkTransformation{Status: tc.from}
		if got := j.CanTransition(tc.to); got != tc.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
