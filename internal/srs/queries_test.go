package srs

import (
	"testing"
	"time"
)

func TestIsDue(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"exactly now", t0, true},
		{"overdue", t0.Add(-time.Hour), true},
		{"one nanosecond ahead", t0.Add(time.Nanosecond), false},
		{"tomorrow", t0.Add(24 * time.Hour), false},
	}
	for _, tt := range tests {
		cs := CardState{State: Review, Due: tt.due}
		if got := IsDue(cs, t0); got != tt.want {
			t.Errorf("%s: IsDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"exactly now", t0, 0},
		{"an hour overdue", t0.Add(-time.Hour), 0},
		{"two days overdue", t0.Add(-48 * time.Hour), -2},
		{"in one day", t0.Add(24 * time.Hour), 1},
		{"partial days round up", t0.Add(25 * time.Hour), 2},
		{"in ten days", t0.Add(10 * 24 * time.Hour), 10},
	}
	for _, tt := range tests {
		cs := CardState{State: Review, Due: tt.due}
		if got := DaysUntilDue(cs, t0); got != tt.want {
			t.Errorf("%s: DaysUntilDue = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		cs   CardState
		want string
	}{
		{"new", CardState{State: New, Due: t0}, "New"},
		{"learning ten minutes out", CardState{State: Learning, Due: t0.Add(10 * time.Minute)}, "Learning (10m)"},
		{"learning partial minute rounds up", CardState{State: Learning, Due: t0.Add(90 * time.Second)}, "Learning (2m)"},
		{"learning overdue", CardState{State: Learning, Due: t0.Add(-time.Minute)}, "Learning (0m)"},
		{"review due now", CardState{State: Review, Due: t0}, "Due"},
		{"review overdue", CardState{State: Review, Due: t0.Add(-72 * time.Hour)}, "Due"},
		{"review due tomorrow", CardState{State: Review, Due: t0.Add(24 * time.Hour)}, "Due tomorrow"},
		{"review due later", CardState{State: Review, Due: t0.Add(5 * 24 * time.Hour)}, "Due in 5 days"},
		{"suspended", CardState{State: Suspended, Due: t0}, "Suspended"},
		{"invalid state", CardState{State: State(9)}, "State(9)"},
	}
	for _, tt := range tests {
		if got := Describe(tt.cs, t0); got != tt.want {
			t.Errorf("%s: Describe = %q, want %q", tt.name, got, tt.want)
		}
	}
}
