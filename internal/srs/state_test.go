package srs

import (
	"encoding/json"
	"testing"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{New, "New"},
		{Learning, "Learning"},
		{Review, "Review"},
		{Suspended, "Suspended"},
		{State(0), "State(0)"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestStateIsValid(t *testing.T) {
	for _, s := range []State{New, Learning, Review, Suspended} {
		if !s.IsValid() {
			t.Errorf("State(%d).IsValid() = false, want true", int(s))
		}
	}
	for _, s := range []State{State(0), State(-1), State(5)} {
		if s.IsValid() {
			t.Errorf("State(%d).IsValid() = true, want false", int(s))
		}
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, s := range []State{New, Learning, Review, Suspended} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", s, err)
		}
		var got State
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != s {
			t.Errorf("round-trip: got %v, want %v", got, s)
		}
	}
}

func TestStateJSONInvalid(t *testing.T) {
	if _, err := json.Marshal(State(0)); err == nil {
		t.Error("json.Marshal(State(0)) should return error")
	}
	for _, input := range []string{`"Unknown"`, `2`, `null`} {
		var s State
		if err := json.Unmarshal([]byte(input), &s); err == nil {
			t.Errorf("json.Unmarshal(%s) should return error", input)
		}
	}
}
