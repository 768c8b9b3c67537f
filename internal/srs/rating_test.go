package srs

import (
	"encoding/json"
	"testing"
)

func TestRatingValues(t *testing.T) {
	if Again != 1 || Hard != 2 || Good != 3 || Easy != 4 {
		t.Errorf("ratings = %d %d %d %d, want 1 2 3 4", Again, Hard, Good, Easy)
	}
}

func TestRatingString(t *testing.T) {
	tests := []struct {
		r    Rating
		want string
	}{
		{Again, "Again"},
		{Hard, "Hard"},
		{Good, "Good"},
		{Easy, "Easy"},
		{Rating(0), "Rating(0)"},
		{Rating(5), "Rating(5)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Rating(%d).String() = %q, want %q", int(tt.r), got, tt.want)
		}
	}
}

func TestRatingQuality(t *testing.T) {
	tests := []struct {
		r    Rating
		want int
	}{
		{Again, 0},
		{Hard, 3},
		{Good, 4},
		{Easy, 5},
	}
	for _, tt := range tests {
		if got := tt.r.quality(); got != tt.want {
			t.Errorf("%v.quality() = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestRatingJSONRoundTrip(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", r, err)
		}
		var got Rating
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != r {
			t.Errorf("round-trip: got %v, want %v", got, r)
		}
	}
}

func TestRatingUnmarshalTextInvalid(t *testing.T) {
	var r Rating
	if err := r.UnmarshalText([]byte("Meh")); err == nil {
		t.Error(`UnmarshalText("Meh") should return error`)
	}
}
