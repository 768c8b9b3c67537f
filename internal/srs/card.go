package srs

import "time"

// CardState holds the scheduling state of a single card for a single
// learner. It is a plain value: the scheduler returns updated copies
// and never mutates its input.
type CardState struct {
	State       State      `json:"state"`
	Due         time.Time  `json:"due"`
	Interval    int        `json:"interval"`    // days; 0 while New/Learning.
	Repetitions int        `json:"repetitions"` // learning-step index, or successes since last lapse.
	Ease        float64    `json:"ease"`
	Lapses      int        `json:"lapses"`
	LastReview  *time.Time `json:"last_review"` // nil before first review.
}
