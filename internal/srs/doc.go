// Package srs implements an SM-2 derived spaced repetition scheduler
// with Anki-style learning and relearning steps.
//
// A Scheduler computes a card's next scheduling state from its current
// state and a review rating. Scheduling is pure: the reference time is
// an explicit argument on every operation and nothing in the package
// performs I/O or reads the wall clock.
//
// Basic usage:
//
//	sched, err := srs.NewScheduler(srs.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	card := sched.NewCardState(time.Now())
//	card, err = sched.ReviewCard(card, srs.Good, time.Now())
package srs
