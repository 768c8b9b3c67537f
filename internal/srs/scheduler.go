package srs

import (
	"fmt"
	"math"
	"time"
)

const (
	// MinEase is the floor of the easiness factor. SM-2 clamps ease from
	// below only; there is no upper bound.
	MinEase = 1.3

	// DefaultEase is the easiness factor assigned to freshly created cards.
	DefaultEase = 2.5

	lapseEasePenalty = 0.2
)

// Config configures a Scheduler.
// Zero values produce stock Anki-style defaults; see field comments.
type Config struct {
	LearningSteps      []time.Duration `json:"learning_steps"`      // nil → [1m, 10m]
	RelearningStep     time.Duration   `json:"relearning_step"`     // zero → 10m
	InitialEase        float64         `json:"initial_ease"`        // zero → 2.5
	GraduatingInterval int             `json:"graduating_interval"` // days; zero → 1
	EasyInterval       int             `json:"easy_interval"`       // days; zero → 4
	HardMultiplier     float64         `json:"hard_multiplier"`     // zero → 1.2
	EasyMultiplier     float64         `json:"easy_multiplier"`     // zero → 1.3
}

// Scheduler computes review transitions. It holds only validated
// configuration, so a single instance is safe for concurrent use.
type Scheduler struct {
	learningSteps      []time.Duration
	relearningStep     time.Duration
	initialEase        float64
	graduatingInterval int
	easyInterval       int
	hardMultiplier     float64
	easyMultiplier     float64
}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid values return an
// error wrapping ErrInvalidConfig.
func NewScheduler(cfg Config) (*Scheduler, error) {
	steps := cfg.LearningSteps
	if steps == nil {
		steps = []time.Duration{time.Minute, 10 * time.Minute}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: learning steps must not be empty", ErrInvalidConfig)
	}
	for _, step := range steps {
		if step <= 0 {
			return nil, fmt.Errorf("%w: learning step %v must be positive", ErrInvalidConfig, step)
		}
	}

	relearn := cfg.RelearningStep
	if relearn == 0 {
		relearn = 10 * time.Minute
	}
	if relearn < 0 {
		return nil, fmt.Errorf("%w: relearning step %v must be positive", ErrInvalidConfig, relearn)
	}

	ease := cfg.InitialEase
	if ease == 0 {
		ease = DefaultEase
	}
	if ease < MinEase {
		return nil, fmt.Errorf("%w: initial ease %.2f below minimum %.2f", ErrInvalidConfig, ease, MinEase)
	}

	gradIvl := cfg.GraduatingInterval
	if gradIvl == 0 {
		gradIvl = 1
	}
	easyIvl := cfg.EasyInterval
	if easyIvl == 0 {
		easyIvl = 4
	}
	if gradIvl < 0 || easyIvl < 0 {
		return nil, fmt.Errorf("%w: graduation intervals must be positive", ErrInvalidConfig)
	}

	hardMult := cfg.HardMultiplier
	if hardMult == 0 {
		hardMult = 1.2
	}
	easyMult := cfg.EasyMultiplier
	if easyMult == 0 {
		easyMult = 1.3
	}
	if hardMult < 0 || easyMult < 0 {
		return nil, fmt.Errorf("%w: interval multipliers must be positive", ErrInvalidConfig)
	}

	return &Scheduler{
		learningSteps:      steps,
		relearningStep:     relearn,
		initialEase:        ease,
		graduatingInterval: gradIvl,
		easyInterval:       easyIvl,
		hardMultiplier:     hardMult,
		easyMultiplier:     easyMult,
	}, nil
}

// NewCardState returns the scheduling state for a card introduced at now:
// New, due immediately, with the configured initial ease.
func (s *Scheduler) NewCardState(now time.Time) CardState {
	return CardState{
		State: New,
		Due:   now,
		Ease:  s.initialEase,
	}
}

// ReviewCard processes a review of the card at the given time and returns
// the updated state. The input is not mutated. A state value outside the
// four known variants returns ErrInvalidState rather than defaulting to
// any transition; an out-of-range rating returns ErrInvalidRating.
func (s *Scheduler) ReviewCard(cs CardState, r Rating, now time.Time) (CardState, error) {
	if !r.IsValid() {
		return CardState{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	switch cs.State {
	case New, Suspended:
		// Suspended cards resume exactly like new ones.
		return s.reviewNew(cs, r, now), nil
	case Learning:
		return s.reviewLearning(cs, r, now), nil
	case Review:
		return s.reviewReview(cs, r, now), nil
	default:
		return CardState{}, fmt.Errorf("%w: %d", ErrInvalidState, int(cs.State))
	}
}

// Preview returns the outcome of reviewing the card with each possible rating.
func (s *Scheduler) Preview(cs CardState, now time.Time) (map[Rating]CardState, error) {
	result := make(map[Rating]CardState, 4)
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		next, err := s.ReviewCard(cs, r, now)
		if err != nil {
			return nil, err
		}
		result[r] = next
	}
	return result, nil
}

// reviewNew handles cards that have never entered the schedule.
func (s *Scheduler) reviewNew(cs CardState, r Rating, now time.Time) CardState {
	out := cs
	out.LastReview = &now

	if r == Again {
		out.State = Learning
		out.Interval = 0
		out.Repetitions = 0
		out.Due = now.Add(s.learningSteps[0])
		return out
	}
	return s.graduate(out, r, now)
}

// reviewLearning advances a card through the learning-step schedule.
func (s *Scheduler) reviewLearning(cs CardState, r Rating, now time.Time) CardState {
	out := cs
	out.LastReview = &now

	if r == Again {
		out.State = Learning
		out.Interval = 0
		out.Repetitions = 0
		out.Lapses++
		out.Due = now.Add(s.learningSteps[0])
		return out
	}

	step := min(out.Repetitions, len(s.learningSteps)-1)
	if step == len(s.learningSteps)-1 {
		return s.graduate(out, r, now)
	}
	out.Repetitions++
	out.Interval = 0
	out.Due = now.Add(s.learningSteps[step+1])
	return out
}

// reviewReview applies the SM-2 step to a card in the long-term cycle.
func (s *Scheduler) reviewReview(cs CardState, r Rating, now time.Time) CardState {
	out := cs
	out.LastReview = &now

	if r == Again {
		// Lapse: demote to relearning. The ease penalty here is a flat
		// 0.2, not the quality-0 formula.
		out.State = Learning
		out.Interval = 0
		out.Repetitions = 0
		out.Ease = max(out.Ease-lapseEasePenalty, MinEase)
		out.Lapses++
		out.Due = now.Add(s.relearningStep)
		return out
	}

	ease := nextEase(out.Ease, r)

	var base int
	switch out.Repetitions {
	case 0:
		base = 1
	case 1:
		base = 6
	default:
		base = int(math.Round(float64(out.Interval) * ease))
	}

	interval := base
	switch r {
	case Hard:
		interval = max(1, int(math.Round(float64(base)*s.hardMultiplier)))
	case Easy:
		interval = int(math.Round(float64(base) * s.easyMultiplier))
	}

	out.State = Review
	out.Interval = interval
	out.Repetitions++
	out.Ease = ease
	out.Due = now.Add(time.Duration(interval) * 24 * time.Hour)
	return out
}

// graduate promotes a card into the Review state. Hard and Good share the
// graduating interval; only Easy earns the longer one.
func (s *Scheduler) graduate(cs CardState, r Rating, now time.Time) CardState {
	cs.State = Review
	cs.Ease = nextEase(cs.Ease, r)
	cs.Repetitions = 1
	if r == Easy {
		cs.Interval = s.easyInterval
	} else {
		cs.Interval = s.graduatingInterval
	}
	cs.Due = now.Add(time.Duration(cs.Interval) * 24 * time.Hour)
	return cs
}

// nextEase applies the SM-2 easiness update for a quality score q:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// clamped from below at MinEase.
func nextEase(ease float64, r Rating) float64 {
	q := float64(r.quality())
	next := ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	return max(next, MinEase)
}
