// Package review implements the card review workflow on top of the
// srs scheduler: submitting reviews, building the due queue, and
// lifecycle actions such as suspend and reset.
package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/fingerprint"
	"github.com/zlatanpham/ankigo/internal/srs"
)

// Store is the persistence surface the review service depends on.
// *storage.DB satisfies it.
type Store interface {
	InsertCard(ctx context.Context, card domain.Card, sourceID int64) error
	FindCard(ctx context.Context, id string) (*domain.Card, error)
	UpdateCardState(ctx context.Context, id string, cs srs.CardState) error
	DueCards(ctx context.Context, now time.Time, limit int) ([]domain.Card, error)
	ListCards(ctx context.Context, deck string) ([]domain.Card, error)
	InsertReviewLog(ctx context.Context, log domain.ReviewLog) error
	CountReviews(ctx context.Context, since time.Time) (int, error)
}

// Service coordinates scheduling decisions with stored card state.
// It is the only code path that mutates a card's scheduling state.
type Service struct {
	store     Store
	scheduler *srs.Scheduler
	clock     func() time.Time
}

// NewService wires the store with a configured scheduler.
func NewService(store Store, scheduler *srs.Scheduler) *Service {
	return &Service{
		store:     store,
		scheduler: scheduler,
		clock:     time.Now,
	}
}

// NewSession returns a fresh session identifier. All reviews submitted
// during one sitting share a session ID in the review log.
func NewSession() string {
	return uuid.NewString()
}

// Outcome reports the result of one submitted review.
type Outcome struct {
	Card     domain.Card
	Previous srs.CardState
}

// SubmitReview applies a rating to a card, persists the new scheduling
// state and appends an entry to the review log.
func (s *Service) SubmitReview(ctx context.Context, sessionID, cardID string, rating srs.Rating) (*Outcome, error) {
	card, err := s.store.FindCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	previous := card.State
	next, err := s.scheduler.ReviewCard(card.State, rating, now)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule card %s: %w", cardID, err)
	}

	if err := s.store.UpdateCardState(ctx, cardID, next); err != nil {
		return nil, err
	}
	log := domain.ReviewLog{
		CardID:     cardID,
		SessionID:  sessionID,
		Rating:     rating,
		ReviewedAt: now,
		Interval:   next.Interval,
		Ease:       next.Ease,
	}
	if err := s.store.InsertReviewLog(ctx, log); err != nil {
		return nil, err
	}

	card.State = next
	return &Outcome{Card: *card, Previous: previous}, nil
}

// Queue returns the cards due for review, hardest first: cards never
// reviewed before, then lowest ease, then earliest due date. A limit
// of 0 returns the whole queue.
func (s *Service) Queue(ctx context.Context, limit int) ([]domain.Card, error) {
	due, err := s.store.DueCards(ctx, s.clock(), 0)
	if err != nil {
		return nil, err
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i].State, due[j].State
		if (a.LastReview == nil) != (b.LastReview == nil) {
			return a.LastReview == nil
		}
		if a.Ease != b.Ease {
			return a.Ease < b.Ease
		}
		return a.Due.Before(b.Due)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// Preview shows what each rating would do to a card without persisting
// anything.
func (s *Service) Preview(ctx context.Context, cardID string) (map[srs.Rating]srs.CardState, error) {
	card, err := s.store.FindCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	states, err := s.scheduler.Preview(card.State, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to preview card %s: %w", cardID, err)
	}
	return states, nil
}

// Add fingerprints and stores a single card with a fresh scheduling
// state. The card's Deck, Front, Back and Notes are taken as given;
// ID, State and CreatedAt are assigned here. Returns
// domain.ErrEmptyCard for blank cards and domain.ErrDuplicateCard when
// the same content already exists.
func (s *Service) Add(ctx context.Context, card domain.Card, sourceID int64) (*domain.Card, error) {
	if card.Empty() {
		return nil, domain.ErrEmptyCard
	}

	card.ID = fingerprint.Sum(card)
	if _, err := s.store.FindCard(ctx, card.ID); err == nil {
		return nil, domain.ErrDuplicateCard
	} else if !errors.Is(err, domain.ErrCardNotFound) {
		return nil, err
	}

	now := s.clock()
	card.State = s.scheduler.NewCardState(now)
	card.CreatedAt = now
	if err := s.store.InsertCard(ctx, card, sourceID); err != nil {
		return nil, err
	}
	return &card, nil
}

// AddResult summarizes a bulk card insertion.
type AddResult struct {
	Added      []domain.Card
	Duplicates int
	Empty      int
}

// AddCards stores a batch of cards, skipping blanks and duplicates.
func (s *Service) AddCards(ctx context.Context, cards []domain.Card, sourceID int64) (AddResult, error) {
	var res AddResult
	for _, card := range cards {
		added, err := s.Add(ctx, card, sourceID)
		switch {
		case errors.Is(err, domain.ErrEmptyCard):
			res.Empty++
		case errors.Is(err, domain.ErrDuplicateCard):
			res.Duplicates++
		case err != nil:
			return res, err
		default:
			res.Added = append(res.Added, *added)
		}
	}
	return res, nil
}

// Suspend takes a card out of the review queue. Its scheduling fields
// are kept so records of past progress survive. Suspending a suspended
// card is a no-op.
func (s *Service) Suspend(ctx context.Context, cardID string) (*domain.Card, error) {
	return s.transition(ctx, cardID, func(cs srs.CardState, _ time.Time) srs.CardState {
		cs.State = srs.Suspended
		return cs
	})
}

// Resume puts a suspended card back into circulation as a new card
// due immediately. Ease and lapse history are kept. Resuming a card
// that is not suspended is a no-op.
func (s *Service) Resume(ctx context.Context, cardID string) (*domain.Card, error) {
	return s.transition(ctx, cardID, func(cs srs.CardState, now time.Time) srs.CardState {
		if cs.State != srs.Suspended {
			return cs
		}
		cs.State = srs.New
		cs.Due = now
		cs.Interval = 0
		cs.Repetitions = 0
		return cs
	})
}

// Reset discards a card's entire scheduling history and starts it over
// as a brand new card.
func (s *Service) Reset(ctx context.Context, cardID string) (*domain.Card, error) {
	return s.transition(ctx, cardID, func(_ srs.CardState, now time.Time) srs.CardState {
		return s.scheduler.NewCardState(now)
	})
}

func (s *Service) transition(ctx context.Context, cardID string, fn func(srs.CardState, time.Time) srs.CardState) (*domain.Card, error) {
	card, err := s.store.FindCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	next := fn(card.State, s.clock())
	if next == card.State {
		return card, nil
	}
	if err := s.store.UpdateCardState(ctx, cardID, next); err != nil {
		return nil, err
	}
	card.State = next
	return card, nil
}
