package review

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/srs"
)

// DeckStats aggregates per-deck card counts, sorted by deck name.
func (s *Service) DeckStats(ctx context.Context) ([]domain.DeckStats, error) {
	cards, err := s.store.ListCards(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.clock()
	byDeck := lo.GroupBy(cards, func(c domain.Card) string { return c.Deck })
	decks := lo.Keys(byDeck)
	sort.Strings(decks)

	stats := make([]domain.DeckStats, 0, len(decks))
	for _, deck := range decks {
		group := byDeck[deck]
		st := domain.DeckStats{Deck: deck, Total: len(group)}
		var easeSum float64
		for _, c := range group {
			switch c.State.State {
			case srs.New:
				st.New++
			case srs.Learning:
				st.Learning++
			case srs.Review:
				st.Review++
			case srs.Suspended:
				st.Suspended++
			}
			if c.State.State != srs.Suspended && srs.IsDue(c.State, now) {
				st.Due++
			}
			st.Lapses += c.State.Lapses
			easeSum += c.State.Ease
		}
		st.AvgEase = easeSum / float64(len(group))
		stats = append(stats, st)
	}
	return stats, nil
}

// Summary reports collection-wide totals.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	cards, err := s.store.ListCards(ctx, "")
	if err != nil {
		return domain.Summary{}, err
	}

	now := s.clock()
	sum := domain.Summary{
		Cards: len(cards),
		Decks: len(lo.Uniq(lo.Map(cards, func(c domain.Card, _ int) string { return c.Deck }))),
	}
	for _, c := range cards {
		if c.State.State != srs.Suspended && srs.IsDue(c.State, now) {
			sum.DueNow++
		}
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if sum.ReviewsToday, err = s.store.CountReviews(ctx, startOfDay); err != nil {
		return domain.Summary{}, err
	}
	if sum.ReviewsTotal, err = s.store.CountReviews(ctx, time.Time{}); err != nil {
		return domain.Summary{}, err
	}
	return sum, nil
}
