package domain

import (
	"strings"
	"time"

	"github.com/zlatanpham/ankigo/internal/srs"
)

// Card represents a single deck-front-back-notes flashcard together
// with its scheduling state. The ID is the content fingerprint, so a
// card keeps its learning progress when its deck is renamed or notes
// are edited.
type Card struct {
	ID        string
	Deck      string
	Front     string
	Back      string
	Notes     string
	State     srs.CardState
	CreatedAt time.Time
}

// Empty reports whether the card has no usable content. Cards without
// a front side are dropped by the parser and rejected by the importer.
func (c Card) Empty() bool {
	return strings.TrimSpace(c.Front) == ""
}

// ReviewLog records a single review event for a card, with a snapshot
// of the scheduling outcome at that moment.
type ReviewLog struct {
	ID         int64
	CardID     string
	SessionID  string
	Rating     srs.Rating
	ReviewedAt time.Time
	Interval   int
	Ease       float64
}
