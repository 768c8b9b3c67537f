package srs

import (
	"fmt"
	"math"
	"time"
)

// IsDue reports whether the card is eligible for review at now.
func IsDue(cs CardState, now time.Time) bool {
	return !cs.Due.After(now)
}

// DaysUntilDue returns the number of whole days until the card is due,
// rounded up. Zero or negative means the card is already due.
func DaysUntilDue(cs CardState, now time.Time) int {
	return int(math.Ceil(cs.Due.Sub(now).Hours() / 24))
}

// Describe returns a human-readable label for the card's scheduling
// state, e.g. "New", "Learning (10m)", "Due in 3 days", "Suspended".
func Describe(cs CardState, now time.Time) string {
	switch cs.State {
	case New:
		return "New"
	case Learning:
		minutes := int(math.Ceil(cs.Due.Sub(now).Minutes()))
		if minutes < 0 {
			minutes = 0
		}
		return fmt.Sprintf("Learning (%dm)", minutes)
	case Review:
		days := DaysUntilDue(cs, now)
		switch {
		case days <= 0:
			return "Due"
		case days == 1:
			return "Due tomorrow"
		default:
			return fmt.Sprintf("Due in %d days", days)
		}
	case Suspended:
		return "Suspended"
	default:
		return cs.State.String()
	}
}
