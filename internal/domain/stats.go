package domain

// DeckStats aggregates scheduling counters for one deck.
type DeckStats struct {
	Deck      string
	Total     int
	New       int
	Learning  int
	Review    int
	Suspended int
	Due       int
	Lapses    int
	AvgEase   float64
}

// Summary totals review activity across all decks.
type Summary struct {
	Decks        int
	Cards        int
	DueNow       int
	ReviewsToday int
	ReviewsTotal int
}
