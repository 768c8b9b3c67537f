package main

import (
	"context"
	"fmt"
)

func runStats(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo stats")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	stats, err := app.svc.DeckStats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No cards yet. Add some with 'ankigo add' or 'ankigo import'.")
		return nil
	}

	fmt.Printf("%-16s %6s %5s %9s %7s %10s %5s %7s %9s\n",
		"DECK", "TOTAL", "NEW", "LEARNING", "REVIEW", "SUSPENDED", "DUE", "LAPSES", "AVG EASE")
	for _, d := range stats {
		fmt.Printf("%-16s %6d %5d %9d %7d %10d %5d %7d %9.2f\n",
			d.Deck, d.Total, d.New, d.Learning, d.Review, d.Suspended, d.Due, d.Lapses, d.AvgEase)
	}

	sum, err := app.svc.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d cards in %d decks, %d due now.\n", sum.Cards, sum.Decks, sum.DueNow)
	fmt.Printf("Reviews: %d today, %d all time.\n", sum.ReviewsToday, sum.ReviewsTotal)
	return nil
}
