package main

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/review"
	"github.com/zlatanpham/ankigo/internal/srs"
)

func runDue(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo due")
	limit := fs.Int("limit", 0, "maximum cards to list (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	queue, err := app.svc.Queue(ctx, *limit)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		fmt.Println("No cards due for review.")
		return nil
	}

	now := time.Now()
	fmt.Printf("%d card(s) due:\n\n", len(queue))
	for _, card := range queue {
		fmt.Printf("  %s  %-14s %-16s %s\n",
			shortID(card.ID), card.Deck, srs.Describe(card.State, now), firstLine(card.Front))
	}
	return nil
}

func runReview(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo review")
	limit := fs.Int("limit", 0, "maximum cards this session (0 = all due)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	queue, err := app.svc.Queue(ctx, *limit)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		fmt.Println("No cards due for review.")
		return nil
	}

	session := review.NewSession()
	reader := bufio.NewReader(os.Stdin)
	reviewed := 0

	for i, card := range queue {
		fmt.Println("\n========================================")
		fmt.Printf("Card [%d/%d] in deck %q\n\n", i+1, len(queue), card.Deck)
		fmt.Println(card.Front)
		fmt.Println("\nPress Enter to show the answer...")
		if _, err := reader.ReadString('\n'); err != nil {
			return err
		}

		fmt.Println(card.Back)
		if card.Notes != "" {
			fmt.Printf("\nNotes: %s\n", card.Notes)
		}

		preview, err := app.svc.Preview(ctx, card.ID)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(previewLine(preview, time.Now()))
		fmt.Print("Rate recall (1-4, s: skip, q: quit): ")

		input, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "q" {
			break
		}
		if input == "s" || input == "" {
			fmt.Println("Skipped.")
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < int(srs.Again) || n > int(srs.Easy) {
			fmt.Println("Invalid input, skipping this card.")
			continue
		}

		out, err := app.svc.SubmitReview(ctx, session, card.ID, srs.Rating(n))
		if err != nil {
			return err
		}
		reviewed++
		fmt.Printf("Recorded %s. %s.\n", srs.Rating(n), srs.Describe(out.Card.State, time.Now()))
	}

	fmt.Printf("\nReview session complete: %d of %d cards reviewed.\n", reviewed, len(queue))
	return nil
}

func runSuspend(ctx context.Context, args []string) error {
	return runCardAction(ctx, args, "suspend", (*review.Service).Suspend)
}

func runResume(ctx context.Context, args []string) error {
	return runCardAction(ctx, args, "resume", (*review.Service).Resume)
}

func runReset(ctx context.Context, args []string) error {
	return runCardAction(ctx, args, "reset", (*review.Service).Reset)
}

func runCardAction(ctx context.Context, args []string, name string, action func(*review.Service, context.Context, string) (*domain.Card, error)) error {
	fs := newFlagSet("ankigo " + name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ankigo %s <card-id>", name)
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	card, err := app.resolveCard(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	updated, err := action(app.svc, ctx, card.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Card %s is now: %s.\n", shortID(updated.ID), srs.Describe(updated.State, time.Now()))
	return nil
}

// previewLine renders what each rating would do, in the order the
// ratings are entered at the prompt.
func previewLine(states map[srs.Rating]srs.CardState, now time.Time) string {
	parts := make([]string, 0, len(states))
	for _, r := range []srs.Rating{srs.Again, srs.Hard, srs.Good, srs.Easy} {
		parts = append(parts, fmt.Sprintf("%d: %s (%s)", int(r), r, dueIn(states[r], now)))
	}
	return strings.Join(parts, "  ")
}

func dueIn(cs srs.CardState, now time.Time) string {
	d := cs.Due.Sub(now)
	if d < time.Hour {
		m := int(math.Ceil(d.Minutes()))
		if m < 0 {
			m = 0
		}
		return fmt.Sprintf("%dm", m)
	}
	days := int(math.Round(d.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("%dd", days)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
