package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/importer"
)

func runAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo add")
	deck := fs.String("deck", "default", "deck to add the card to")
	front := fs.String("front", "", "front (question) text")
	back := fs.String("back", "", "back (answer) text")
	notes := fs.String("notes", "", "notes shown with the answer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	card, err := app.svc.Add(ctx, domain.Card{
		Deck:  *deck,
		Front: *front,
		Back:  *back,
		Notes: *notes,
	}, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Added card %s to deck %q.\n", shortID(card.ID), card.Deck)
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo import")
	deck := fs.String("deck", "", "deck for rows that do not name one")
	sheet := fs.String("sheet", "", "xlsx sheet to read (default first sheet)")
	noHeader := fs.Bool("no-header", false, "treat the first row as data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ankigo import [flags] <file.csv|file.xlsx>")
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	opts := importer.DefaultOptions()
	opts.Sheet = *sheet
	opts.SkipHeader = !*noHeader
	if *deck != "" {
		opts.Deck = *deck
	}

	result, err := importer.ImportFile(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	added, err := app.svc.AddCards(ctx, result.Cards, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d rows: %d added, %d duplicates, %d skipped.\n",
		result.Processed, len(added.Added), added.Duplicates, result.Skipped+added.Empty)
	for _, msg := range result.Errors {
		fmt.Println("  -", msg)
	}
	return nil
}
