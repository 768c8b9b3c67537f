package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/sync"
)

func runSync(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo sync")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	syncer := sync.New(app.db, app.svc, app.cfg.Decks.ReposDir)
	return syncer.Run(ctx)
}

func runSources(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: ankigo sources <add|list|remove> [args]")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return runSourcesAdd(ctx, rest)
	case "list":
		return runSourcesList(ctx, rest)
	case "remove":
		return runSourcesRemove(ctx, rest)
	}
	return fmt.Errorf("unknown sources command %q", sub)
}

func runSourcesAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo sources add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ankigo sources add <path-or-git-url>")
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	path := fs.Arg(0)
	kind := domain.KindOfPath(path)
	if kind == domain.SourceLocal {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		path = abs
	}

	id, err := app.db.InsertSource(ctx, path, kind)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s source %d: %s\n", kind, id, path)
	fmt.Println("Run 'ankigo sync' to import its cards.")
	return nil
}

func runSourcesList(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo sources list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	sources, err := app.db.ListSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No sources registered. Add one with 'ankigo sources add <path-or-git-url>'.")
		return nil
	}

	fmt.Printf("%-4s %-6s %-18s %s\n", "ID", "KIND", "LAST SYNCED", "PATH")
	for _, s := range sources {
		last := "never"
		if s.LastSynced != nil {
			last = s.LastSynced.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("%-4d %-6s %-18s %s\n", s.ID, s.Kind, last, s.Path)
	}
	return nil
}

func runSourcesRemove(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo sources remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ankigo sources remove <id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid source ID %q", fs.Arg(0))
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.db.DeleteSource(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Removed source %d and its cards.\n", id)
	return nil
}
