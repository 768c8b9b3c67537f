package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/zlatanpham/ankigo/internal/config"
	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/review"
	"github.com/zlatanpham/ankigo/internal/srs"
	"github.com/zlatanpham/ankigo/internal/storage"
)

func main() {
	// Load .env before anything reads the environment. A missing file
	// is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return runAdd(ctx, rest)
	case "import":
		return runImport(ctx, rest)
	case "sync":
		return runSync(ctx, rest)
	case "sources":
		return runSources(ctx, rest)
	case "due":
		return runDue(ctx, rest)
	case "review":
		return runReview(ctx, rest)
	case "stats":
		return runStats(ctx, rest)
	case "suspend":
		return runSuspend(ctx, rest)
	case "resume":
		return runResume(ctx, rest)
	case "reset":
		return runReset(ctx, rest)
	case "remind":
		return runRemind(ctx, rest)
	case "help", "-h", "--help":
		printUsage()
		return nil
	}
	printUsage()
	return fmt.Errorf("unknown command %q", cmd)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: ankigo <command> [flags]

Commands:
  add       Add a single card from flags
  import    Import cards from a CSV or XLSX file
  sync      Reconcile all registered card sources
  sources   Manage card sources (add, list, remove)
  due       List cards waiting for review
  review    Start an interactive review session
  stats     Show per-deck statistics and totals
  suspend   Take a card out of the review queue
  resume    Put a suspended card back in the queue
  reset     Start a card over as new
  remind    Run the periodic due-card reminder

Global flags (accepted by every command):
      --config string      path to config file (default "ankigo.yaml")
      --db string          sqlite database file (overrides config)
      --repos-dir string   directory for git checkouts (overrides config)
      --log-level string   debug, info, warn or error (overrides config)
      --log-format string  text or json (overrides config)
`)
}

// newFlagSet returns a FlagSet for one command, pre-populated with the
// global flags config.Load knows how to read.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "ankigo.yaml", "path to config file")
	fs.String("db", "", "sqlite database file (overrides config)")
	fs.String("repos-dir", "", "directory for git checkouts (overrides config)")
	fs.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	fs.String("log-format", "", "log format: text or json (overrides config)")
	return fs
}

// app bundles the pieces every command needs.
type app struct {
	cfg *config.Config
	db  *storage.DB
	svc *review.Service
}

func newApp(fs *pflag.FlagSet) (*app, error) {
	cfgPath, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath, fs)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	scheduler, err := srs.NewScheduler(cfg.Scheduler.SRS())
	if err != nil {
		db.Close()
		return nil, err
	}
	return &app{cfg: cfg, db: db, svc: review.NewService(db, scheduler)}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// resolveCard accepts a full fingerprint or a unique prefix of one,
// matching the short IDs printed by listings.
func (a *app) resolveCard(ctx context.Context, ref string) (*domain.Card, error) {
	if len(ref) == 64 {
		return a.db.FindCard(ctx, ref)
	}
	return a.db.FindCardByPrefix(ctx, ref)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
