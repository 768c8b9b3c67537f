// Package reminder periodically counts the cards waiting for review
// and raises a notification when there is something to study.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/zlatanpham/ankigo/internal/domain"
)

// DueSource yields the cards currently waiting for review.
// *review.Service satisfies it.
type DueSource interface {
	Queue(ctx context.Context, limit int) ([]domain.Card, error)
}

// Notifier delivers a due-card reminder. Implementations decide the
// channel; the bundled one writes to the application log.
type Notifier interface {
	DueCards(count int) error
}

// LogNotifier announces due cards through slog.
type LogNotifier struct{}

func (LogNotifier) DueCards(count int) error {
	slog.Info("Cards are waiting for review", "due", count)
	return nil
}

// Config controls how often checks run and during which hours a
// reminder may fire. Both hours are inclusive.
type Config struct {
	Every     time.Duration
	StartHour int
	EndHour   int
}

// Reminder runs periodic due-card checks on a gocron scheduler.
type Reminder struct {
	scheduler *gocron.Scheduler
	source    DueSource
	notifier  Notifier
	cfg       Config
	clock     func() time.Time
}

// New builds a Reminder; call Start to begin checking.
func New(source DueSource, notifier Notifier, cfg Config) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		notifier:  notifier,
		cfg:       cfg,
		clock:     time.Now,
	}
}

// Start schedules the periodic check and returns immediately.
func (r *Reminder) Start() error {
	if _, err := r.scheduler.Every(r.cfg.Every).Do(r.check); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	slog.Info("Reminder started", "every", r.cfg.Every, "start_hour", r.cfg.StartHour, "end_hour", r.cfg.EndHour)
	return nil
}

// Stop halts the scheduler. Pending checks are not interrupted.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) check() {
	hour := r.clock().Hour()
	if hour < r.cfg.StartHour || hour > r.cfg.EndHour {
		slog.Debug("Outside reminder hours, skipping", "hour", hour, "start_hour", r.cfg.StartHour, "end_hour", r.cfg.EndHour)
		return
	}
	if err := r.CheckNow(context.Background()); err != nil {
		slog.Error("Failed to run due-card check", "error", err)
	}
}

// CheckNow counts due cards and notifies immediately, ignoring the
// hour window. Nothing is sent when the queue is empty.
func (r *Reminder) CheckNow(ctx context.Context) error {
	queue, err := r.source.Queue(ctx, 0)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return nil
	}
	return r.notifier.DueCards(len(queue))
}
