package main

import (
	"context"
	"fmt"

	"github.com/zlatanpham/ankigo/internal/reminder"
)

func runRemind(ctx context.Context, args []string) error {
	fs := newFlagSet("ankigo remind")
	once := fs.Bool("once", false, "run a single due-card check and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(fs)
	if err != nil {
		return err
	}
	defer app.Close()

	rem := reminder.New(app.svc, reminder.LogNotifier{}, reminder.Config{
		Every:     app.cfg.Reminder.Every,
		StartHour: app.cfg.Reminder.StartHour,
		EndHour:   app.cfg.Reminder.EndHour,
	})

	if *once {
		return rem.CheckNow(ctx)
	}

	if err := rem.Start(); err != nil {
		return err
	}
	defer rem.Stop()

	fmt.Println("Reminder running. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}
