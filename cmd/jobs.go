package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 1 * time.Minute

// startJobs schedules trial expiry and backhaul alert pushes and runs each
// once immediately. Stop the returned scheduler on shutdown.
func (app *application) startJobs(ctx context.Context) (*cron.Cron, error) {
	logger := cron.PrintfLogger(app.infoLog)
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))

	jobs := []struct {
		spec string
		run  func(context.Context)
	}{
		{app.cfg.Jobs.TrialExpirySpec, app.expireTrials},
		{app.cfg.Jobs.AlertPushSpec, app.pushAlerts},
	}
	for _, job := range jobs {
		run := job.run
		if _, err := c.AddFunc(job.spec, func() { runOnce(ctx, run) }); err != nil {
			return nil, fmt.Errorf("cron.AddFunc %q: %w", job.spec, err)
		}
	}

	c.Start()
	app.infoLog.Printf("jobs: cron started (trials %s, alerts %s)", app.cfg.Jobs.TrialExpirySpec, app.cfg.Jobs.AlertPushSpec)

	go func() {
		for _, job := range jobs {
			runOnce(ctx, job.run)
		}
	}()
	return c, nil
}

func runOnce(ctx context.Context, run func(context.Context)) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	run(runCtx)
}

func (app *application) expireTrials(ctx context.Context) {
	expired, err := app.subscriptionService.ExpireTrials(ctx, time.Now().UTC())
	if err != nil {
		app.errorLog.Printf("trial expiry: %v", err)
		return
	}
	if expired > 0 {
		app.infoLog.Printf("trial expiry: expired %d trials", expired)
	}
}

func (app *application) pushAlerts(ctx context.Context) {
	sent, err := app.alertService.PushPending(ctx, time.Now().UTC())
	if err != nil {
		app.errorLog.Printf("alert push: %v", err)
		return
	}
	if sent > 0 {
		app.infoLog.Printf("alert push: notified %d alerts", sent)
	}
}
