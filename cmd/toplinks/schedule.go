package main

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/toplinks"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Run executes the schedule command. It blocks until the context is canceled
// and waits for an in-flight run to finish before returning.
func (c *ScheduleCmd) Run(deps *Dependencies) error {
	spec := deps.Schedule
	if c.Spec != "" {
		spec = c.Spec
	}

	logger := cronLogger{logger: deps.Logger}
	scheduler := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	job := func() {
		run, err := deps.Pipeline.Run(deps.Ctx, toplinks.NewRunContext(uuid.NewString()))
		if err != nil {
			return
		}
		printRunSummary(deps.Stdout, run)
	}

	if _, err := scheduler.AddFunc(spec, job); err != nil {
		err = toplinks.Errorf(toplinks.EINVALID, "invalid schedule %q: %v", spec, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplinks.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scheduled pipeline: %s\n", spec)
	if c.Now {
		job()
	}

	scheduler.Start()
	<-deps.Ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

// cronLogger adapts a slog.Logger to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
