package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/toplinks"
	"github.com/google/uuid"
)

// Pipeline runs extract, transform and load in sequence.
type Pipeline struct {
	Sources   []toplinks.Source
	Harvester *Harvester
	Publisher *Publisher
	Runs      toplinks.RunService // optional
	Logger    *slog.Logger
}

// Run executes one pipeline run. Each stage's output is published to rc
// under its key; rc may be nil.
//
// The returned Run is populated even when an error is returned. An error
// means the run produced nothing to publish: no links were harvested, a page
// could not be parsed or the dataset could not be serialized. Failed publish
// steps are reported in the Run's steps, not as an error.
func (p *Pipeline) Run(ctx context.Context, rc *toplinks.RunContext) (*toplinks.Run, error) {
	run := &toplinks.Run{
		ID:        rc.RunID(),
		StartedAt: time.Now(),
		Sources:   len(p.Sources),
		State:     toplinks.StatePending,
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	logger := p.logger().With("run", run.ID)
	logger.Info("run started", "sources", len(p.Sources))

	err := p.run(ctx, rc, run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Error = err.Error()
		logger.Error("run failed", "code", toplinks.ErrorCode(err), "err", err)
	} else {
		logger.Info("run finished",
			"state", string(run.State),
			"records", run.Records,
			"failed_steps", countFailed(run.Steps),
			"duration", run.FinishedAt.Sub(run.StartedAt),
		)
	}

	if p.Runs != nil {
		if lerr := p.Runs.CreateRun(context.WithoutCancel(ctx), run); lerr != nil {
			logger.Error("record run", "err", lerr)
		}
	}
	return run, err
}

func (p *Pipeline) run(ctx context.Context, rc *toplinks.RunContext, run *toplinks.Run) error {
	harvested, err := p.Harvester.Extract(ctx, p.Sources)
	if err != nil {
		return err
	}
	rc.Put(toplinks.KeyTopLinks, harvested)

	transformed := toplinks.Normalize(harvested)
	rc.Put(toplinks.KeyTransformedData, transformed)
	run.Records = len(transformed)

	report, err := p.Publisher.Load(ctx, transformed)
	if err != nil {
		return err
	}
	run.State = report.State
	run.Steps = report.Steps
	run.ArtifactPath = report.Artifact.Path
	run.Checksum = report.Artifact.Checksum
	return nil
}

func countFailed(steps []toplinks.StepResult) int {
	var n int
	for _, s := range steps {
		if s.Outcome == toplinks.OutcomeFailed {
			n++
		}
	}
	return n
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
