package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/toplinks"
)

// Publisher serializes a dataset and versions it with the content tracker
// and source control.
type Publisher struct {
	Writer         toplinks.DatasetWriter
	SourceControl  toplinks.SourceControl
	ContentTracker toplinks.ContentTracker
	Logger         *slog.Logger

	// Path is the artifact location relative to the working directory.
	Path string

	// StoreRemote is the content tracker's default storage remote.
	StoreRemote toplinks.Remote

	// Origin is the source-control remote the branch is pushed to.
	Origin        toplinks.Remote
	Branch        string
	CommitMessage string

	// Policy decides whether steps after a failure are attempted.
	// Defaults to toplinks.ContinueOnFailure.
	Policy toplinks.FailurePolicy
}

// stepFunc performs one publish step. A true skipped result means the step
// found nothing to do.
type stepFunc func(ctx context.Context) (skipped bool, err error)

type publishStep struct {
	name toplinks.Step
	fn   stepFunc
}

// Load writes d to disk and runs the guarded publish sequence. An error is
// returned only when the dataset cannot be serialized. Failures of later
// steps are recorded in the report.
func (p *Publisher) Load(ctx context.Context, d toplinks.Dataset) (*toplinks.LoadReport, error) {
	policy := p.Policy
	if policy == "" {
		policy = toplinks.ContinueOnFailure
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	report := &toplinks.LoadReport{State: toplinks.StatePending}

	begin := time.Now()
	artifact, err := p.Writer.WriteDataset(ctx, p.Path, d)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	report.Artifact = artifact
	report.Steps = append(report.Steps, toplinks.StepResult{
		Step:     toplinks.StepSerialize,
		Outcome:  toplinks.OutcomeDone,
		Output:   fmt.Sprintf("wrote %d rows to %s", artifact.Rows, artifact.Path),
		Duration: time.Since(begin),
	})

	stopped := false
	for _, s := range p.steps() {
		if stopped {
			report.Steps = append(report.Steps, toplinks.StepResult{Step: s.name, Outcome: toplinks.OutcomeNotRun})
			continue
		}

		result := p.runStep(ctx, s.name, s.fn)
		report.Steps = append(report.Steps, result)
		if result.Outcome == toplinks.OutcomeFailed && policy == toplinks.StopOnFailure {
			stopped = true
		}
	}

	report.State = toplinks.ReachedState(report.Steps)
	return report, nil
}

func (p *Publisher) runStep(ctx context.Context, name toplinks.Step, fn stepFunc) toplinks.StepResult {
	begin := time.Now()
	skipped, err := fn(ctx)
	result := toplinks.StepResult{Step: name, Duration: time.Since(begin)}

	switch {
	case err != nil:
		result.Outcome = toplinks.OutcomeFailed
		result.Output = toplinks.ErrorMessage(err)
		if toplinks.ErrorCode(err) == toplinks.EINTERNAL {
			result.Output = err.Error()
		}
		p.logger().Error("publish step failed", "step", string(name), "duration", result.Duration, "output", result.Output)
	case skipped:
		result.Outcome = toplinks.OutcomeSkipped
		p.logger().Info("publish step skipped", "step", string(name))
	default:
		result.Outcome = toplinks.OutcomeDone
		p.logger().Info("publish step done", "step", string(name), "duration", result.Duration)
	}
	return result
}

// steps returns the publish steps that follow serialization, in order.
func (p *Publisher) steps() []publishStep {
	return []publishStep{
		{toplinks.StepGitInit, p.gitInit},
		{toplinks.StepDVCInit, p.dvcInit},
		{toplinks.StepDVCRemote, p.dvcRemote},
		{toplinks.StepDVCAdd, func(ctx context.Context) (bool, error) {
			return false, p.ContentTracker.Add(ctx, p.Path)
		}},
		{toplinks.StepDVCPush, func(ctx context.Context) (bool, error) {
			return false, p.ContentTracker.Push(ctx)
		}},
		{toplinks.StepGitRemote, p.gitRemote},
		{toplinks.StepGitAdd, func(ctx context.Context) (bool, error) {
			return false, p.SourceControl.AddAll(ctx)
		}},
		{toplinks.StepGitCommit, p.gitCommit},
		{toplinks.StepGitPush, func(ctx context.Context) (bool, error) {
			return false, p.SourceControl.Push(ctx, p.Origin.Name, p.Branch)
		}},
	}
}

func (p *Publisher) gitInit(ctx context.Context) (bool, error) {
	ok, err := p.SourceControl.IsInitialized(ctx)
	if err != nil {
		return false, err
	} else if ok {
		return true, nil
	}
	return false, p.SourceControl.Init(ctx)
}

func (p *Publisher) dvcInit(ctx context.Context) (bool, error) {
	ok, err := p.ContentTracker.IsInitialized(ctx)
	if err != nil {
		return false, err
	} else if ok {
		return true, nil
	}
	return false, p.ContentTracker.Init(ctx)
}

func (p *Publisher) dvcRemote(ctx context.Context) (bool, error) {
	names, err := p.ContentTracker.Remotes(ctx)
	if err != nil {
		return false, err
	} else if slices.Contains(names, p.StoreRemote.Name) {
		return true, nil
	}
	return false, p.ContentTracker.AddRemote(ctx, p.StoreRemote)
}

func (p *Publisher) gitRemote(ctx context.Context) (bool, error) {
	names, err := p.SourceControl.Remotes(ctx)
	if err != nil {
		return false, err
	} else if slices.Contains(names, p.Origin.Name) {
		return true, nil
	}
	return false, p.SourceControl.AddRemote(ctx, p.Origin)
}

func (p *Publisher) gitCommit(ctx context.Context) (bool, error) {
	staged, err := p.SourceControl.HasStagedChanges(ctx)
	if err != nil {
		return false, err
	} else if !staged {
		return true, nil
	}
	return false, p.SourceControl.Commit(ctx, p.CommitMessage)
}

func (p *Publisher) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
