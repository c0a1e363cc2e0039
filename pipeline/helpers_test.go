package pipeline_test

import (
	"context"
	"slices"

	"github.com/fwojciec/toplinks"
	"github.com/fwojciec/toplinks/mock"
)

// fakeTools simulates git and DVC state in memory and records every
// mutating call.
type fakeTools struct {
	gitInit     bool
	dvcInit     bool
	gitRemotes  []string
	dvcRemotes  []string
	staged      bool
	calls       []string
	failOn      map[string]error
	pushedTo    string
	commitMsg   string
	trackedPath string
}

func newFakeTools() *fakeTools {
	return &fakeTools{failOn: make(map[string]error)}
}

func (f *fakeTools) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

func (f *fakeTools) sourceControl() *mock.SourceControl {
	return &mock.SourceControl{
		IsInitializedFn: func(context.Context) (bool, error) { return f.gitInit, nil },
		InitFn: func(context.Context) error {
			if err := f.call("git init"); err != nil {
				return err
			}
			f.gitInit = true
			return nil
		},
		RemotesFn: func(context.Context) ([]string, error) { return slices.Clone(f.gitRemotes), nil },
		AddRemoteFn: func(_ context.Context, r toplinks.Remote) error {
			if err := f.call("git remote add"); err != nil {
				return err
			}
			f.gitRemotes = append(f.gitRemotes, r.Name)
			return nil
		},
		AddAllFn: func(context.Context) error {
			if err := f.call("git add"); err != nil {
				return err
			}
			f.staged = true
			return nil
		},
		HasStagedChangesFn: func(context.Context) (bool, error) { return f.staged, nil },
		CommitFn: func(_ context.Context, msg string) error {
			if err := f.call("git commit"); err != nil {
				return err
			}
			f.commitMsg = msg
			f.staged = false
			return nil
		},
		PushFn: func(_ context.Context, remote, branch string) error {
			if err := f.call("git push"); err != nil {
				return err
			}
			f.pushedTo = remote + "/" + branch
			return nil
		},
	}
}

func (f *fakeTools) contentTracker() *mock.ContentTracker {
	return &mock.ContentTracker{
		IsInitializedFn: func(context.Context) (bool, error) { return f.dvcInit, nil },
		InitFn: func(context.Context) error {
			if err := f.call("dvc init"); err != nil {
				return err
			}
			f.dvcInit = true
			return nil
		},
		RemotesFn: func(context.Context) ([]string, error) { return slices.Clone(f.dvcRemotes), nil },
		AddRemoteFn: func(_ context.Context, r toplinks.Remote) error {
			if err := f.call("dvc remote add"); err != nil {
				return err
			}
			f.dvcRemotes = append(f.dvcRemotes, r.Name)
			return nil
		},
		AddFn: func(_ context.Context, path string) error {
			if err := f.call("dvc add"); err != nil {
				return err
			}
			f.trackedPath = path
			return nil
		},
		PushFn: func(context.Context) error { return f.call("dvc push") },
	}
}

func outcomes(steps []toplinks.StepResult) map[toplinks.Step]toplinks.Outcome {
	m := make(map[toplinks.Step]toplinks.Outcome, len(steps))
	for _, s := range steps {
		m[s.Step] = s.Outcome
	}
	return m
}

func stepNames(steps []toplinks.StepResult) []toplinks.Step {
	names := make([]toplinks.Step, len(steps))
	for i, s := range steps {
		names[i] = s.Step
	}
	return names
}
