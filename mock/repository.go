package mock

import (
	"context"

	"github.com/fwojciec/toplinks"
)

// Compile-time interface verification.
var (
	_ toplinks.SourceControl  = (*SourceControl)(nil)
	_ toplinks.ContentTracker = (*ContentTracker)(nil)
)

// SourceControl is a mock implementation of toplinks.SourceControl.
type SourceControl struct {
	IsInitializedFn    func(ctx context.Context) (bool, error)
	InitFn             func(ctx context.Context) error
	RemotesFn          func(ctx context.Context) ([]string, error)
	AddRemoteFn        func(ctx context.Context, remote toplinks.Remote) error
	AddAllFn           func(ctx context.Context) error
	HasStagedChangesFn func(ctx context.Context) (bool, error)
	CommitFn           func(ctx context.Context, message string) error
	PushFn             func(ctx context.Context, remote, branch string) error
}

func (s *SourceControl) IsInitialized(ctx context.Context) (bool, error) {
	return s.IsInitializedFn(ctx)
}

func (s *SourceControl) Init(ctx context.Context) error {
	return s.InitFn(ctx)
}

func (s *SourceControl) Remotes(ctx context.Context) ([]string, error) {
	return s.RemotesFn(ctx)
}

func (s *SourceControl) AddRemote(ctx context.Context, remote toplinks.Remote) error {
	return s.AddRemoteFn(ctx, remote)
}

func (s *SourceControl) AddAll(ctx context.Context) error {
	return s.AddAllFn(ctx)
}

func (s *SourceControl) HasStagedChanges(ctx context.Context) (bool, error) {
	return s.HasStagedChangesFn(ctx)
}

func (s *SourceControl) Commit(ctx context.Context, message string) error {
	return s.CommitFn(ctx, message)
}

func (s *SourceControl) Push(ctx context.Context, remote, branch string) error {
	return s.PushFn(ctx, remote, branch)
}

// ContentTracker is a mock implementation of toplinks.ContentTracker.
type ContentTracker struct {
	IsInitializedFn func(ctx context.Context) (bool, error)
	InitFn          func(ctx context.Context) error
	RemotesFn       func(ctx context.Context) ([]string, error)
	AddRemoteFn     func(ctx context.Context, remote toplinks.Remote) error
	AddFn           func(ctx context.Context, path string) error
	PushFn          func(ctx context.Context) error
}

func (t *ContentTracker) IsInitialized(ctx context.Context) (bool, error) {
	return t.IsInitializedFn(ctx)
}

func (t *ContentTracker) Init(ctx context.Context) error {
	return t.InitFn(ctx)
}

func (t *ContentTracker) Remotes(ctx context.Context) ([]string, error) {
	return t.RemotesFn(ctx)
}

func (t *ContentTracker) AddRemote(ctx context.Context, remote toplinks.Remote) error {
	return t.AddRemoteFn(ctx, remote)
}

func (t *ContentTracker) Add(ctx context.Context, path string) error {
	return t.AddFn(ctx, path)
}

func (t *ContentTracker) Push(ctx context.Context) error {
	return t.PushFn(ctx)
}
