package mock

import (
	"context"

	"github.com/fwojciec/toplinks"
)

var _ toplinks.RunService = (*RunService)(nil)

// RunService is a mock implementation of toplinks.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *toplinks.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*toplinks.Run, error)
	FindRunsFn    func(ctx context.Context, filter toplinks.RunFilter) ([]*toplinks.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *toplinks.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*toplinks.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter toplinks.RunFilter) ([]*toplinks.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
