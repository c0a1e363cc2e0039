package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/toplinks"
	"github.com/fwojciec/toplinks/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(startedAt time.Time, state toplinks.State) *toplinks.Run {
	return &toplinks.Run{
		StartedAt:    startedAt,
		FinishedAt:   startedAt.Add(3 * time.Second),
		Sources:      2,
		Records:      10,
		State:        state,
		ArtifactPath: "top_links.csv",
		Checksum:     "0123456789abcdef",
		Steps: []toplinks.StepResult{
			{Step: toplinks.StepSerialize, Outcome: toplinks.OutcomeDone, Duration: 5 * time.Millisecond},
			{Step: toplinks.StepGitInit, Outcome: toplinks.OutcomeSkipped},
			{Step: toplinks.StepDVCPush, Outcome: toplinks.OutcomeFailed, Output: "ERROR: failed to push data to the cloud", Duration: 1500 * time.Millisecond},
		},
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		run := newRun(time.Now(), toplinks.StateTracked)
		err := svc.CreateRun(context.Background(), run)

		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
	})

	t.Run("keeps provided ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		run := newRun(time.Now(), toplinks.StateTracked)
		run.ID = "run-1"
		require.NoError(t, svc.CreateRun(context.Background(), run))

		found, err := svc.FindRunByID(context.Background(), "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", found.ID)
	})

	t.Run("sets finish time when missing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		run := newRun(time.Now(), toplinks.StatePending)
		run.FinishedAt = time.Time{}
		require.NoError(t, svc.CreateRun(context.Background(), run))

		assert.False(t, run.FinishedAt.IsZero())
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		err := svc.CreateRun(context.Background(), &toplinks.Run{})

		require.Error(t, err)
		assert.Equal(t, toplinks.EINVALID, toplinks.ErrorCode(err))
	})

	t.Run("rejects duplicate ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		first := newRun(time.Now(), toplinks.StatePublished)
		first.ID = "dup"
		require.NoError(t, svc.CreateRun(ctx, first))

		second := newRun(time.Now(), toplinks.StatePublished)
		second.ID = "dup"
		require.Error(t, svc.CreateRun(ctx, second))
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns run with ordered steps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		startedAt := time.Date(2024, 5, 10, 0, 0, 0, 123456789, time.UTC)
		run := newRun(startedAt, toplinks.StateTracked)
		run.Error = "dvc push failed"
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)

		require.NoError(t, err)
		assert.True(t, startedAt.Equal(found.StartedAt))
		assert.True(t, run.FinishedAt.Equal(found.FinishedAt))
		assert.Equal(t, 2, found.Sources)
		assert.Equal(t, 10, found.Records)
		assert.Equal(t, toplinks.StateTracked, found.State)
		assert.Equal(t, "top_links.csv", found.ArtifactPath)
		assert.Equal(t, "0123456789abcdef", found.Checksum)
		assert.Equal(t, "dvc push failed", found.Error)

		require.Len(t, found.Steps, 3)
		assert.Equal(t, toplinks.StepSerialize, found.Steps[0].Step)
		assert.Equal(t, toplinks.OutcomeSkipped, found.Steps[1].Outcome)
		assert.Equal(t, toplinks.OutcomeFailed, found.Steps[2].Outcome)
		assert.Equal(t, "ERROR: failed to push data to the cloud", found.Steps[2].Output)
		assert.Equal(t, 1500*time.Millisecond, found.Steps[2].Duration)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		_, err := svc.FindRunByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, toplinks.ENOTFOUND, toplinks.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.RunService) {
		t.Helper()
		base := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		states := []toplinks.State{toplinks.StatePublished, toplinks.StateTracked, toplinks.StatePublished}
		for i, state := range states {
			run := newRun(base.Add(time.Duration(i)*24*time.Hour), state)
			run.ID = []string{"a", "b", "c"}[i]
			require.NoError(t, svc.CreateRun(context.Background(), run))
		}
	}

	t.Run("returns newest first without steps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), toplinks.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "c", runs[0].ID)
		assert.Equal(t, "b", runs[1].ID)
		assert.Equal(t, "a", runs[2].ID)
		assert.Empty(t, runs[0].Steps)
	})

	t.Run("filters by state", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		state := toplinks.StateTracked
		runs, err := svc.FindRuns(context.Background(), toplinks.RunFilter{State: &state})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "b", runs[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), toplinks.RunFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "b", runs[0].ID)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		seed(t, svc)

		runs, err := svc.FindRuns(context.Background(), toplinks.RunFilter{Offset: 2})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "a", runs[0].ID)
	})

	t.Run("returns empty result for empty ledger", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		runs, err := svc.FindRuns(context.Background(), toplinks.RunFilter{})

		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}
