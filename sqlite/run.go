package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/toplinks"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ toplinks.RunService = (*RunService)(nil)

// RunService implements toplinks.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a finished run and its steps in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *toplinks.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, sources, records, state, artifact_path, checksum, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt), run.Sources, run.Records,
		string(run.State), run.ArtifactPath, run.Checksum, run.Error)
	if err != nil {
		return err
	}

	for i, step := range run.Steps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_steps (run_id, position, step, outcome, output, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, string(step.Step), string(step.Outcome), step.Output, step.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its steps.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*toplinks.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, sources, records, state, artifact_path, checksum, error
		FROM runs
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, toplinks.Errorf(toplinks.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT step, outcome, output, duration_ms
		FROM run_steps
		WHERE run_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var step toplinks.StepResult
		var durationMS int64
		if err := rows.Scan(&step.Step, &step.Outcome, &step.Output, &durationMS); err != nil {
			return nil, err
		}
		step.Duration = time.Duration(durationMS) * time.Millisecond
		run.Steps = append(run.Steps, step)
	}

	return run, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter toplinks.RunFilter) ([]*toplinks.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, finished_at, sources, records, state, artifact_path, checksum, error FROM runs WHERE 1=1")

	if filter.State != nil {
		query.WriteString(" AND state = ?")
		args = append(args, string(*filter.State))
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*toplinks.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*toplinks.Run, error) {
	var run toplinks.Run
	var startedAt, finishedAt string

	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.Sources, &run.Records,
		&run.State, &run.ArtifactPath, &run.Checksum, &run.Error); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
