package toplinks

import (
	"context"
	"time"
)

// Step names one failure domain of the publish sequence.
type Step string

// Publish steps in execution order.
const (
	StepSerialize Step = "serialize"
	StepGitInit   Step = "git_init"
	StepDVCInit   Step = "dvc_init"
	StepDVCRemote Step = "dvc_remote"
	StepDVCAdd    Step = "dvc_add"
	StepDVCPush   Step = "dvc_push"
	StepGitRemote Step = "git_remote"
	StepGitAdd    Step = "git_add"
	StepGitCommit Step = "git_commit"
	StepGitPush   Step = "git_push"
)

// Steps lists every publish step in execution order.
var Steps = []Step{
	StepSerialize,
	StepGitInit,
	StepDVCInit,
	StepDVCRemote,
	StepDVCAdd,
	StepDVCPush,
	StepGitRemote,
	StepGitAdd,
	StepGitCommit,
	StepGitPush,
}

// Outcome is the result of attempting a step.
type Outcome string

// Step outcomes.
const (
	OutcomeDone    Outcome = "done"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	OutcomeNotRun  Outcome = "not_run"
)

// State is how far a dataset has progressed through publishing.
type State string

// Publish states in order.
const (
	StatePending    State = "pending"
	StateSerialized State = "serialized"
	StateTracked    State = "tracked"
	StateStored     State = "stored"
	StateCommitted  State = "committed"
	StatePublished  State = "published"
)

// transitions maps each state to the steps that must succeed to enter it.
var transitions = []struct {
	state State
	steps []Step
}{
	{StateSerialized, []Step{StepSerialize}},
	{StateTracked, []Step{StepDVCAdd}},
	{StateStored, []Step{StepDVCPush}},
	{StateCommitted, []Step{StepGitAdd, StepGitCommit}},
	{StatePublished, []Step{StepGitPush}},
}

// ReachedState returns the furthest state whose transition steps, and every
// earlier transition's steps, succeeded. A skipped step counts as success.
func ReachedState(results []StepResult) State {
	outcomes := make(map[Step]Outcome, len(results))
	for _, r := range results {
		outcomes[r.Step] = r.Outcome
	}

	state := StatePending
	for _, tr := range transitions {
		for _, step := range tr.steps {
			switch outcomes[step] {
			case OutcomeDone, OutcomeSkipped:
			default:
				return state
			}
		}
		state = tr.state
	}
	return state
}

// FailurePolicy decides what happens to the remaining steps after one fails.
type FailurePolicy string

// Failure policies.
const (
	// ContinueOnFailure attempts every remaining step.
	ContinueOnFailure FailurePolicy = "continue"

	// StopOnFailure records every remaining step as not run.
	StopOnFailure FailurePolicy = "stop"
)

// Validate returns an error if the policy is unknown.
func (p FailurePolicy) Validate() error {
	switch p {
	case ContinueOnFailure, StopOnFailure:
		return nil
	}
	return Errorf(EINVALID, "unknown failure policy %q", p)
}

// StepResult records the outcome of one publish step.
type StepResult struct {
	Step     Step          `json:"step"`
	Outcome  Outcome       `json:"outcome"`
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
}

// LoadReport is the result of publishing a dataset.
type LoadReport struct {
	Artifact *Artifact    `json:"artifact"`
	Steps    []StepResult `json:"steps"`
	State    State        `json:"state"`
}

// Failed returns the steps that failed.
func (r *LoadReport) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Run is a ledger entry for one pipeline invocation.
type Run struct {
	ID           string       `json:"id"`
	StartedAt    time.Time    `json:"startedAt"`
	FinishedAt   time.Time    `json:"finishedAt"`
	Sources      int          `json:"sources"`
	Records      int          `json:"records"`
	State        State        `json:"state"`
	ArtifactPath string       `json:"artifactPath"`
	Checksum     string       `json:"checksum"`
	Error        string       `json:"error"`
	Steps        []StepResult `json:"steps"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	if r.State == "" {
		return Errorf(EINVALID, "run state required")
	}
	return nil
}

// RunService represents a ledger of pipeline runs.
type RunService interface {
	// CreateRun records a finished run and its steps.
	// An ID is generated if the run has none.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run and its steps.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// Steps are not populated.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	State *State `json:"state"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
