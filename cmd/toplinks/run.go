package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/toplinks"
	"github.com/google/uuid"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	run, err := deps.Pipeline.Run(deps.Ctx, toplinks.NewRunContext(uuid.NewString()))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplinks.ErrorMessage(err))
		return err
	}

	printRunSummary(deps.Stdout, run)
	return nil
}

// printRunSummary writes a one-line summary of run followed by any failed steps.
func printRunSummary(w io.Writer, run *toplinks.Run) {
	fmt.Fprintf(w, "Run %s: %s, %d records written to %s\n", run.ID, run.State, run.Records, run.ArtifactPath)
	for _, s := range run.Steps {
		if s.Outcome == toplinks.OutcomeFailed {
			fmt.Fprintf(w, "  %s failed: %s\n", s.Step, s.Output)
		}
	}
}
