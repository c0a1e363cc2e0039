package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/toplinks"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	filter := toplinks.RunFilter{Limit: c.Limit}
	if c.State != "" {
		state := toplinks.State(c.State)
		filter.State = &state
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplinks.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'toplinks run' to start one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.StartedAt.Local().Format(time.DateTime), r.State, r.Records)
	}
	return tw.Flush()
}

func (c *RunsCmd) show(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplinks.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run:      %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(deps.Stdout, "State:    %s\n", run.State)
	fmt.Fprintf(deps.Stdout, "Records:  %d from %d sources\n", run.Records, run.Sources)
	if run.ArtifactPath != "" {
		fmt.Fprintf(deps.Stdout, "Artifact: %s (%s)\n", run.ArtifactPath, run.Checksum)
	}
	if run.Error != "" {
		fmt.Fprintf(deps.Stdout, "Error:    %s\n", run.Error)
	}

	if len(run.Steps) == 0 {
		return nil
	}
	fmt.Fprintln(deps.Stdout)
	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range run.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Step, s.Outcome, s.Duration.Round(time.Millisecond), s.Output)
	}
	return tw.Flush()
}
