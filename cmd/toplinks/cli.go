package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/toplinks"
)

// PipelineRunner executes one pipeline run.
type PipelineRunner interface {
	Run(ctx context.Context, rc *toplinks.RunContext) (*toplinks.Run, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Runs     toplinks.RunService
	Pipeline PipelineRunner
	Schedule string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `short:"c" type:"path" help:"YAML configuration file"`
	EnvFile   string `name:"env-file" default:".env" help:"Dotenv file loaded before reading TOPLINKS_* variables"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Minimum log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Run      RunCmd      `cmd:"" help:"Run the pipeline once"`
	Schedule ScheduleCmd `cmd:"" help:"Run the pipeline on the configured cron schedule"`
	Runs     RunsCmd     `cmd:"" help:"List recorded runs or show one run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct{}

// ScheduleCmd is the "schedule" subcommand.
type ScheduleCmd struct {
	Spec string `help:"Cron spec overriding the configured schedule"`
	Now  bool   `help:"Run once immediately before waiting for the schedule"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID    string `arg:"" optional:"" help:"Run ID to show"`
	State string `help:"Only list runs that reached this state"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list"`
}
