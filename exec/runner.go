// Package exec provides git and DVC implementations of the toplinks
// repository interfaces by invoking their command-line tools.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every tool invocation.
const DefaultTimeout = 2 * time.Minute

// Runner runs an external command in a directory and returns its combined
// stdout and stderr.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, e.Output)
}

// CommandRunner runs commands with os/exec.
type CommandRunner struct {
	// Timeout bounds each command. Zero means DefaultTimeout.
	Timeout time.Duration

	// Env is appended to the current process environment.
	Env []string
}

// NewCommandRunner creates a new CommandRunner with the default timeout.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{Timeout: DefaultTimeout}
}

// Run executes name with args in dir.
// A non-zero exit status is returned as *ExitError.
func (r *CommandRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())
	if err == nil {
		return output, nil
	}

	line := commandLine(name, args)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return output, fmt.Errorf("%s: %w", line, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, &ExitError{
			Command:  line,
			ExitCode: exitErr.ExitCode(),
			Output:   output,
		}
	}
	return output, fmt.Errorf("%s: %w", line, err)
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// lines splits command output into non-empty trimmed lines.
func lines(output string) []string {
	var out []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
