package exec

import (
	"context"
	"errors"

	"github.com/fwojciec/toplinks"
)

// Ensure Git implements toplinks.SourceControl at compile time.
var _ toplinks.SourceControl = (*Git)(nil)

// Git drives the git command-line tool in a working directory.
type Git struct {
	runner Runner
	dir    string
}

// NewGit creates a new Git operating on dir.
func NewGit(runner Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, g.dir, "git", args...)
	if err != nil {
		return out, toolError(err)
	}
	return out, nil
}

// IsInitialized reports whether a repository is rooted at the working
// directory. A repository in a parent directory does not count.
func (g *Git) IsInitialized(ctx context.Context) (bool, error) {
	out, err := g.runner.Run(ctx, g.dir, "git", "rev-parse", "--git-dir")
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	} else if err != nil {
		return false, toolError(err)
	}
	return out == ".git", nil
}

// Init creates a repository in the working directory.
func (g *Git) Init(ctx context.Context) error {
	_, err := g.run(ctx, "init")
	return err
}

// Remotes lists configured remote names.
func (g *Git) Remotes(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "remote")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// AddRemote registers a remote. It fails if the name is already taken.
func (g *Git) AddRemote(ctx context.Context, remote toplinks.Remote) error {
	_, err := g.run(ctx, "remote", "add", remote.Name, remote.URL)
	return err
}

// AddAll stages every change in the working directory.
func (g *Git) AddAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", ".")
	return err
}

// HasStagedChanges reports whether anything is staged for commit.
func (g *Git) HasStagedChanges(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return len(lines(out)) > 0, nil
}

// Commit records staged changes with message.
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes branch to remote and sets it as upstream.
func (g *Git) Push(ctx context.Context, remote, branch string) error {
	_, err := g.run(ctx, "push", "-u", remote, branch)
	return err
}

// toolError converts a runner error into an ETOOL application error.
func toolError(err error) error {
	return toplinks.Errorf(toplinks.ETOOL, "%v", err)
}
