package exec

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/toplinks"
)

// Ensure DVC implements toplinks.ContentTracker at compile time.
var _ toplinks.ContentTracker = (*DVC)(nil)

// DVC drives the dvc command-line tool in a working directory.
type DVC struct {
	runner Runner
	dir    string
}

// NewDVC creates a new DVC operating on dir.
func NewDVC(runner Runner, dir string) *DVC {
	return &DVC{runner: runner, dir: dir}
}

func (d *DVC) run(ctx context.Context, args ...string) (string, error) {
	out, err := d.runner.Run(ctx, d.dir, "dvc", args...)
	if err != nil {
		return out, toolError(err)
	}
	return out, nil
}

// IsInitialized reports whether the working directory is a DVC root.
func (d *DVC) IsInitialized(ctx context.Context) (bool, error) {
	out, err := d.runner.Run(ctx, d.dir, "dvc", "root")
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	} else if err != nil {
		return false, toolError(err)
	}
	return out == ".", nil
}

// Init initializes DVC in the working directory.
func (d *DVC) Init(ctx context.Context) error {
	_, err := d.run(ctx, "init")
	return err
}

// Remotes lists configured storage remote names.
func (d *DVC) Remotes(ctx context.Context) ([]string, error) {
	out, err := d.run(ctx, "remote", "list")
	if err != nil {
		return nil, err
	}

	// Each line is "<name>\t<url>", optionally followed by "(default)".
	var names []string
	for _, line := range lines(out) {
		if fields := strings.Fields(line); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names, nil
}

// AddRemote registers remote as the default storage remote.
func (d *DVC) AddRemote(ctx context.Context, remote toplinks.Remote) error {
	_, err := d.run(ctx, "remote", "add", "-d", remote.Name, remote.URL)
	return err
}

// Add starts tracking the file at path.
func (d *DVC) Add(ctx context.Context, path string) error {
	_, err := d.run(ctx, "add", path)
	return err
}

// Push uploads tracked content to the default remote.
func (d *DVC) Push(ctx context.Context) error {
	_, err := d.run(ctx, "push")
	return err
}
