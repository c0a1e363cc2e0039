package toplinks

import "context"

// Remote is a named remote location registered with git or DVC.
type Remote struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// SourceControl is the version-control tool operating on the working directory.
// Failed invocations return ETOOL errors carrying the tool's output.
type SourceControl interface {
	// IsInitialized reports whether a repository is rooted at the working directory.
	IsInitialized(ctx context.Context) (bool, error)
	Init(ctx context.Context) error

	// Remotes lists the names of configured remotes.
	Remotes(ctx context.Context) ([]string, error)
	AddRemote(ctx context.Context, remote Remote) error

	// AddAll stages every change in the working directory.
	AddAll(ctx context.Context) error

	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
}

// ContentTracker is the content-tracking tool that versions large data
// files and syncs them to remote storage.
// Failed invocations return ETOOL errors carrying the tool's output.
type ContentTracker interface {
	// IsInitialized reports whether the working directory is a tracker root.
	IsInitialized(ctx context.Context) (bool, error)
	Init(ctx context.Context) error

	// Remotes lists the names of configured storage remotes.
	Remotes(ctx context.Context) ([]string, error)

	// AddRemote registers a storage remote as the default remote.
	AddRemote(ctx context.Context, remote Remote) error

	// Add starts tracking the file at path.
	Add(ctx context.Context, path string) error

	// Push uploads tracked content to the default remote.
	Push(ctx context.Context) error
}
