package git

import "context"

// Runner defines the repository operations the self-update loop and the
// requireClean chore need. All operations run in the runner's working
// directory and honour context cancellation.
type Runner interface {
	// Status returns the current working tree status.
	Status(ctx context.Context) (*Status, error)

	// IsDirty reports whether the working tree has any change, untracked files included.
	IsDirty(ctx context.Context) (bool, error)

	// RequireClean fails with ErrWorktreeDirty when the tree has changes.
	RequireClean(ctx context.Context) error

	// CommitAll stages every change and commits it with the given message.
	CommitAll(ctx context.Context, message string) error

	// CheckoutBranch points branch at base (or HEAD when base is empty) and
	// checks it out, carrying uncommitted changes along.
	CheckoutBranch(ctx context.Context, branch, base string) error

	// Push pushes branch to remote and sets its upstream.
	Push(ctx context.Context, remote, branch string, force bool) error

	// GitDir returns the absolute path of the repository's git directory.
	GitDir(ctx context.Context) (string, error)
}

// Compile-time check.
var _ Runner = (*CLIRunner)(nil)
