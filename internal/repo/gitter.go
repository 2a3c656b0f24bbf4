package repo

import "context"

// Revision represents a git ref that can be compared (a tag refname or hash).
type Revision string

func (r Revision) String() string { return string(r) }

// Status is the part of `git status` the preflight cares about.
type Status struct {
	Branch string
	Clean  bool
	Raw    string
}

// Gitter defines the git operations used by the deployment gatekeeper.
type Gitter interface {
	// Root returns the top-level directory of the repository.
	Root(ctx context.Context) (string, error)

	// Status reports the current branch and whether the working tree is clean.
	Status(ctx context.Context) (Status, error)

	// CreateTag creates a lightweight tag on HEAD.
	CreateTag(ctx context.Context, name string) error

	// HeadDecoration returns the decoration of the most recent tagged commit,
	// e.g. " (HEAD -> main, tag: dev-05-03-2024-14-7)".
	HeadDecoration(ctx context.Context) (string, error)

	// Tags lists all tag refnames, oldest first by creator date.
	Tags(ctx context.Context) ([]Revision, error)

	// DiffStat returns the `--stat` summary of changes to folder between from and to.
	DiffStat(ctx context.Context, from, to Revision, folder string) (string, error)
}
