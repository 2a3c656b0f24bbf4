package repo

import (
	"fmt"
	"strings"
)

// CommandError is returned when a git command exits with a non-zero status.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// BranchNotFoundError is returned when `git status` output has no "On branch" line,
// for example on a detached HEAD.
type BranchNotFoundError struct {
	Output string
}

func (e *BranchNotFoundError) Error() string {
	return "could not determine current branch from git status output"
}
