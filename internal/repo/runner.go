package repo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// LocaleEnv pins git's human-readable output to English so it can be parsed.
const LocaleEnv = "LC_ALL=en_US.UTF-8"

// Result is the captured outcome of a command that ran to completion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external command in dir.
// A command that starts but exits non-zero is reported through Result.ExitCode,
// err is reserved for commands that could not be run at all.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner is the os/exec implementation of Runner.
type ExecRunner struct {
	env []string
}

// NewExecRunner creates an ExecRunner which inherits the process environment
// with LocaleEnv appended.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{env: append(os.Environ(), LocaleEnv)}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	//nolint:gosec // name and args are passed as separate argv entries, never through a shell
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = r.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
