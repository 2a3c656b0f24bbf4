package repo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Ensure the interface is satisfied.
var _ Gitter = (*CLIGitter)(nil)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	runner Runner
	dir    string
	logger *slog.Logger
}

// NewCLIGitter creates a CLIGitter operating on the repository containing dir.
// An empty dir means the current working directory.
func NewCLIGitter(r Runner, dir string, l *slog.Logger) *CLIGitter {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &CLIGitter{runner: r, dir: dir, logger: l}
}

// git runs a git subcommand and returns its stdout.
func (g *CLIGitter) git(ctx context.Context, args ...string) (string, error) {
	start := time.Now()
	res, err := g.runner.Run(ctx, g.dir, "git", args...)
	g.logger.Debug("ran git", "args", args, "exitCode", res.ExitCode, "duration", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}
	if res.ExitCode != 0 {
		return "", &CommandError{
			Args:     append([]string{"git"}, args...),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}
	return res.Stdout, nil
}

func (g *CLIGitter) Root(ctx context.Context) (string, error) {
	out, err := g.git(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to find git root: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *CLIGitter) Status(ctx context.Context) (Status, error) {
	out, err := g.git(ctx, "status")
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(out)
}

func (g *CLIGitter) CreateTag(ctx context.Context, name string) error {
	_, err := g.git(ctx, "tag", name)
	return err
}

func (g *CLIGitter) HeadDecoration(ctx context.Context) (string, error) {
	return g.git(ctx, "log", "--tags", "--simplify-by-decoration", "--pretty=format: %d", "-1")
}

func (g *CLIGitter) Tags(ctx context.Context) ([]Revision, error) {
	out, err := g.git(ctx, "for-each-ref", "--sort=creatordate", "--format=%(refname)", "refs/tags")
	if err != nil {
		return nil, err
	}
	lines := SplitLines(out)
	tags := make([]Revision, 0, len(lines))
	for _, l := range lines {
		tags = append(tags, Revision(l))
	}
	return tags, nil
}

func (g *CLIGitter) DiffStat(ctx context.Context, from, to Revision, folder string) (string, error) {
	out, err := g.git(ctx, "diff", from.String(), to.String(), "--stat", "--", folder)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
