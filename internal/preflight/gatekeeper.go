package preflight

import (
	"context"
	"log/slog"
	"time"

	"github.com/andyballingall/deploy-preflight/internal/prompt"
	"github.com/andyballingall/deploy-preflight/internal/repo"
	"github.com/andyballingall/deploy-preflight/internal/report"
)

// Gatekeeper runs the preflight steps in order and stops at the first failure.
// A tag created before a later abort is left in place.
type Gatekeeper struct {
	gitter   repo.Gitter
	prompter *prompt.Prompter
	console  *report.Console
	logger   *slog.Logger
	now      func() time.Time
}

func NewGatekeeper(g repo.Gitter, p *prompt.Prompter, c *report.Console, l *slog.Logger) *Gatekeeper {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Gatekeeper{gitter: g, prompter: p, console: c, logger: l, now: time.Now}
}

// SetClock replaces the wall clock used to name tags.
func (gk *Gatekeeper) SetClock(now func() time.Time) {
	gk.now = now
}

// Run checks that req may be deployed. A nil error means "Ready for deploy."
// has been printed.
func (gk *Gatekeeper) Run(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	gk.logger.Debug("starting preflight", "region", req.Region, "target", req.TargetName,
		"environment", req.EnvironmentLabel(), "noticeFolders", req.NoticeFolders)

	gk.console.Info("Deploying to " + req.EnvironmentLabel())
	if err := gk.prompter.ConfirmDefaultYes(ctx, "Is this ok?"); err != nil {
		return err
	}

	if err := gk.checkWorkingTree(ctx); err != nil {
		return err
	}

	if err := gk.tag(ctx, req); err != nil {
		return err
	}

	if err := gk.reviewNoticeFolders(ctx, req); err != nil {
		return err
	}

	gk.console.Info("Ready for deploy.")
	return nil
}

func (gk *Gatekeeper) checkWorkingTree(ctx context.Context) error {
	st, err := gk.gitter.Status(ctx)
	if err != nil {
		return err
	}
	gk.console.Info("On git branch:", st.Branch)
	if !st.Clean {
		gk.console.Warn("There are uncommitted changes")
		return ErrDirtyTree
	}
	return nil
}

// tag creates the release tag and confirms it decorates HEAD.
func (gk *Gatekeeper) tag(ctx context.Context, req Request) error {
	name := req.TagName(gk.now())
	gk.logger.Debug("creating tag", "tag", name)
	if err := gk.gitter.CreateTag(ctx, name); err != nil {
		return err
	}

	dec, err := gk.gitter.HeadDecoration(ctx)
	if err != nil {
		return err
	}
	if !repo.TagOnHead(dec, name) {
		return &TagVerificationError{Expected: name, Decoration: dec}
	}
	gk.console.Info("Git tag:", name)
	return nil
}

// reviewNoticeFolders compares only the two newest matching tags. Any notice
// folder that changed between them, or the absence of a previous tag, needs
// an explicit "y" to continue.
func (gk *Gatekeeper) reviewNoticeFolders(ctx context.Context, req Request) error {
	all, err := gk.gitter.Tags(ctx)
	if err != nil {
		return err
	}
	tags := MatchingTags(all, req.TagNamePrefix())
	gk.logger.Debug("matching tags", "prefix", req.TagNamePrefix(), "count", len(tags))

	if len(tags) < 2 {
		gk.console.Warn("ATTENTION", "No previous tags found!")
		gk.console.Warn("This could mean, that initial setup is required.")
		gk.console.Warn("Please take the required actions!")
		return gk.prompter.ConfirmDefaultNo(ctx, "Continue?")
	}

	newest, previous := tags[0], tags[1]
	for _, folder := range req.NoticeFolders {
		stat, err := gk.gitter.DiffStat(ctx, previous, newest, folder)
		if err != nil {
			return err
		}
		if stat == "" {
			gk.logger.Debug("no changes in notice folder", "folder", folder)
			continue
		}

		gk.console.Info("Changes in " + folder + " since last release:\n")
		gk.console.Println(stat)
		gk.console.Warn("ATTENTION", folder+" changed")
		gk.console.Warn("Please take the required actions!")
		if err := gk.prompter.ConfirmDefaultNo(ctx, "Continue?"); err != nil {
			return err
		}
	}
	return nil
}
