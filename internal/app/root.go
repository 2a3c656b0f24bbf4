package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andyballingall/deploy-preflight/internal/config"
	"github.com/andyballingall/deploy-preflight/internal/fs"
	"github.com/andyballingall/deploy-preflight/internal/preflight"
	"github.com/andyballingall/deploy-preflight/internal/prompt"
	"github.com/andyballingall/deploy-preflight/internal/repo"
	"github.com/andyballingall/deploy-preflight/internal/report"
)

// Version is the current version of preflight, set at build time.
var Version = "dev"

var LongDescription = `
preflight checks that a deployment may go ahead. It asks you to confirm the target
environment, refuses to continue with uncommitted changes, tags HEAD with a
timestamped release tag and verifies the tag. If any of the notice folders changed
since the previous release tag of the same environment, the changes are shown and
you must explicitly confirm before deploying. The change summary is
"git diff --stat" from the previous release tag to the new one, so lines added
since the last release count as insertions (+).

Tags are named {tagPrefix-}{environment}-{DD}-{MM}-{YYYY}-{H}-{M}.
Defaults can be stored in .preflight.yml at the repository root.`

// IOStreams are the standard streams the command reads and writes.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// rootOptions holds flag values. Run reads noColour and logCloser after execution.
type rootOptions struct {
	debug         bool
	noColour      bool
	dir           pathValue
	configPath    pathValue
	production    bool
	environment   labelValue
	tagPrefix     labelValue
	noticeFolders folderListValue
	logCloser     io.Closer
}

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(
	lazy *LazyManager,
	opts *rootOptions,
	ll *slog.LevelVar,
	streams IOStreams,
	env fs.EnvProvider,
) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "preflight [region] [targetName]",
		Short:         "Confirm, tag and verify a deployment before it goes out",
		Long:          LongDescription,
		Version:       Version,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.debug {
				ll.Set(slog.LevelDebug)
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			logger, closer, err := setupLogger(streams.ErrOut, ll, env)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}
			opts.logCloser = closer

			console := report.NewConsole(streams.Out, !opts.noColour)
			gitter := repo.NewCLIGitter(repo.NewExecRunner(), string(opts.dir), logger)
			prompter := prompt.NewPrompter(prompt.NewLineReader(streams.In), console)
			gatekeeper := preflight.NewGatekeeper(gitter, prompter, console, logger)

			lazy.SetInner(NewCLIManager(logger, gitter, gatekeeper, env, string(opts.dir)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("noticeFolderChanges") {
				if err := rejectFolderArgs(string(opts.dir), args); err != nil {
					return err
				}
			}
			defaults, err := lazy.Defaults(cmd.Context(), string(opts.configPath))
			if err != nil {
				return err
			}
			return lazy.Preflight(cmd.Context(), buildRequest(cmd.Flags(), args, opts, defaults))
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.production, "production", false, "Deploy into a production environment")
	flags.Var(&opts.environment, "environment", `Environment name (default "PROD" with --production, else "dev")`)
	flags.Var(&opts.tagPrefix, "tagPrefix", "Prefix for the git tag")
	flags.Var(&opts.noticeFolders, "noticeFolderChanges",
		"Folder whose changes since the last release must be confirmed.\n"+
			"Repeat the flag or separate folders with commas; a space-separated list is rejected")

	pflags := rootCmd.PersistentFlags()
	pflags.VarP(&opts.dir, "dir", "C", "Run against the git repository at this path")
	pflags.Var(&opts.configPath, "config", "Defaults file (default .preflight.yml at the repository root)")
	pflags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	pflags.BoolVarP(&opts.noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	pflags.BoolVar(&opts.noColour, "nocolor", false, "")
	pflags.BoolVar(&opts.noColour, "noColor", false, "")
	pflags.BoolVar(&opts.noColour, "noColour", false, "")
	_ = pflags.MarkHidden("nocolor")
	_ = pflags.MarkHidden("noColor")
	_ = pflags.MarkHidden("noColour")

	return rootCmd
}

// rejectFolderArgs catches "--noticeFolderChanges a b", where b would
// otherwise be taken as the region and never checked.
func rejectFolderArgs(dir string, args []string) error {
	for _, arg := range args {
		if strings.ContainsRune(arg, '/') || isDir(fs.ResolveFrom(dir, arg)) {
			return fmt.Errorf("argument %q looks like a folder: repeat --noticeFolderChanges "+
				"or separate folders with commas", arg)
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// buildRequest merges positional args and flags over the file defaults.
// Only flags set on the command line override a default.
func buildRequest(flags *pflag.FlagSet, args []string, opts *rootOptions, d *config.Defaults) preflight.Request {
	req := preflight.Request{
		Region:        d.Region,
		Production:    d.Production,
		Environment:   d.Environment,
		TagPrefix:     d.TagPrefix,
		NoticeFolders: slices.Clone(d.NoticeFolderChanges),
	}
	if req.Region == "" {
		req.Region = config.DefaultRegion
	}
	if len(args) > 0 {
		req.Region = args[0]
	}
	if len(args) > 1 {
		req.TargetName = args[1]
	}
	if flags.Changed("production") {
		req.Production = opts.production
	}
	if flags.Changed("environment") {
		req.Environment = string(opts.environment)
	}
	if flags.Changed("tagPrefix") {
		req.TagPrefix = string(opts.tagPrefix)
	}
	if flags.Changed("noticeFolderChanges") {
		req.NoticeFolders = slices.Clone([]string(opts.noticeFolders))
	}
	return req
}
