package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/andyballingall/deploy-preflight/internal/fs"
	"github.com/andyballingall/deploy-preflight/internal/prompt"
	"github.com/andyballingall/deploy-preflight/internal/report"
)

// Run executes preflight with the given arguments (args[0] is the program name).
// A non-nil error means the deployment must not proceed.
func Run(ctx context.Context, args []string, streams IOStreams, envProvider fs.EnvProvider) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	// Local lazy instance ensures t.Parallel() safety
	lazy := &LazyManager{}
	opts := &rootOptions{}

	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}

	rootCmd := NewRootCmd(lazy, opts, logLevel, streams, envProvider)
	rootCmd.SetArgs(args[1:]) // Skip the program name
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	err := rootCmd.ExecuteContext(ctx)
	if opts.logCloser != nil {
		_ = opts.logCloser.Close()
	}
	if err != nil {
		reportError(streams, !opts.noColour, err)
		return err
	}
	return nil
}

// reportError prints an operator abort or an interrupt as a plain "Aborted."
// and anything else as an error.
func reportError(streams IOStreams, useColour bool, err error) {
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		report.NewConsole(streams.Out, useColour).Info("Aborted.")
		return
	}
	report.NewConsole(streams.ErrOut, useColour).Error(err)
}
