package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andyballingall/deploy-preflight/internal/app"
)

func main() {
	// Create context that cancels on SIGINT (Ctrl+C) or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore default signal handling after the first signal, so a second
	// Ctrl+C ends the process even while it waits for an answer.
	go func() {
		<-ctx.Done()
		stop()
	}()

	streams := app.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
	if err := app.Run(ctx, os.Args, streams, nil); err != nil {
		//nolint:gocritic // os.Exit is intentional
		os.Exit(1)
	}
}
