// Package main is the entry point for the taskdump CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskdump/internal/cli"
	"taskdump/internal/commands"
	"taskdump/internal/config"
	"taskdump/internal/source"
	"taskdump/internal/source/googletasks"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The Google Tasks client is only built for commands that need it.
	factory := func(ctx context.Context, cfg *config.Config) (source.Provider, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
