// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskdump/internal/config"
	"taskdump/internal/source"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command reads from a remote provider.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided. provider is nil if NeedsAuth() returns false.
	// The logger for diagnostics is attached to ctx (zerolog.Ctx).
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, provider source.Provider, args []string, out, errOut io.Writer) int
}
