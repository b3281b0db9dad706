// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdump/internal/commands"
	"taskdump/internal/config"
	"taskdump/internal/exitcode"
	"taskdump/internal/logging"
	"taskdump/internal/source"
)

// DefaultCommand runs when no arguments are given.
const DefaultCommand = "dump"

// ProviderFactory creates the remote list provider from config.
// Used to inject the backend during dispatch.
type ProviderFactory func(ctx context.Context, cfg *config.Config) (source.Provider, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ProviderFactory
}

// NewDispatcher creates a new dispatcher with the given registry and provider factory.
func NewDispatcher(registry *commands.Registry, factory ProviderFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" && !afterTerminator(args, positionalArgs) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if err := cfg.Load(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.LogLevel())
	ctx = logger.WithContext(ctx)
	logger.Debug().Str("command", cmd.Name()).Str("config_dir", cfg.Dir).Msg("dispatching")

	var provider source.Provider
	if cmd.NeedsAuth() {
		if d.factory == nil {
			// Pre-flight checks only; commands must handle a nil provider.
			if !cfg.HasOAuthClient() {
				fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
				return exitcode.AuthError
			}
			if !cfg.HasToken() {
				fmt.Fprintln(errOut, "error: not logged in (run: taskdump login)")
				return exitcode.AuthError
			}
		} else {
			provider, err = d.factory(ctx, cfg)
			if err != nil {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
		}
	}

	return cmd.Run(ctx, cfg, provider, positionalArgs, out, errOut)
}

// afterTerminator reports whether positional arguments follow a "--".
func afterTerminator(args, positional []string) bool {
	i := len(args) - len(positional) - 1
	return i >= 0 && args[i] == "--"
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	const undefined = "flag provided but not defined: "
	msg := err.Error()
	if strings.HasPrefix(msg, undefined) {
		return "unknown flag: " + strings.TrimPrefix(msg, undefined)
	}
	return msg
}
