package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdump/internal/config"
	"taskdump/internal/exitcode"
	"taskdump/internal/source"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd implements the pull command: dump the open tasks of a remote list.
type PullCmd struct {
	format string
}

// SetFormat sets the output format name (for testing).
func (c *PullCmd) SetFormat(name string) {
	c.format = name
}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Print open tasks from Google Tasks" }
func (c *PullCmd) Usage() string     { return "taskdump pull [--format <fmt>] [<list-name>]" }
func (c *PullCmd) NeedsAuth() bool   { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, provider source.Provider, args []string, out, errOut io.Writer) int {
	format, err := resolveFormat(cfg, c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if provider == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdump login)")
		return exitcode.AuthError
	}

	listName := strings.TrimSpace(strings.Join(args, " "))
	return dumpFrom(ctx, provider.List(listName), format, out, errOut)
}

// reportSourceError prints err and maps it to an exit code.
func reportSourceError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, source.ErrNotFound), errors.Is(err, source.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, source.ErrAuth):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
