package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"taskdump/internal/config"
	"taskdump/internal/exitcode"
	"taskdump/internal/output"
	"taskdump/internal/source"
	"taskdump/internal/tasklist"
)

func init() {
	Register(&DumpCmd{})
}

// DumpCmd implements the dump command.
// Handles both `taskdump` (no args) and `taskdump dump [item...]`.
type DumpCmd struct {
	format string
	empty  bool
}

// SetFormat sets the output format name (for testing).
func (c *DumpCmd) SetFormat(name string) {
	c.format = name
}

// SetEmpty requests an empty list (for testing).
func (c *DumpCmd) SetEmpty(empty bool) {
	c.empty = empty
}

func (c *DumpCmd) Name() string      { return "dump" }
func (c *DumpCmd) Aliases() []string { return []string{"print"} }
func (c *DumpCmd) Synopsis() string  { return "Print a task list" }
func (c *DumpCmd) Usage() string     { return "taskdump dump [--format <fmt>] [--empty] [item...]" }
func (c *DumpCmd) NeedsAuth() bool   { return false }

func (c *DumpCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
	fs.BoolVar(&c.empty, "empty", false, "")
}

func (c *DumpCmd) Run(ctx context.Context, cfg *config.Config, provider source.Provider, args []string, out, errOut io.Writer) int {
	format, err := resolveFormat(cfg, c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var src source.Source
	switch {
	case c.empty && len(args) > 0:
		fmt.Fprintln(errOut, "error: --empty does not take items")
		return exitcode.UserError
	case c.empty:
		src = source.Static(nil)
	case len(args) > 0:
		src = source.Static(args)
	default:
		src = source.Sample()
	}

	return dumpFrom(ctx, src, format, out, errOut)
}

// resolveFormat picks the --format flag value, falling back to the
// configured default.
func resolveFormat(cfg *config.Config, flagValue string) (output.Format, error) {
	name := flagValue
	if name == "" {
		name = cfg.Settings.Format
	}
	return output.ParseFormat(name)
}

// dumpFrom builds a task list from src and writes it to out.
func dumpFrom(ctx context.Context, src source.Source, format output.Format, out, errOut io.Writer) int {
	log := zerolog.Ctx(ctx)

	items, err := src.Items(ctx)
	if err != nil {
		return reportSourceError(errOut, err)
	}

	list := tasklist.New(items)
	log.Debug().Int("items", list.Len()).Str("format", string(format)).Msg("dumping task list")

	if err := list.DumpTo(out, format); err != nil {
		log.Error().Err(err).Msg("write failed")
		fmt.Fprintf(errOut, "error: write failed: %v\n", err)
		return exitcode.OutputError
	}
	return exitcode.Success
}
