package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdump/internal/config"
	"taskdump/internal/exitcode"
	"taskdump/internal/source"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	// Registry lists the commands to describe. Nil means DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdump help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, provider source.Provider, args []string, out, errOut io.Writer) int {
	registry := c.Registry
	if registry == nil {
		registry = DefaultRegistry
	}

	var b strings.Builder
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %-40s %s\n", "taskdump", "Print the sample task list")
	for _, cmd := range registry.All() {
		fmt.Fprintf(&b, "  %-40s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	b.WriteString(helpFooter)

	fmt.Fprint(out, b.String())
	return exitcode.Success
}

const helpFooter = `
Formats:
  inspect          [ 'a', 'b' ] (default)
  json             ["a","b"]
  lines            numbered, one item per line

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
