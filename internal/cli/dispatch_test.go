package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdump/internal/cli"
	"taskdump/internal/commands"
	"taskdump/internal/config"
	"taskdump/internal/exitcode"
	"taskdump/internal/source"
	"taskdump/internal/testutil"
)

// testFactory creates a provider factory that returns the given FakeProvider.
func testFactory(p *testutil.FakeProvider) cli.ProviderFactory {
	return func(ctx context.Context, cfg *config.Config) (source.Provider, error) {
		return p, nil
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_NoArgsDumpsSampleOnce(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeProvider()))

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "no_args", stdout)
	if n := strings.Count(stdout, "Go to the store"); n != 1 {
		t.Errorf("expected sample exactly once, found %d times", n)
	}
}

func TestDispatcher_DumpWithFlags(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, d, "dump", "--format", "json", "x", "y")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != `["x","y"]`+"\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	// Flags from a previous run must not leak into the next one.
	stdout, _, _ = run(t, d, "dump")
	if stdout != "[ 'Go to the store', 'Finish screencast', 'Eat cake' ]\n" {
		t.Errorf("expected default format on second run, got %q", stdout)
	}
}

func TestDispatcher_DashItemsAfterTerminator(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "dump", "--", "-milk", "--eggs")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "[ '-milk', '--eggs' ]\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_PrintAlias(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, d, "print", "--empty")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "[]\n" {
		t.Errorf("expected empty list, got %q", stdout)
	}
}

func TestDispatcher_ConfigFileFormat(t *testing.T) {
	dir := t.TempDir()
	settings := "format = \"lines\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600); err != nil {
		t.Fatalf("failed to write config.toml: %v", err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, _, code := run(t, d, "dump", "--config", dir, "only")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  only\n" {
		t.Errorf("expected lines format from config, got %q", stdout)
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("format = "), 0600); err != nil {
		t.Fatalf("failed to write config.toml: %v", err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "dump", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: loading ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "dump", "--debug", "a")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "[ 'a' ]\n" {
		t.Errorf("debug output leaked into stdout: %q", stdout)
	}
	if !strings.Contains(stderr, "dumping task list") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_Pull(t *testing.T) {
	provider := testutil.NewFakeProvider()
	provider.AddItems(testutil.DefaultListName, "Remote task")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(provider))

	stdout, stderr, code := run(t, d, "pull")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "[ 'Remote task' ]\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_PullFactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (source.Provider, error) {
		return nil, errors.New("failed to read token.json: no such file")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, d, "pull")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: auth error: failed to read token.json: no such file\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_PullWithoutCredentials(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "pull")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "dump", "--format")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -format\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskdump 0.1.0\n" {
		t.Errorf("expected 'taskdump 0.1.0\\n', got %q", stdout)
	}
}
