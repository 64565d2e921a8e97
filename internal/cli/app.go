package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/runtime"
)

// ContextFactory builds the runtime context for one command invocation
type ContextFactory func(ctx context.Context) (*runtime.Context, error)

// app carries the global flags and collaborators shared by every command
type app struct {
	repo       string
	jsonOutput bool

	newContext ContextFactory

	// stdoutIsTerminal decides between human and JSON output
	stdoutIsTerminal func() bool
}

func newApp(factory ContextFactory) *app {
	if factory == nil {
		factory = runtime.GetContext
	}
	return &app{
		newContext:       factory,
		stdoutIsTerminal: func() bool { return isTerminal(os.Stdout) },
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// interactive is true when a prompt can be shown
func (a *app) interactive() bool {
	return isTerminal(os.Stdin) && a.stdoutIsTerminal()
}

// run provides a runtime context to a command's execution function
func (a *app) run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := a.newContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()
	return fn(ctx)
}

// repoPath resolves --repo against the working directory
func (a *app) repoPath() (string, error) {
	path := a.repo
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// wantJSON is true when --json is set or output is not going to a terminal
func (a *app) wantJSON() bool {
	return a.jsonOutput || !a.stdoutIsTerminal()
}

// print writes value as JSON, or the human rendering otherwise
func (a *app) print(cmd *cobra.Command, value any, human func() string) error {
	out := cmd.OutOrStdout()
	if a.wantJSON() {
		return writeJSON(out, value)
	}
	_, err := io.WriteString(out, human())
	return err
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
