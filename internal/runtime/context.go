// Package runtime provides a context type that holds the engine and logger
// for use throughout the application. This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"
	"os"

	"gitscope.dev/gitscope/internal/config"
	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/git"
	"gitscope.dev/gitscope/internal/output"
)

// Context provides access to engine and output for commands
type Context struct {
	context.Context

	Engine engine.Engine
	Splog  *output.Splog
	Config *config.Config
}

// NewContext creates a context around an existing engine and logger
func NewContext(ctx context.Context, eng engine.Engine, splog *output.Splog, cfg *config.Config) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = output.NewSplog()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		Context: ctx,
		Engine:  eng,
		Splog:   splog,
		Config:  cfg,
	}
}

// NewEngine builds an engine configured from cfg that logs through splog.
// A nil opener means the go-git backend.
func NewEngine(opener git.Opener, cfg *config.Config, splog *output.Splog) engine.Engine {
	if splog == nil {
		splog = output.NewSplog()
	}
	return engine.New(opener,
		engine.WithLogger(splog.Logger()),
		engine.WithCommitLimit(cfg.CommitLimit),
		engine.WithContextLines(cfg.ContextLines),
	)
}

// GetContext loads the user configuration and builds the logger and engine.
func GetContext(ctx context.Context) (*Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	splog, err := output.NewSplogWithConfig(os.Stderr, cfg)
	if err != nil {
		return nil, err
	}

	return NewContext(ctx, NewEngine(nil, cfg, splog), splog, cfg), nil
}

// Close releases the log file, if any
func (c *Context) Close() error {
	return c.Splog.Close()
}
