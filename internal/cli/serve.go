package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/runtime"
	"gitscope.dev/gitscope/internal/server"
)

// newServeCmd creates the serve command
func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every operation over HTTP as JSON",
		Long: `Serve every operation over HTTP as JSON.

Each operation is a POST to /api/<operation> with a JSON body, for example:

  curl -X POST localhost:7417/api/list_commits -d '{"repoPath": "/src/project"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				if addr == "" {
					addr = ctx.Config.ServerAddr
				}

				sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				return server.New(ctx).Run(sigCtx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
