package cli

import (
	"time"

	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd(a *app) *cobra.Command {
	var (
		from  string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "List commits reachable from HEAD, newest first",
		Aliases: []string{"l"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				commits, err := ctx.Engine.ListCommits(ctx, repoPath, from, limit)
				if err != nil {
					return err
				}

				return a.print(cmd, commits, func() string {
					return output.FormatCommits(commits, time.Now())
				})
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start walking from this ref or commit instead of HEAD")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of commits (default from config)")

	return cmd
}
