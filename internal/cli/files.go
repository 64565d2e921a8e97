package cli

import (
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newFilesCmd creates the files command
func newFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files <commit>...",
		Short: "List files changed by a commit, or across a range of commits",
		Long: `List files changed by a commit, or across a range of commits.

With several commits, the comparison spans from the parent of the oldest
commit to the newest one, whatever order they are given in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				var files []engine.ChangedFile
				if len(args) == 1 {
					files, err = ctx.Engine.GetCommitFiles(ctx, repoPath, args[0])
				} else {
					files, err = ctx.Engine.GetCommitRangeFiles(ctx, repoPath, args)
				}
				if err != nil {
					return err
				}

				return a.print(cmd, files, func() string {
					return output.FormatChangedFiles(files)
				})
			})
		},
	}

	return cmd
}
