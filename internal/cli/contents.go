package cli

import (
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newContentsCmd creates the contents command
func newContentsCmd(a *app) *cobra.Command {
	var commits []string

	cmd := &cobra.Command{
		Use:   "contents <path>",
		Short: "Show one file before and after a change",
		Long: `Show one file before and after a change.

The sides are chosen the same way as for "gitscope diff".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				var contents *engine.FileContents
				switch len(commits) {
				case 0:
					contents, err = ctx.Engine.GetWorkingFileContents(ctx, repoPath, args[0])
				case 1:
					contents, err = ctx.Engine.GetFileContents(ctx, repoPath, commits[0], args[0])
				default:
					contents, err = ctx.Engine.GetCommitRangeFileContents(ctx, repoPath, commits, args[0])
				}
				if err != nil {
					return err
				}

				return a.print(cmd, contents, func() string {
					return output.FormatFileContents(*contents)
				})
			})
		},
	}

	cmd.Flags().StringSliceVarP(&commits, "commit", "c", nil, "Commit to read; repeat for a range")

	return cmd
}
