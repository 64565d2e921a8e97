package cli

import (
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newDiffCmd creates the diff command
func newDiffCmd(a *app) *cobra.Command {
	var commits []string

	cmd := &cobra.Command{
		Use:   "diff <path>",
		Short: "Show the diff of one file",
		Long: `Show the diff of one file.

Without --commit, compares HEAD with the working tree. With one --commit,
compares that commit with its first parent. With several, compares the
parent of the oldest with the newest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				var diff *engine.FileDiff
				switch len(commits) {
				case 0:
					diff, err = ctx.Engine.GetWorkingFileDiff(ctx, repoPath, args[0])
				case 1:
					diff, err = ctx.Engine.GetFileDiff(ctx, repoPath, commits[0], args[0])
				default:
					diff, err = ctx.Engine.GetCommitRangeFileDiff(ctx, repoPath, commits, args[0])
				}
				if err != nil {
					return err
				}

				return a.print(cmd, diff, func() string {
					return output.FormatFileDiff(*diff)
				})
			})
		},
	}

	cmd.Flags().StringSliceVarP(&commits, "commit", "c", nil, "Commit to diff; repeat for a range")

	return cmd
}
