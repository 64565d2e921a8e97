package cli

import (
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "List uncommitted changes in the working tree and index",
		Aliases: []string{"st"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				files, err := ctx.Engine.GetWorkingChanges(ctx, repoPath)
				if err != nil {
					return err
				}

				return a.print(cmd, files, func() string {
					return output.FormatChangedFiles(files)
				})
			})
		},
	}
}
