package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newValidateCmd creates the validate command
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check that a path is inside a git repository and describe it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				path, err := a.repoPath()
				if err != nil {
					return err
				}
				if len(args) > 0 {
					if path, err = filepath.Abs(args[0]); err != nil {
						return err
					}
				}

				info, err := ctx.Engine.ValidateRepo(ctx, path)
				if err != nil {
					return err
				}

				return a.print(cmd, info, func() string {
					return output.FormatRepoInfo(*info)
				})
			})
		},
	}
}
