package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
)

// newBranchCmd creates the branch command
func newBranchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "branch",
		Short: "Print the current branch, or the commit id when HEAD is detached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				current, err := ctx.Engine.GetCurrentBranch(ctx, repoPath)
				if err != nil {
					return err
				}

				return a.print(cmd, current, func() string {
					return current + "\n"
				})
			})
		},
	}
}

// newBranchesCmd creates the branches command
func newBranchesCmd(a *app) *cobra.Command {
	var localOnly bool

	cmd := &cobra.Command{
		Use:     "branches",
		Short:   "List local and remote-tracking branches",
		Aliases: []string{"br"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				branches, err := ctx.Engine.ListBranches(ctx, repoPath)
				if err != nil {
					return err
				}
				if localOnly {
					branches = lo.Filter(branches, func(b engine.Branch, _ int) bool { return !b.IsRemote })
				}

				return a.print(cmd, branches, func() string {
					return output.FormatBranches(branches)
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&localOnly, "local", "l", false, "Only list local branches")

	return cmd
}

// completeBranches returns local branch names for shell completion
func (a *app) completeBranches(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	err := a.run(cmd, func(ctx *runtime.Context) error {
		ctx.Splog.SetQuiet(true)
		repoPath, err := a.repoPath()
		if err != nil {
			return err
		}
		names, err = localBranchNames(ctx, repoPath)
		return err
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func localBranchNames(ctx *runtime.Context, repoPath string) ([]string, error) {
	branches, err := ctx.Engine.ListBranches(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return lo.FilterMap(branches, func(b engine.Branch, _ int) (string, bool) {
		return b.Name, !b.IsRemote
	}), nil
}
