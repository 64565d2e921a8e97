package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/runtime"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checkout [branch]",
		Aliases: []string{"co"},
		Short:   "Switch to a local branch. If no branch is provided, opens an interactive selector.",
		Long: `Switch to a local branch. If no branch is provided, opens an interactive selector.

The switch is refused while tracked files have staged or unstaged
modifications or deletions. Untracked files are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx *runtime.Context) error {
				repoPath, err := a.repoPath()
				if err != nil {
					return err
				}

				branchName := ""
				if len(args) > 0 {
					branchName = args[0]
				} else {
					branchName, err = a.selectBranch(ctx, repoPath)
					if err != nil {
						return err
					}
				}

				if err := ctx.Engine.CheckoutBranch(ctx, repoPath, branchName); err != nil {
					return err
				}

				if a.wantJSON() {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"branch": branchName})
				}
				ctx.Splog.Info("Checked out %s.", branchName)
				return nil
			})
		},
		ValidArgsFunction: a.completeBranches,
	}

	return cmd
}

// selectBranch prompts for a local branch, defaulting to the current one
func (a *app) selectBranch(ctx *runtime.Context, repoPath string) (string, error) {
	if !a.interactive() {
		return "", errors.New("no branch given and not running in a terminal")
	}

	names, err := localBranchNames(ctx, repoPath)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.New("no local branches to check out")
	}

	current, err := ctx.Engine.GetCurrentBranch(ctx, repoPath)
	if err != nil {
		return "", err
	}

	prompt := &survey.Select{
		Message: "Checkout a branch",
		Options: names,
	}
	for _, name := range names {
		if name == current {
			prompt.Default = current
		}
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("branch selection cancelled: %w", err)
	}
	return selected, nil
}
