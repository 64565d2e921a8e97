package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	return newRootCmd(newApp(nil), version, commit, date)
}

// NewRootCmdWithContext creates the root command with a custom context factory
func NewRootCmdWithContext(factory ContextFactory) *cobra.Command {
	return newRootCmd(newApp(factory), "dev", "none", "unknown")
}

func newRootCmd(a *app, version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitscope",
		Short: "gitscope inspects a git repository's history, diffs and working tree",
		Long: `gitscope inspects a git repository's history, diffs and working tree.

Every command prints human-readable output on a terminal and JSON otherwise.
Run "gitscope serve" to expose the same operations over HTTP.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVarP(&a.repo, "repo", "C", "", "Path to the repository (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Always print JSON")

	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newFilesCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newContentsCmd(a))
	rootCmd.AddCommand(newBranchCmd(a))
	rootCmd.AddCommand(newBranchesCmd(a))
	rootCmd.AddCommand(newCheckoutCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
