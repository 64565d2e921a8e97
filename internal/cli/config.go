package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gitscope.dev/gitscope/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set user configuration",
		Long: `Get and set user configuration values.

Keys: commit-limit, context-lines, log-file, server-addr.

Examples:
  gitscope config get commit-limit
  gitscope config set server-addr 127.0.0.1:8080
  gitscope config path`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value, after environment overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var value string
			switch key := args[0]; key {
			case "commit-limit":
				value = strconv.Itoa(cfg.CommitLimit)
			case "context-lines":
				value = strconv.Itoa(cfg.ContextLines)
			case "log-file":
				value = cfg.LogFile
			case "server-addr":
				value = cfg.ServerAddr
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fc, err := config.ReadFile(path)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "commit-limit":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid value for commit-limit: %s (must be a positive integer)", value)
				}
				fc.CommitLimit = &n
			case "context-lines":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid value for context-lines: %s (must be a positive integer)", value)
				}
				fc.ContextLines = &n
			case "log-file":
				fc.LogFile = &value
			case "server-addr":
				fc.ServerAddr = &value
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if err := config.Save(path, fc); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to: %s\n", key, value)
			return err
		},
	}
}

// newConfigPathCmd creates the config path command
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
