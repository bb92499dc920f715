// Package commands implements the itree subcommands.
package commands

import (
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	inputFormat string
	verbose     bool
	quiet       bool
	noColor     bool
	logJSON     bool
}

// NewRootCommand builds the itree command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "itree",
		Short: "Index closed integer intervals and answer intersection queries",
		Long: `itree builds a centered interval tree over a set of labeled intervals and
answers "which intervals intersect [low, high]?" queries against it.

Commands:
  query     Interactive query loop
  find      One-shot intersection query
  stats     Tree shape statistics and depth chart
  convert   Re-encode an interval set as text, optionally lz4-compressed
  serve     HTTP query service
  mcp       MCP stdio server for AI agents`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: itree.yaml in ., ./config, /etc/itree)")
	flags.StringVar(&opts.inputFormat, "input-format", "", "interval file format: auto, text, json, yaml (default from config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(
		newQueryCommand(opts),
		newFindCommand(opts),
		newStatsCommand(opts),
		newConvertCommand(opts),
		newServeCommand(opts),
		newMCPCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}
