package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/itree/pkg/mcp"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/version"
)

func newMCPCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp FILE",
		Short: "Start an MCP server over the intervals in FILE",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes the interval tree built from FILE as tools:
  - interval_find: intervals intersecting a closed range [low, high]
  - interval_stats: shape of the index`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(cmd, opts, observability.ModeMCP)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			tree, _, err := env.loadTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Tree:       tree,
				Version:    version.Version,
				MaxResults: env.cfg.Server.MaxResults,
				Logger:     env.logger,
				Metrics:    env.red,
				Index:      env.index,
				Tracer:     env.providers.Tracer,
			})

			return srv.Run(cmd.Context())
		},
	}
}
