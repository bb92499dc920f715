package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
)

const findArgs = 3

type findOptions struct {
	format string
	limit  int
	sort   bool
}

func newFindCommand(opts *globalOptions) *cobra.Command {
	fopts := &findOptions{}

	cmd := &cobra.Command{
		Use:   "find FILE LOW HIGH",
		Short: "Print the intervals in FILE that intersect [LOW, HIGH]",
		Args:  cobra.ExactArgs(findArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := intervalio.ParseQuery(args[1] + " " + args[2])
			if err != nil {
				return err
			}

			env, err := newAppEnv(cmd, opts, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			format, err := env.outputFormat(fopts.format)
			if err != nil {
				return err
			}

			tree, _, err := env.loadTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			found := tree.FindIntersecting(q)
			if fopts.sort || env.cfg.Output.Sort {
				intervalio.SortResults(found)
			}

			rs := intervalio.NewResultSet(q, found, fopts.limit)
			env.index.RecordQuery(cmd.Context(), "cli", rs.Count, rs.Truncated)
			env.logger.DebugContext(cmd.Context(), "query answered",
				"query", q.String(), "matches", rs.Count, "truncated", rs.Truncated)

			return intervalio.WriteResults(cmd.OutOrStdout(), format, rs)
		},
	}

	cmd.Flags().StringVarP(&fopts.format, "format", "f", "", "output format: text, json, yaml (default from config)")
	cmd.Flags().IntVar(&fopts.limit, "limit", 0, "print at most this many intervals (0 = all)")
	cmd.Flags().BoolVar(&fopts.sort, "sort", false, "order results by low, high and label")

	return cmd
}
