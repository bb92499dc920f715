package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
)

const convertArgs = 2

func newConvertCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Re-encode an interval set in the text format",
		Long: `Read IN in any supported format (text, JSON, YAML, optionally .lz4) and write
it to OUT in the text line format. OUT is lz4-compressed when it ends in .lz4.
Every interval is validated on the way through.`,
		Args: cobra.ExactArgs(convertArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(cmd, opts, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			intervals, err := env.readIntervals(args[0])
			if err != nil {
				return err
			}

			err = intervalio.Save(args[1], intervals)
			if err != nil {
				return err
			}

			env.logger.InfoContext(cmd.Context(), "interval set converted",
				"from", args[0], "to", args[1], "intervals", len(intervals))

			return nil
		},
	}
}
