package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/report"
)

type statsOptions struct {
	format string
	plot   string
}

func newStatsCommand(opts *globalOptions) *cobra.Command {
	sopts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Describe the interval tree built from FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(cmd, opts, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			format, err := env.outputFormat(sopts.format)
			if err != nil {
				return err
			}

			tree, _, err := env.loadTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			stats := tree.Stats()

			if sopts.plot != "" {
				err = writePlot(sopts.plot, args[0], stats)
				if err != nil {
					return err
				}

				env.logger.InfoContext(cmd.Context(), "depth chart written", "path", sopts.plot)
			}

			return writeStats(cmd, format, stats)
		},
	}

	cmd.Flags().StringVarP(&sopts.format, "format", "f", "", "output format: text, json, yaml (default from config)")
	cmd.Flags().StringVar(&sopts.plot, "plot", "", "also write an HTML bar chart of intervals per depth to this path")

	return cmd
}

func writeStats(cmd *cobra.Command, format intervalio.Format, stats interval.Stats) error {
	out := cmd.OutOrStdout()

	switch format {
	case intervalio.FormatJSON:
		return writeJSONIndent(out, stats)
	case intervalio.FormatYAML:
		enc := yaml.NewEncoder(out)

		err := enc.Encode(stats)
		if err != nil {
			return fmt.Errorf("yaml encode stats: %w", err)
		}

		return enc.Close()
	default:
		return report.WriteStatsTable(out, stats)
	}
}

func writePlot(path, source string, stats interval.Stats) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close plot file: %w", closeErr)
		}
	}()

	return report.WriteDepthChart(file, stats, source)
}

func writeJSONIndent(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("json encode stats: %w", err)
	}

	return nil
}
