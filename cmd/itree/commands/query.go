package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/repl"
)

// fileNamePrompt asks for the interval file when none is given.
const fileNamePrompt = "Enter intervals file name => "

// ErrNoFileName is returned when the interactive file prompt gets no answer.
var ErrNoFileName = errors.New("no interval file name given")

func newQueryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query [FILE]",
		Short: "Load an interval file and answer queries interactively",
		Long: `Load an interval file, echo it, and read "<low> <high>" queries from stdin,
printing every intersecting interval. Type quit or send EOF to stop.

When FILE is omitted the file name is read from stdin first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			path, err := resolveFileName(args, in, out)
			if err != nil {
				return err
			}

			env, err := newAppEnv(cmd, opts, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			intervals, err := env.readIntervals(path)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Read the following intervals:")

			for _, iv := range intervals {
				fmt.Fprintln(out, iv)
			}

			tree, err := env.buildTree(cmd.Context(), path, intervals)
			if err != nil {
				return err
			}

			session := repl.New(tree, repl.Config{
				In:     in,
				Out:    out,
				Logger: env.logger,
				Sort:   env.cfg.Output.Sort,
				Color:  env.colorEnabled(),
			})

			return session.Run(cmd.Context())
		},
	}
}

// resolveFileName returns the positional file argument or prompts for one.
func resolveFileName(args []string, in *bufio.Reader, out io.Writer) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	fmt.Fprint(out, fileNamePrompt)

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read file name: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" {
		return "", ErrNoFileName
	}

	return name, nil
}
