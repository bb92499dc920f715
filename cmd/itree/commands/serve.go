package commands

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/server"
)

type serveOptions struct {
	host       string
	port       int
	maxResults int
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	sopts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve intersection queries over HTTP",
		Long: `Build the tree from FILE and serve it over HTTP:

  GET /v1/intersect?low=&high=   intersecting intervals as JSON
  GET /v1/stats                  tree statistics
  GET /healthz                   liveness
  GET /metrics                   Prometheus metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv(cmd, opts, observability.ModeServe)
			if err != nil {
				return err
			}
			defer env.close(cmd.Context())

			tree, _, err := env.loadTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			serverCfg := env.cfg.Server
			flags := cmd.Flags()

			if flags.Changed("host") {
				serverCfg.Host = sopts.host
			}

			if flags.Changed("port") {
				serverCfg.Port = sopts.port
			}

			if flags.Changed("max-results") {
				serverCfg.MaxResults = sopts.maxResults
			}

			srv := server.New(tree, server.Options{
				Addr:         net.JoinHostPort(serverCfg.Host, strconv.Itoa(serverCfg.Port)),
				ReadTimeout:  serverCfg.ReadTimeout,
				WriteTimeout: serverCfg.WriteTimeout,
				MaxResults:   serverCfg.MaxResults,
				Sort:         env.cfg.Output.Sort,
			}, server.Deps{
				Logger:         env.logger,
				Tracer:         env.providers.Tracer,
				RED:            env.red,
				Index:          env.index,
				MetricsHandler: env.providers.MetricsHandler,
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&sopts.host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVarP(&sopts.port, "port", "p", 0, "listen port (default from config)")
	cmd.Flags().IntVar(&sopts.maxResults, "max-results", 0, "cap on intervals per answer, 0 = unlimited (default from config)")

	return cmd
}
