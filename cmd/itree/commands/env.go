package commands

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/config"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/version"
)

// Standard OTel exporter env vars, honored when the config file is silent.
const (
	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"
)

// appEnv is the per-invocation runtime: configuration, logger and telemetry.
type appEnv struct {
	cfg       *config.Config
	opts      *globalOptions
	logger    *slog.Logger
	providers observability.Providers
	red       *observability.REDMetrics
	index     *observability.IndexMetrics
}

func newAppEnv(cmd *cobra.Command, opts *globalOptions, mode observability.AppMode) (*appEnv, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}

	if opts.noColor {
		cfg.Output.Color = false
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cmp.Or(cfg.Telemetry.OTLPEndpoint, os.Getenv(envOTLPEndpoint))
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.Prometheus = mode == observability.ModeServe
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON || opts.logJSON || mode == observability.ModeMCP
	obsCfg.LogWriter = cmd.ErrOrStderr()

	providers, err := observability.Init(cmd.Context(), obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	env := &appEnv{cfg: cfg, opts: opts, logger: providers.Logger, providers: providers}

	env.red, err = observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, env.closeWith(cmd.Context(), err)
	}

	env.index, err = observability.NewIndexMetrics(providers.Meter)
	if err != nil {
		return nil, env.closeWith(cmd.Context(), err)
	}

	return env, nil
}

// close flushes telemetry. Failures are logged, not returned.
func (e *appEnv) close(ctx context.Context) {
	shutdownErr := e.providers.Shutdown(context.WithoutCancel(ctx))
	if shutdownErr != nil {
		e.logger.WarnContext(ctx, "observability shutdown failed", "error", shutdownErr)
	}
}

func (e *appEnv) closeWith(ctx context.Context, err error) error {
	e.close(ctx)

	return err
}

// colorEnabled reports whether terminal output may use ANSI colors.
func (e *appEnv) colorEnabled() bool {
	return e.cfg.Output.Color && !color.NoColor
}

// readIntervals opens path using the input format from flags or config.
func (e *appEnv) readIntervals(path string) ([]intervalio.Interval, error) {
	format, err := intervalio.ParseFormat(cmp.Or(e.opts.inputFormat, e.cfg.Input.Format))
	if err != nil {
		return nil, err
	}

	limit, err := e.cfg.Input.LineLimit()
	if err != nil {
		return nil, err
	}

	return intervalio.Open(path, intervalio.Options{Format: format, MaxLineBytes: limit})
}

// outputFormat resolves a --format flag value against the configured default.
func (e *appEnv) outputFormat(flagValue string) (intervalio.Format, error) {
	return intervalio.ParseFormat(cmp.Or(flagValue, e.cfg.Output.Format))
}

// buildTree indexes intervals, recording a span, build metrics and a summary log line.
func (e *appEnv) buildTree(ctx context.Context, source string, intervals []intervalio.Interval) (*interval.Tree[int], error) {
	ctx, span := e.providers.Tracer.Start(ctx, "interval.build")
	defer span.End()

	start := time.Now()

	tree, err := interval.Build(intervals)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")

		return nil, fmt.Errorf("%s: %w", source, err)
	}

	elapsed := time.Since(start)
	stats := tree.Stats()

	span.SetAttributes(
		attribute.Int("tree.intervals", stats.Intervals),
		attribute.Int("tree.nodes", stats.Nodes),
		attribute.Int("tree.height", stats.Height),
	)
	e.index.RecordBuild(ctx, stats.Intervals, stats.Height, elapsed)
	e.logger.InfoContext(ctx, "interval tree built",
		"source", source,
		"intervals", stats.Intervals,
		"nodes", stats.Nodes,
		"height", stats.Height,
		"duration", elapsed,
	)

	return tree, nil
}

// loadTree reads path and indexes it.
func (e *appEnv) loadTree(ctx context.Context, path string) (*interval.Tree[int], []intervalio.Interval, error) {
	intervals, err := e.readIntervals(path)
	if err != nil {
		return nil, nil, err
	}

	tree, err := e.buildTree(ctx, path, intervals)
	if err != nil {
		return nil, nil, err
	}

	return tree, intervals, nil
}
