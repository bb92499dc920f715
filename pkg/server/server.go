// Package server exposes a built interval tree over HTTP.
//
// Routes:
//
//	GET /v1/intersect?low=&high=  intervals intersecting [low, high]
//	GET /v1/stats                 tree shape summary
//	GET /healthz                  liveness
//	GET /metrics                  Prometheus scrape (when a handler is supplied)
//
// The tree is shared read-only by all request goroutines.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
)

// Route paths.
const (
	PathIntersect = "/v1/intersect"
	PathStats     = "/v1/stats"
	PathHealth    = "/healthz"
	PathMetrics   = "/metrics"
)

const (
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second

	querySource = "http"
)

// Query parameter errors.
var (
	ErrMissingParam = errors.New("missing query parameter")
	ErrBadParam     = errors.New("query parameter is not an integer")
	ErrNotListening = errors.New("server is not listening")
)

// Options configures the listener and response shaping.
type Options struct {
	// Addr is the host:port to bind. Port 0 picks a free port.
	Addr string
	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MaxResults caps the intervals returned per query; 0 means unlimited.
	MaxResults int
	// Sort orders results by low, high and label before truncation.
	Sort bool
}

// Deps holds injectable collaborators. Nil fields disable the matching feature.
type Deps struct {
	Logger         *slog.Logger
	Tracer         trace.Tracer
	RED            *observability.REDMetrics
	Index          *observability.IndexMetrics
	MetricsHandler http.Handler
}

// Server answers interval queries over HTTP.
type Server struct {
	tree     *interval.Tree[int]
	opts     Options
	logger   *slog.Logger
	tracer   trace.Tracer
	red      *observability.REDMetrics
	index    *observability.IndexMetrics
	metrics  http.Handler
	http     *http.Server
	listener net.Listener
}

// New creates a server over tree. It does not bind until Listen or Run.
func New(tree *interval.Tree[int], opts Options, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	srv := &Server{
		tree:    tree,
		opts:    opts,
		logger:  logger,
		tracer:  tracer,
		red:     deps.RED,
		index:   deps.Index,
		metrics: deps.MetricsHandler,
	}

	srv.http = &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return srv
}

// Handler returns the routed mux wrapped in tracing and RED middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathIntersect, s.handleIntersect)
	mux.HandleFunc("GET "+PathStats, s.handleStats)
	mux.HandleFunc("GET "+PathHealth, handleHealth)

	if s.metrics != nil {
		mux.Handle("GET "+PathMetrics, s.metrics)
	}

	return observability.HTTPMiddleware(s.tracer, s.red, mux)
}

// Listen binds the configured address.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}

	s.listener = listener

	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Serve handles requests on the bound listener until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return ErrNotListening
	}

	s.logger.InfoContext(ctx, "interval query service listening", "addr", s.Addr(), "intervals", s.tree.Len())

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "interval query service stopped")

	return nil
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	err := s.Listen(ctx)
	if err != nil {
		return err
	}

	return s.Serve(ctx)
}

func (s *Server) handleIntersect(rw http.ResponseWriter, hr *http.Request) {
	ctx := hr.Context()

	q, err := parseQuery(hr)
	if err != nil {
		writeError(ctx, s.logger, rw, http.StatusBadRequest, err)

		return
	}

	_, span := s.tracer.Start(ctx, "interval.find", trace.WithAttributes(
		attribute.Int("query.low", q.Low),
		attribute.Int("query.high", q.High),
	))
	found := s.tree.FindIntersecting(q)
	span.SetAttributes(attribute.Int("query.matches", len(found)))
	span.End()

	if s.opts.Sort {
		intervalio.SortResults(found)
	}

	rs := intervalio.NewResultSet(q, found, s.opts.MaxResults)

	if s.index != nil {
		s.index.RecordQuery(ctx, querySource, rs.Count, rs.Truncated)
	}

	s.logger.DebugContext(ctx, "query answered", "query", q.String(), "matches", rs.Count, "truncated", rs.Truncated)

	writeJSON(ctx, s.logger, rw, http.StatusOK, rs)
}

func (s *Server) handleStats(rw http.ResponseWriter, hr *http.Request) {
	writeJSON(hr.Context(), s.logger, rw, http.StatusOK, s.tree.Stats())
}

func handleHealth(rw http.ResponseWriter, hr *http.Request) {
	writeJSON(hr.Context(), slog.Default(), rw, http.StatusOK, map[string]string{"status": "ok"})
}

// parseQuery reads the low and high parameters and validates the interval.
func parseQuery(hr *http.Request) (intervalio.Interval, error) {
	values := hr.URL.Query()

	low, err := intParam(values.Get("low"), "low")
	if err != nil {
		return intervalio.Interval{}, err
	}

	high, err := intParam(values.Get("high"), "high")
	if err != nil {
		return intervalio.Interval{}, err
	}

	q := interval.New(low, high, "")

	err = q.Validate()
	if err != nil {
		return intervalio.Interval{}, fmt.Errorf("query %s: %w", q, err)
	}

	return q, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadParam, name, raw)
	}

	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx context.Context, logger *slog.Logger, rw http.ResponseWriter, status int, err error) {
	logger.DebugContext(ctx, "request rejected", "status", status, "error", err)
	writeJSON(ctx, logger, rw, status, errorResponse{Error: err.Error()})
}

func writeJSON(ctx context.Context, logger *slog.Logger, rw http.ResponseWriter, status int, value any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	err := json.NewEncoder(rw).Encode(value)
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode JSON response", "error", err)
	}
}
