// Package mcp implements a Model Context Protocol server that exposes a built
// interval tree as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/observability"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "itree"

	// toolCount is the number of registered tools.
	toolCount = 2
)

// ServerDeps holds the tree and injectable collaborators for the MCP server.
// Nil optional fields disable the matching feature.
type ServerDeps struct {
	// Tree is the index the tools query. Required.
	Tree *interval.Tree[int]

	// Version is reported as the implementation version.
	Version string

	// MaxResults caps interval_find answers; 0 means unlimited.
	MaxResults int

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics records RED metrics per tool call.
	Metrics *observability.REDMetrics

	// Index records per-query match counts.
	Index *observability.IndexMetrics

	// Tracer opens a span per tool call.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with the interval tools registered.
type Server struct {
	inner      *mcpsdk.Server
	tree       *interval.Tree[int]
	maxResults int
	logger     *slog.Logger
	index      *observability.IndexMetrics
	metrics    *observability.REDMetrics
	tracer     trace.Tracer

	mu    sync.RWMutex
	tools []string
}

// NewServer creates an MCP server over deps.Tree with all tools registered.
func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := deps.Version
	if version == "" {
		version = "dev"
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{Name: serverName, Version: version},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{
		inner:      inner,
		tree:       deps.Tree,
		maxResults: deps.MaxResults,
		logger:     logger,
		index:      deps.Index,
		metrics:    deps.Metrics,
		tracer:     deps.Tracer,
		tools:      make([]string, 0, toolCount),
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := slices.Clone(s.tools)
	slices.Sort(names)

	return names
}

// Run serves on stdio until the context is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport serves on transport until the context is canceled or the
// connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameFind,
		Description: findToolDescription,
	}, withMetrics(s.metrics, ToolNameFind, withTracing(s.tracer, ToolNameFind, s.handleFind)))
	s.trackTool(ToolNameFind)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameStats,
		Description: statsToolDescription,
	}, withMetrics(s.metrics, ToolNameStats, withTracing(s.tracer, ToolNameStats, s.handleStats)))
	s.trackTool(ToolNameStats)
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey labels the trace id appended to sampled tool responses.
const traceIDMetaKey = "trace_id"

// toolHandler is the typed handler shape accepted by mcpsdk.AddTool.
type toolHandler[Input any] func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error)

// withTracing opens a span per invocation and appends the trace id to the
// response content when the span is sampled.
func withTracing[Input any](tracer trace.Tracer, toolName string, handler toolHandler[Input]) toolHandler[Input] {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			result.Content = append(result.Content, &mcpsdk.TextContent{
				Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String()),
			})
		}

		return result, output, err
	}
}

// withMetrics records RED metrics per invocation.
func withMetrics[Input any](metrics *observability.REDMetrics, toolName string, handler toolHandler[Input]) toolHandler[Input] {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()
		op := mcpSpanPrefix + toolName

		decInflight := metrics.TrackInflight(ctx, op)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := observability.StatusOK
		if err != nil || (result != nil && result.IsError) {
			status = observability.StatusError
		}

		metrics.RecordRequest(ctx, op, status, time.Since(start))

		return result, output, err
	}
}

// Tool descriptions.
const (
	findToolDescription = "Find every indexed interval that intersects the closed query range [low, high]. " +
		"Intervals touching the query at an endpoint count as intersecting. " +
		"Returns the query, the matching intervals, the total match count, and whether the list was truncated."

	statsToolDescription = "Describe the shape of the interval index: interval, node and leaf counts, " +
		"height, and how many intervals are stored at each depth."
)
