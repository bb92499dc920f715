package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
)

// Tool name constants.
const (
	ToolNameFind  = "interval_find"
	ToolNameStats = "interval_stats"
)

const querySource = "mcp"

// FindInput is the input schema for the interval_find tool.
type FindInput struct {
	Low  int  `json:"low"            jsonschema:"lower bound of the query range, inclusive"`
	High int  `json:"high"           jsonschema:"upper bound of the query range, inclusive; must be >= low"`
	Sort bool `json:"sort,omitempty" jsonschema:"order results by low, high and label"`
}

// StatsInput is the input schema for the interval_stats tool. It takes no arguments.
type StatsInput struct{}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleFind(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input FindInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	q := interval.New(input.Low, input.High, "")

	err := q.Validate()
	if err != nil {
		return errorResult(fmt.Errorf("query %s: %w", q, err))
	}

	found := s.tree.FindIntersecting(q)
	if input.Sort {
		intervalio.SortResults(found)
	}

	rs := intervalio.NewResultSet(q, found, s.maxResults)

	if s.index != nil {
		s.index.RecordQuery(ctx, querySource, rs.Count, rs.Truncated)
	}

	s.logger.DebugContext(ctx, "query answered", "query", q.String(), "matches", rs.Count, "truncated", rs.Truncated)

	return jsonResult(rs)
}

func (s *Server) handleStats(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ StatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return jsonResult(s.tree.Stats())
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, ToolOutput{Data: value}, nil
}
