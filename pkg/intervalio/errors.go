// Package intervalio reads and writes interval sets and query results for the
// command-line driver, the HTTP service and the MCP server.
//
// It is the validation boundary: malformed tokens, non-numeric endpoints and
// inverted intervals are reported here with their position in the input, so
// the tree itself only ever sees well-formed intervals.
package intervalio

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
)

// Interval is the integer interval used by all driver-facing formats.
type Interval = interval.Interval[int]

// Sentinel errors for malformed input.
var (
	// ErrMissingField indicates a record with fewer tokens than required.
	ErrMissingField = errors.New("missing field")
	// ErrBadEndpoint indicates an endpoint that is not an integer.
	ErrBadEndpoint = errors.New("endpoint is not an integer")
	// ErrTrailingToken indicates unexpected tokens after the last field.
	ErrTrailingToken = errors.New("unexpected trailing token")
	// ErrSchemaViolation indicates structured input that does not match the interval schema.
	ErrSchemaViolation = errors.New("input does not match interval schema")
	// ErrUnknownFormat indicates an unsupported format name.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrLineTooLong indicates an input line longer than the configured limit.
	ErrLineTooLong = errors.New("input line too long")
)

// Position units for ParseError.
const (
	unitLine  = "line"
	unitEntry = "entry"
)

// ParseError reports a malformed record together with its 1-based position.
type ParseError struct {
	// Unit is "line" for text input and "entry" for structured input.
	Unit string
	// Text is the offending record as read.
	Text string
	// Err is the underlying cause.
	Err error
	// Line is the 1-based position of the record.
	Line int
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %d %q: %v", e.Unit, e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
