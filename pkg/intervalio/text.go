package intervalio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultMaxLineBytes bounds a single text line when no limit is configured.
const DefaultMaxLineBytes = 1 << 20

// initialLineBuffer is the scanner's starting buffer size.
const initialLineBuffer = 64 << 10

// commentPrefix starts a comment line in text input.
const commentPrefix = "#"

// Text record field counts.
const (
	intervalFields = 3
	queryFields    = 2
)

// ReadText parses the line format "<low> <high> <label>", one interval per
// line. Blank lines and lines starting with '#' are skipped. maxLineBytes
// bounds a single line; zero or less uses DefaultMaxLineBytes.
func ReadText(r io.Reader, maxLineBytes int) ([]Interval, error) {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, maxLineBytes)), maxLineBytes)

	var (
		intervals []Interval
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], commentPrefix) {
			continue
		}

		iv, err := parseIntervalFields(fields)
		if err != nil {
			return nil, &ParseError{Unit: unitLine, Line: lineNo, Text: line, Err: err}
		}

		intervals = append(intervals, iv)
	}

	err := scanner.Err()
	if err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, lineNo+1, maxLineBytes)
		}

		return nil, fmt.Errorf("read intervals: %w", err)
	}

	return intervals, nil
}

// ParseQuery parses an interactive query line "<low> <high>" into a query
// interval with an empty label.
func ParseQuery(line string) (Interval, error) {
	fields := strings.Fields(line)

	if len(fields) < queryFields {
		return Interval{}, fmt.Errorf("%w: want <low> <high>, got %d field(s)", ErrMissingField, len(fields))
	}

	if len(fields) > queryFields {
		return Interval{}, fmt.Errorf("%w: %q", ErrTrailingToken, fields[queryFields])
	}

	low, high, err := parseEndpoints(fields[0], fields[1])
	if err != nil {
		return Interval{}, err
	}

	q := Interval{Low: low, High: high}

	err = q.Validate()
	if err != nil {
		return Interval{}, fmt.Errorf("query: %w", err)
	}

	return q, nil
}

func parseIntervalFields(fields []string) (Interval, error) {
	if len(fields) < intervalFields {
		return Interval{}, fmt.Errorf("%w: want <low> <high> <label>, got %d field(s)", ErrMissingField, len(fields))
	}

	if len(fields) > intervalFields {
		return Interval{}, fmt.Errorf("%w: %q", ErrTrailingToken, fields[intervalFields])
	}

	low, high, err := parseEndpoints(fields[0], fields[1])
	if err != nil {
		return Interval{}, err
	}

	iv := Interval{Low: low, High: high, Label: fields[2]}

	err = iv.Validate()
	if err != nil {
		return Interval{}, err
	}

	return iv, nil
}

func parseEndpoints(lowText, highText string) (int, int, error) {
	low, err := strconv.Atoi(lowText)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadEndpoint, lowText)
	}

	high, err := strconv.Atoi(highText)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadEndpoint, highText)
	}

	return low, high, nil
}
