package intervalio

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	jsonIndent = "  "
	yamlIndent = 2
)

// ResultSet is the structured form of a query answer.
type ResultSet struct {
	Query     Interval   `json:"query"               yaml:"query"`
	Intervals []Interval `json:"intervals"           yaml:"intervals"`
	Count     int        `json:"count"               yaml:"count"`
	Truncated bool       `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// NewResultSet wraps the answer to q. When limit is positive and fewer than
// len(found) intervals are kept, the set is marked truncated; Count always
// reports the full number of matches.
func NewResultSet(q Interval, found []Interval, limit int) ResultSet {
	rs := ResultSet{Query: q, Intervals: found, Count: len(found)}

	if limit > 0 && len(found) > limit {
		rs.Intervals = found[:limit]
		rs.Truncated = true
	}

	if rs.Intervals == nil {
		rs.Intervals = []Interval{}
	}

	return rs
}

// SortResults orders intervals by Low, then High, then Label, in place.
func SortResults(intervals []Interval) {
	slices.SortFunc(intervals, func(a, b Interval) int {
		return cmp.Or(
			cmp.Compare(a.Low, b.Low),
			cmp.Compare(a.High, b.High),
			cmp.Compare(a.Label, b.Label),
		)
	})
}

// WriteResults encodes rs to w. The text format prints one "[low,high] label"
// line per interval, the same form the interactive loop uses.
func WriteResults(w io.Writer, format Format, rs ResultSet) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", jsonIndent)

		err := enc.Encode(rs)
		if err != nil {
			return fmt.Errorf("json encode results: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)

		err := enc.Encode(rs)
		if err != nil {
			return fmt.Errorf("yaml encode results: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("yaml encode results: %w", err)
		}

		return nil
	case FormatText, FormatAuto, "":
		for _, iv := range rs.Intervals {
			_, err := fmt.Fprintln(w, iv)
			if err != nil {
				return fmt.Errorf("write results: %w", err)
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteIntervals writes intervals in the text line format accepted by ReadText.
func WriteIntervals(w io.Writer, intervals []Interval) error {
	bw := bufio.NewWriter(w)

	for _, iv := range intervals {
		_, err := fmt.Fprintf(bw, "%d %d %s\n", iv.Low, iv.High, iv.Label)
		if err != nil {
			return fmt.Errorf("write intervals: %w", err)
		}
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("write intervals: %w", err)
	}

	return nil
}
