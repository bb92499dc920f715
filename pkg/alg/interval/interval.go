// Package interval provides a static centered interval tree for efficient
// intersection queries over a fixed set of closed intervals.
//
// The tree is built once from the whole interval set: the distinct endpoint
// values become leaves, adjacent subtrees are paired bottom-up into a balanced
// skeleton whose internal split values sit between neighbouring endpoints, and
// every interval is then stored at the highest node whose split value it
// straddles. Each node keeps its intervals twice, once ordered by left endpoint
// ascending and once by right endpoint descending, so a query only scans the
// prefix of a list that can actually match. Queries run in O(log N + k) time,
// where k is the number of reported intervals.
//
// A built tree is never mutated and can be queried from many goroutines
// without synchronization.
package interval

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Sentinel errors returned by Validate and Build.
var (
	// ErrInvertedInterval indicates an interval whose Low is greater than its High.
	ErrInvertedInterval = errors.New("interval low endpoint is greater than high endpoint")
	// ErrNonFiniteEndpoint indicates a NaN or infinite floating-point endpoint.
	ErrNonFiniteEndpoint = errors.New("interval endpoint is not a finite number")
)

// Number is the set of endpoint types an interval may use.
type Number interface {
	constraints.Integer | constraints.Float
}

// Interval represents a closed range [Low, High] with an associated Label.
type Interval[T Number] struct {
	Low   T      `json:"low"   yaml:"low"`
	High  T      `json:"high"  yaml:"high"`
	Label string `json:"label" yaml:"label"`
}

// New creates the interval [low, high] carrying label.
func New[T Number](low, high T, label string) Interval[T] {
	return Interval[T]{Low: low, High: high, Label: label}
}

// Contains reports whether point lies inside the interval, boundaries included.
// The point is a float64 because tree split values fall between integer endpoints.
func (iv Interval[T]) Contains(point float64) bool {
	return float64(iv.Low) <= point && point <= float64(iv.High)
}

// ContainsValue reports whether point lies inside the interval, boundaries included.
func (iv Interval[T]) ContainsValue(point T) bool {
	return iv.Low <= point && point <= iv.High
}

// Intersects reports whether the two closed intervals share at least one point.
// Touching endpoints count as an intersection.
func (iv Interval[T]) Intersects(other Interval[T]) bool {
	return iv.Low <= other.High && other.Low <= iv.High
}

// Validate checks that the interval is well formed.
func (iv Interval[T]) Validate() error {
	if !isFinite(iv.Low) || !isFinite(iv.High) {
		return fmt.Errorf("%w: [%v, %v]", ErrNonFiniteEndpoint, iv.Low, iv.High)
	}

	if iv.Low > iv.High {
		return fmt.Errorf("%w: [%v, %v]", ErrInvertedInterval, iv.Low, iv.High)
	}

	return nil
}

// String formats the interval as "[low,high] label".
func (iv Interval[T]) String() string {
	if iv.Label == "" {
		return fmt.Sprintf("[%v,%v]", iv.Low, iv.High)
	}

	return fmt.Sprintf("[%v,%v] %s", iv.Low, iv.High, iv.Label)
}

// isFinite is always true for integer endpoints.
func isFinite[T Number](v T) bool {
	f := float64(v)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
