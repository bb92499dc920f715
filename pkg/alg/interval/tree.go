package interval

import "fmt"

// Tree is an immutable centered interval tree.
type Tree[T Number] struct {
	root *Node[T]
	size int
}

// Build constructs a tree over intervals. Every interval is validated first;
// the first malformed one aborts the build with an error naming its index.
// The input slice is not modified and may be reused by the caller.
// An empty input yields an empty tree that matches nothing.
func Build[T Number](intervals []Interval[T]) (*Tree[T], error) {
	for i, iv := range intervals {
		err := iv.Validate()
		if err != nil {
			return nil, fmt.Errorf("interval %d (%q): %w", i, iv.Label, err)
		}
	}

	leftSorted := SortByLeft(intervals)
	rightSorted := SortByRight(intervals)

	root := buildSkeleton(SortedUniqueEndpoints(leftSorted, rightSorted))
	mapIntervals(root, leftSorted, rightSorted)

	return &Tree[T]{root: root, size: len(intervals)}, nil
}

// MustBuild is like Build but panics on malformed input.
// Use only with intervals known to be valid, such as test fixtures.
func MustBuild[T Number](intervals []Interval[T]) *Tree[T] {
	tree, err := Build(intervals)
	if err != nil {
		panic(err)
	}

	return tree
}

// Len returns the number of intervals in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// FindIntersecting returns all intervals that intersect q, in no particular
// order. The result is empty, never nil, when nothing matches. A malformed
// query (Low > High, or a non-finite endpoint) matches nothing.
func (t *Tree[T]) FindIntersecting(q Interval[T]) []Interval[T] {
	results := []Interval[T]{}

	if t.root == nil || q.Validate() != nil {
		return results
	}

	collectIntersecting(t.root, q, &results)

	return results
}

// QueryPoint returns all intervals containing point.
// Equivalent to FindIntersecting([point, point]).
func (t *Tree[T]) QueryPoint(point T) []Interval[T] {
	return t.FindIntersecting(Interval[T]{Low: point, High: point})
}

// Walk visits every node in pre-order together with its depth, the root
// being at depth 0. Returning false from fn skips the node's children.
func (t *Tree[T]) Walk(fn func(n *Node[T], depth int) bool) {
	walk(t.root, 0, fn)
}

func walk[T Number](n *Node[T], depth int, fn func(*Node[T], int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}

	walk(n.left, depth+1, fn)
	walk(n.right, depth+1, fn)
}
