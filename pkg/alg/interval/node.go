package interval

// Node is one node of a centered interval tree.
//
// Leaves carry an input endpoint value as their split value. An internal
// node's split value is the midpoint between the largest endpoint under its
// left child and the smallest endpoint under its right child. The intervals
// stored at a node are exactly those whose home is this node, i.e. the first
// node on the descent from the root whose split value they contain.
type Node[T Number] struct {
	left  *Node[T]
	right *Node[T]

	// leftIntervals is ordered by Low ascending.
	leftIntervals []Interval[T]
	// rightIntervals holds the same intervals ordered by High descending.
	rightIntervals []Interval[T]

	split    float64
	minSplit float64
	maxSplit float64
}

// newLeaf creates a leaf for a single endpoint value.
func newLeaf[T Number](endpoint T) *Node[T] {
	v := float64(endpoint)

	return &Node[T]{split: v, minSplit: v, maxSplit: v}
}

// join creates the parent of two adjacent subtrees, left preceding right.
func join[T Number](left, right *Node[T]) *Node[T] {
	return &Node[T]{
		left:     left,
		right:    right,
		split:    (left.maxSplit + right.minSplit) / 2,
		minSplit: left.minSplit,
		maxSplit: right.maxSplit,
	}
}

// SplitValue returns the value that partitions this node's subtree.
func (n *Node[T]) SplitValue() float64 { return n.split }

// MinSplitValue returns the smallest split value in this node's subtree.
func (n *Node[T]) MinSplitValue() float64 { return n.minSplit }

// MaxSplitValue returns the largest split value in this node's subtree.
func (n *Node[T]) MaxSplitValue() float64 { return n.maxSplit }

// Left returns the left child, or nil for a leaf.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the right child, or nil for a leaf.
func (n *Node[T]) Right() *Node[T] { return n.right }

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return n.left == nil && n.right == nil }

// LeftIntervals returns the intervals stored here, ordered by Low ascending.
// The returned slice must not be modified.
func (n *Node[T]) LeftIntervals() []Interval[T] { return n.leftIntervals }

// RightIntervals returns the intervals stored here, ordered by High descending.
// The returned slice must not be modified.
func (n *Node[T]) RightIntervals() []Interval[T] { return n.rightIntervals }
