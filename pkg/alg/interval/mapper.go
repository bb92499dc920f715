package interval

// view selects which sorted list of a node an interval is attached to.
type view uint8

const (
	// leftView attaches to the list ordered by Low ascending.
	leftView view = iota
	// rightView attaches to the list ordered by High descending.
	rightView
)

// String implements fmt.Stringer for debugging output.
func (v view) String() string {
	if v == leftView {
		return "left"
	}

	return "right"
}

// mapIntervals attaches every interval to its home node in both views.
// leftSorted must be ordered by Low ascending and rightSorted by High
// ascending; appending in those orders keeps each node's lists sorted without
// a per-node sort.
func mapIntervals[T Number](root *Node[T], leftSorted, rightSorted []Interval[T]) {
	if root == nil {
		return
	}

	for _, iv := range leftSorted {
		place(root, iv, leftView)
	}

	for i := len(rightSorted) - 1; i >= 0; i-- {
		place(root, rightSorted[i], rightView)
	}
}

// place descends from node until it reaches the first node whose split value
// iv contains, and appends iv to that node's list for v.
//
// An interval lying entirely right of a split continues into the right child,
// one lying entirely left into the left child. The view is carried unchanged
// down the whole descent, so both passes stop at the same node and the
// interval ends up in both of its lists. Falling off the tree leaves the
// interval unattached, which cannot happen when the tree was built from the
// interval's own endpoints.
func place[T Number](node *Node[T], iv Interval[T], v view) {
	for node != nil {
		switch {
		case iv.Contains(node.split):
			if v == leftView {
				node.leftIntervals = append(node.leftIntervals, iv)
			} else {
				node.rightIntervals = append(node.rightIntervals, iv)
			}

			return
		case float64(iv.Low) > node.split:
			node = node.right
		default:
			node = node.left
		}
	}
}
