package interval

// collectIntersecting appends to results every interval in the subtree rooted
// at n that intersects q.
func collectIntersecting[T Number](n *Node[T], q Interval[T], results *[]Interval[T]) {
	if n == nil {
		return
	}

	switch {
	case q.Contains(n.split):
		// Every interval stored here contains the split value, and so does q.
		*results = append(*results, n.leftIntervals...)

		collectIntersecting(n.right, q, results)
		collectIntersecting(n.left, q, results)
	case n.split < float64(q.Low):
		// Stored intervals start at or before the split, so only their right
		// endpoints decide; scan from the largest High until the first miss.
		for _, iv := range n.rightIntervals {
			if !iv.Intersects(q) {
				break
			}

			*results = append(*results, iv)
		}

		collectIntersecting(n.right, q, results)
	default:
		// Split lies right of q: scan from the smallest Low until the first miss.
		for _, iv := range n.leftIntervals {
			if !iv.Intersects(q) {
				break
			}

			*results = append(*results, iv)
		}

		collectIntersecting(n.left, q, results)
	}
}
