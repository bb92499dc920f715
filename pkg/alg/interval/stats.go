package interval

// Stats summarizes the shape of a built tree.
type Stats struct {
	// Intervals is the number of indexed intervals.
	Intervals int `json:"intervals" yaml:"intervals"`
	// Nodes is the total number of nodes, leaves included.
	Nodes int `json:"nodes" yaml:"nodes"`
	// Leaves is the number of leaves, equal to the number of distinct endpoints.
	Leaves int `json:"leaves" yaml:"leaves"`
	// Height is the number of levels; zero for an empty tree.
	Height int `json:"height" yaml:"height"`
	// Populated is the number of nodes storing at least one interval.
	Populated int `json:"populated" yaml:"populated"`
	// MaxPerNode is the largest number of intervals stored at a single node.
	MaxPerNode int `json:"max_per_node" yaml:"max_per_node"`
	// PerDepth[d] is the number of intervals stored at depth d.
	PerDepth []int `json:"per_depth" yaml:"per_depth"`
}

// Stats walks the tree once and reports its shape.
func (t *Tree[T]) Stats() Stats {
	stats := Stats{Intervals: t.size}

	t.Walk(func(n *Node[T], depth int) bool {
		stats.Nodes++

		if n.IsLeaf() {
			stats.Leaves++
		}

		if depth+1 > stats.Height {
			stats.Height = depth + 1
			stats.PerDepth = append(stats.PerDepth, make([]int, stats.Height-len(stats.PerDepth))...)
		}

		stored := len(n.leftIntervals)
		if stored > 0 {
			stats.Populated++
			stats.PerDepth[depth] += stored
		}

		stats.MaxPerNode = max(stats.MaxPerNode, stored)

		return true
	})

	return stats
}
