package interval

// buildSkeleton builds the balanced node structure over ascending,
// duplicate-free endpoints. No intervals are attached yet.
//
// Every endpoint becomes a leaf. Each pass pairs adjacent nodes of the current
// level left to right into parents; when the level has an odd length the last
// node is carried unchanged to the end of the next level, after all newly
// created parents. Passes repeat until one node, the root, remains.
// Returns nil for no endpoints.
func buildSkeleton[T Number](endpoints []T) *Node[T] {
	if len(endpoints) == 0 {
		return nil
	}

	level := make([]*Node[T], len(endpoints))
	for i, e := range endpoints {
		level[i] = newLeaf(e)
	}

	next := make([]*Node[T], 0, (len(level)+1)/2)

	for len(level) > 1 {
		next = next[:0]

		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, join(level[i], level[i+1]))
		}

		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}

		// The old level becomes the scratch buffer for the following pass.
		level, next = next, level
	}

	return level[0]
}
