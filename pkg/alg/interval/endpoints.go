package interval

import (
	"cmp"
	"slices"
)

// SortByLeft returns a copy of intervals sorted by Low ascending.
// The input slice is left untouched.
func SortByLeft[T Number](intervals []Interval[T]) []Interval[T] {
	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval[T]) int {
		return cmp.Compare(a.Low, b.Low)
	})

	return sorted
}

// SortByRight returns a copy of intervals sorted by High ascending.
// The input slice is left untouched.
func SortByRight[T Number](intervals []Interval[T]) []Interval[T] {
	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval[T]) int {
		return cmp.Compare(a.High, b.High)
	})

	return sorted
}

// SortedUniqueEndpoints merges the left endpoints of leftSorted and the right
// endpoints of rightSorted into one ascending, duplicate-free slice.
// leftSorted must be ordered by Low and rightSorted by High; both views are
// consumed in a single linear pass.
func SortedUniqueEndpoints[T Number](leftSorted, rightSorted []Interval[T]) []T {
	endpoints := make([]T, 0, len(leftSorted)+len(rightSorted))

	push := func(v T) {
		if n := len(endpoints); n > 0 && endpoints[n-1] == v {
			return
		}

		endpoints = append(endpoints, v)
	}

	i, j := 0, 0

	for i < len(leftSorted) && j < len(rightSorted) {
		if leftSorted[i].Low <= rightSorted[j].High {
			push(leftSorted[i].Low)
			i++
		} else {
			push(rightSorted[j].High)
			j++
		}
	}

	for ; i < len(leftSorted); i++ {
		push(leftSorted[i].Low)
	}

	for ; j < len(rightSorted); j++ {
		push(rightSorted[j].High)
	}

	return endpoints
}
