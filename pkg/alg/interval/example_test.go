package interval_test

import (
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
)

func ExampleTree_FindIntersecting() {
	tree, err := interval.Build([]interval.Interval[int]{
		interval.New(1, 5, "a"),
		interval.New(4, 9, "b"),
		interval.New(10, 12, "c"),
		interval.New(6, 8, "d"),
	})
	if err != nil {
		panic(err)
	}

	var found []string
	for _, iv := range tree.FindIntersecting(interval.New(7, 7, "")) {
		found = append(found, iv.Label)
	}

	slices.Sort(found)
	fmt.Println(found)
	// Output: [b d]
}

func ExampleTree_QueryPoint() {
	tree := interval.MustBuild([]interval.Interval[int]{interval.New(5, 10, "x")})

	fmt.Println(tree.QueryPoint(10))
	fmt.Println(len(tree.QueryPoint(11)))
	// Output:
	// [[5,10] x]
	// 0
}
