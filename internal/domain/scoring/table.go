package scoring

import "fmt"

// MaxGroupSize mirrors the product's invite cap; the table has no buckets
// beyond it.
const MaxGroupSize = 10

// sharedCap folds every shared count of five or more into one row.
const sharedCap = 5

// Point values for a winning pick, indexed by group-size bucket and by how
// many members of the group picked the same winning team. A lone correct
// pick is always worth 10; convergence dilutes the payout, more steeply in
// smaller groups. Losing picks score 0 regardless.
var pointsByBucket = map[string][]int{
	"<4":   {10, 6, 4},
	"4-5":  {10, 7, 5, 3, 2},
	"6-7":  {10, 8, 6, 5, 4},
	"8-10": {10, 9, 7, 6, 5},
}

// Points returns the score for a correct pick shared by sharedCount members
// of a group with groupSize members. Lookups outside the table's valid range
// are errors, never silent zeros: sharedCount can never legitimately exceed
// groupSize, and no bucket exists past MaxGroupSize.
func Points(groupSize, sharedCount int) (int, error) {
	if groupSize < 1 || groupSize > MaxGroupSize {
		return 0, fmt.Errorf("group size %d is outside the scoring table", groupSize)
	}
	if sharedCount < 1 {
		return 0, fmt.Errorf("shared pick count %d must be at least 1", sharedCount)
	}
	if sharedCount > groupSize {
		return 0, fmt.Errorf("shared pick count %d exceeds group size %d", sharedCount, groupSize)
	}

	row := pointsByBucket[bucketForGroupSize(groupSize)]
	idx := sharedCount
	if idx > sharedCap {
		idx = sharedCap
	}
	if idx > len(row) {
		return 0, fmt.Errorf("shared pick count %d has no entry for group size %d", sharedCount, groupSize)
	}

	return row[idx-1], nil
}

func bucketForGroupSize(groupSize int) string {
	switch {
	case groupSize < 4:
		return "<4"
	case groupSize <= 5:
		return "4-5"
	case groupSize <= 7:
		return "6-7"
	default:
		return "8-10"
	}
}
