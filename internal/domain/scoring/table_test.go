package scoring

import "testing"

func TestPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		groupSize   int
		sharedCount int
		want        int
	}{
		{name: "lone pick small group", groupSize: 2, sharedCount: 1, want: 10},
		{name: "lone pick large group", groupSize: 10, sharedCount: 1, want: 10},
		{name: "two sharers tiny group", groupSize: 3, sharedCount: 2, want: 6},
		{name: "three sharers tiny group", groupSize: 3, sharedCount: 3, want: 4},
		{name: "two sharers 4-5", groupSize: 5, sharedCount: 2, want: 7},
		{name: "four sharers 4-5", groupSize: 4, sharedCount: 4, want: 3},
		{name: "five sharers 4-5", groupSize: 5, sharedCount: 5, want: 2},
		{name: "three sharers 6-7", groupSize: 6, sharedCount: 3, want: 6},
		{name: "five sharers 6-7", groupSize: 7, sharedCount: 5, want: 4},
		{name: "seven sharers capped at five", groupSize: 7, sharedCount: 7, want: 4},
		{name: "two sharers 8-10", groupSize: 9, sharedCount: 2, want: 9},
		{name: "ten sharers capped at five", groupSize: 10, sharedCount: 10, want: 5},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Points(tc.groupSize, tc.sharedCount)
			if err != nil {
				t.Fatalf("Points(%d, %d) error: %v", tc.groupSize, tc.sharedCount, err)
			}
			if got != tc.want {
				t.Fatalf("Points(%d, %d) = %d, want %d", tc.groupSize, tc.sharedCount, got, tc.want)
			}
		})
	}
}

func TestPointsOutOfRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		groupSize   int
		sharedCount int
	}{
		{name: "zero group", groupSize: 0, sharedCount: 1},
		{name: "group above cap", groupSize: 11, sharedCount: 1},
		{name: "zero sharers", groupSize: 5, sharedCount: 0},
		{name: "sharers exceed group", groupSize: 3, sharedCount: 4},
		{name: "sharers exceed group large", groupSize: 8, sharedCount: 9},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Points(tc.groupSize, tc.sharedCount); err == nil {
				t.Fatalf("Points(%d, %d) expected error", tc.groupSize, tc.sharedCount)
			}
		})
	}
}

// Every reachable (groupSize, sharedCount) combination must resolve without
// error: sharedCount ranges 1..groupSize for sizes the product allows.
func TestPointsCoversAllReachableLookups(t *testing.T) {
	t.Parallel()

	for size := 1; size <= MaxGroupSize; size++ {
		for shared := 1; shared <= size; shared++ {
			if _, err := Points(size, shared); err != nil {
				t.Fatalf("Points(%d, %d) unexpectedly failed: %v", size, shared, err)
			}
		}
	}
}
