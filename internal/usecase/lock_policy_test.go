package usecase

import (
	"testing"
	"time"
)

func easternLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load eastern location: %v", err)
	}
	return loc
}

func TestWaveDeadlinePolicyLocksAt(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	policy := NewWaveDeadlinePolicy(eastern)

	cases := []struct {
		name    string
		kickoff time.Time
		want    time.Time
	}{
		{
			name:    "thursday night locks at thursday deadline",
			kickoff: time.Date(2025, 9, 4, 20, 15, 0, 0, eastern),
			want:    time.Date(2025, 9, 4, 19, 45, 0, 0, eastern),
		},
		{
			name:    "saturday game shares the thursday deadline",
			kickoff: time.Date(2025, 12, 20, 16, 30, 0, 0, eastern),
			want:    time.Date(2025, 12, 18, 19, 45, 0, 0, eastern),
		},
		{
			name:    "sunday afternoon locks at sunday deadline",
			kickoff: time.Date(2025, 9, 7, 13, 0, 0, 0, eastern),
			want:    time.Date(2025, 9, 7, 12, 30, 0, 0, eastern),
		},
		{
			name:    "monday night locks at the prior sunday deadline",
			kickoff: time.Date(2025, 9, 8, 20, 15, 0, 0, eastern),
			want:    time.Date(2025, 9, 7, 12, 30, 0, 0, eastern),
		},
		{
			name:    "morning international game clamps to kickoff",
			kickoff: time.Date(2025, 10, 5, 9, 30, 0, 0, eastern),
			want:    time.Date(2025, 10, 5, 9, 30, 0, 0, eastern),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := policy.LocksAt(tc.kickoff)
			if !got.Equal(tc.want) {
				t.Fatalf("LocksAt(%s) = %s, want %s", tc.kickoff, got, tc.want)
			}
		})
	}
}

func TestWaveDeadlinePolicyUTCKickoffStillUsesEasternDay(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	policy := NewWaveDeadlinePolicy(eastern)

	// 00:15 UTC Friday is 20:15 Thursday in Eastern time; the lock must land
	// on that Thursday's deadline, not a Friday-derived one.
	kickoff := time.Date(2025, 9, 5, 0, 15, 0, 0, time.UTC)
	want := time.Date(2025, 9, 4, 19, 45, 0, 0, eastern)

	if got := policy.LocksAt(kickoff); !got.Equal(want) {
		t.Fatalf("LocksAt(%s) = %s, want %s", kickoff, got, want)
	}
}

func TestKickoffOffsetPolicy(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	policy := KickoffOffsetPolicy{Offset: 30 * time.Minute}
	if got := policy.LocksAt(kickoff); !got.Equal(kickoff.Add(-30 * time.Minute)) {
		t.Fatalf("LocksAt with offset = %s", got)
	}

	zero := KickoffOffsetPolicy{}
	if got := zero.LocksAt(kickoff); !got.Equal(kickoff) {
		t.Fatalf("LocksAt without offset = %s, want kickoff", got)
	}
}
