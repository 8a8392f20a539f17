package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
)

func finalGame(externalID string, week int, homeID, awayID, winnerID string, tie bool) schedule.Game {
	return schedule.Game{
		ExternalGameID: externalID,
		Season:         2025,
		Week:           week,
		HomeTeamID:     homeID,
		AwayTeamID:     awayID,
		KickoffAt:      time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC),
		LocksAt:        time.Date(2025, 9, 7, 16, 30, 0, 0, time.UTC),
		Wave:           schedule.Wave2,
		Status:         schedule.StatusFinal,
		WinnerTeamID:   winnerID,
		IsTie:          tie,
	}
}

func pendingPick(userID, groupID string, week int, teamID, externalGameID string) pick.Pick {
	return pick.Pick{
		UserID:         userID,
		GroupID:        groupID,
		Week:           week,
		TeamID:         teamID,
		ExternalGameID: externalGameID,
		Status:         pick.StatusPending,
		LocksAt:        time.Date(2025, 9, 7, 16, 30, 0, 0, time.UTC),
	}
}

func directoryWithGroup(groupID string, userIDs ...string) *stubDirectory {
	d := newStubDirectory()
	for _, userID := range userIDs {
		d.members[groupID] = append(d.members[groupID], group.Member{UserID: userID})
	}
	return d
}

func newReconcileServiceForTest(scheduleRepo schedule.Repository, pickRepo pick.Repository, directory group.Directory) *ReconcileService {
	return NewReconcileService(scheduleRepo, pickRepo, directory, ReconcileConfig{Season: 2025, Workers: 2}, logging.NewNop())
}

func TestReconcileSharedWinnersSplitPoints(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false))
	pickRepo := newStubPickRepo(
		pendingPick("alice", "grp-1", 1, "phi", "401001"),
		pendingPick("bob", "grp-1", 1, "phi", "401001"),
		pendingPick("carol", "grp-1", 1, "dal", "401001"),
	)
	directory := directoryWithGroup("grp-1", "alice", "bob", "carol", "dave", "erin")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	result, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("ReconcileFinishedGames: %v", err)
	}
	if result.PicksResolved != 3 {
		t.Fatalf("resolved = %d", result.PicksResolved)
	}

	// Group of five, winner shared by two: seven points each.
	for _, userID := range []string{"alice", "bob"} {
		p, _, _ := pickRepo.Get(context.Background(), userID, "grp-1", 1)
		if p.Status != pick.StatusCorrect || p.Score != 7 {
			t.Fatalf("%s pick = status=%s score=%d", userID, p.Status, p.Score)
		}
	}
	carol, _, _ := pickRepo.Get(context.Background(), "carol", "grp-1", 1)
	if carol.Status != pick.StatusIncorrect || carol.Score != 0 {
		t.Fatalf("losing pick = status=%s score=%d", carol.Status, carol.Score)
	}
}

func TestReconcileTieScoresBothSides(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "", true))
	pickRepo := newStubPickRepo(
		pendingPick("alice", "grp-1", 1, "phi", "401001"),
		pendingPick("bob", "grp-1", 1, "dal", "401001"),
	)
	directory := directoryWithGroup("grp-1", "alice", "bob", "carol")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	if _, err := svc.ReconcileFinishedGames(context.Background()); err != nil {
		t.Fatalf("ReconcileFinishedGames: %v", err)
	}

	// Both sides of a tie win; each team is its own shared-count bucket.
	for _, userID := range []string{"alice", "bob"} {
		p, _, _ := pickRepo.Get(context.Background(), userID, "grp-1", 1)
		if p.Status != pick.StatusCorrect || p.Score != 10 {
			t.Fatalf("%s pick = status=%s score=%d", userID, p.Status, p.Score)
		}
	}
}

func TestReconcileIgnoresDepartedMemberPicks(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false))
	// dave and erin left the group after picking; their rows are still stored.
	pickRepo := newStubPickRepo(
		pendingPick("alice", "grp-1", 1, "phi", "401001"),
		pendingPick("bob", "grp-1", 1, "phi", "401001"),
		pendingPick("dave", "grp-1", 1, "phi", "401001"),
		pendingPick("erin", "grp-1", 1, "phi", "401001"),
	)
	directory := directoryWithGroup("grp-1", "alice", "bob")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	result, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("ReconcileFinishedGames: %v", err)
	}

	// Counting the departed rows would put four shares in a group of two and
	// wedge the whole group. Only the two members count and resolve.
	if result.PicksResolved != 2 || result.GroupsSkipped != 0 {
		t.Fatalf("result = %+v", result)
	}
	for _, userID := range []string{"alice", "bob"} {
		p, _, _ := pickRepo.Get(context.Background(), userID, "grp-1", 1)
		if p.Status != pick.StatusCorrect || p.Score != 6 {
			t.Fatalf("%s pick = status=%s score=%d", userID, p.Status, p.Score)
		}
	}
	for _, userID := range []string{"dave", "erin"} {
		p, _, _ := pickRepo.Get(context.Background(), userID, "grp-1", 1)
		if p.Status != pick.StatusPending || p.Score != 0 {
			t.Fatalf("departed %s pick = status=%s score=%d", userID, p.Status, p.Score)
		}
	}
}

func TestReconcileRerunNeverRescores(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false))
	pickRepo := newStubPickRepo(
		pendingPick("alice", "grp-1", 1, "phi", "401001"),
		pendingPick("bob", "grp-1", 1, "dal", "401001"),
	)
	directory := directoryWithGroup("grp-1", "alice", "bob", "carol")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	first, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if first.PicksResolved != 2 {
		t.Fatalf("first sweep resolved = %d", first.PicksResolved)
	}

	second, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second.PicksResolved != 0 {
		t.Fatalf("second sweep resolved = %d", second.PicksResolved)
	}

	alice, _, _ := pickRepo.Get(context.Background(), "alice", "grp-1", 1)
	if alice.Score != 10 {
		t.Fatalf("score changed on rerun: %d", alice.Score)
	}
}

func TestReconcileSkipsGroupOnDirectoryFailure(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false))
	pickRepo := newStubPickRepo(pendingPick("alice", "grp-1", 1, "phi", "401001"))
	directory := newStubDirectory()
	directory.err = errors.New("directory timeout")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	result, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("ReconcileFinishedGames: %v", err)
	}

	if result.PicksResolved != 0 || result.GroupsSkipped != 1 {
		t.Fatalf("result = %+v", result)
	}
	p, _, _ := pickRepo.Get(context.Background(), "alice", "grp-1", 1)
	if p.Status != pick.StatusPending {
		t.Fatalf("pick must stay pending, got %s", p.Status)
	}
}

func TestReconcileSkipsOversizedGroup(t *testing.T) {
	t.Parallel()

	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false))
	pickRepo := newStubPickRepo(pendingPick("alice", "grp-1", 1, "phi", "401001"))
	users := []string{"alice"}
	for i := 1; i < 11; i++ {
		users = append(users, fmt.Sprintf("user-%02d", i))
	}
	directory := directoryWithGroup("grp-1", users...)

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)
	result, err := svc.ReconcileFinishedGames(context.Background())
	if err != nil {
		t.Fatalf("ReconcileFinishedGames: %v", err)
	}

	if result.GroupsSkipped != 1 || result.PicksResolved != 0 {
		t.Fatalf("result = %+v", result)
	}
	p, _, _ := pickRepo.Get(context.Background(), "alice", "grp-1", 1)
	if p.Status != pick.StatusPending {
		t.Fatalf("pick must stay pending, got %s", p.Status)
	}
}

func TestReconcileGameByID(t *testing.T) {
	t.Parallel()

	undecided := finalGame("401002", 1, "kc", "buf", "", false)
	scheduleRepo := newStubScheduleRepo(finalGame("401001", 1, "phi", "dal", "phi", false), undecided)
	pickRepo := newStubPickRepo(pendingPick("alice", "grp-1", 1, "phi", "401001"))
	directory := directoryWithGroup("grp-1", "alice", "bob")

	svc := newReconcileServiceForTest(scheduleRepo, pickRepo, directory)

	resolved, err := svc.ReconcileGame(context.Background(), "401001")
	if err != nil {
		t.Fatalf("ReconcileGame: %v", err)
	}
	if resolved != 1 {
		t.Fatalf("resolved = %d", resolved)
	}

	if _, err := svc.ReconcileGame(context.Background(), "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown game error = %v", err)
	}
	if _, err := svc.ReconcileGame(context.Background(), "401002"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("undecided game error = %v", err)
	}
}
