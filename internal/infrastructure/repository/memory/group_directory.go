package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
)

type GroupDirectory struct {
	mu      sync.RWMutex
	members map[string][]group.Member
}

func NewGroupDirectory() *GroupDirectory {
	return &GroupDirectory{members: make(map[string][]group.Member)}
}

// SetMembers replaces a group's roster. Only local development and tests
// write through this; production membership lives in the account database.
func (d *GroupDirectory) SetMembers(groupID string, members []group.Member) {
	d.mu.Lock()
	defer d.mu.Unlock()

	roster := make([]group.Member, len(members))
	copy(roster, members)
	sort.Slice(roster, func(i, j int) bool { return roster[i].UserID < roster[j].UserID })
	d.members[groupID] = roster
}

func (d *GroupDirectory) ListMembers(_ context.Context, groupID string) ([]group.Member, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]group.Member, len(d.members[groupID]))
	copy(out, d.members[groupID])
	return out, nil
}

func (d *GroupDirectory) GroupSize(_ context.Context, groupID string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.members[groupID]), nil
}
