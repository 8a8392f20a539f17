package group

import "context"

// Directory exposes the product's group membership data, read-only. Group
// size is the scoring table lookup key, so a directory failure must skip the
// affected group rather than fail a whole reconciliation sweep.
type Directory interface {
	ListMembers(ctx context.Context, groupID string) ([]Member, error)
	GroupSize(ctx context.Context, groupID string) (int, error)
}
