package pick

import "context"

// Repository persists picks. The lifecycle manager writes rows pre-lock; the
// reconciler resolves pending rows post-final via Resolve, which must be a
// no-op for rows that are already resolved.
type Repository interface {
	Upsert(ctx context.Context, p Pick) (Pick, error)
	Delete(ctx context.Context, userID, groupID string, week int) error
	Get(ctx context.Context, userID, groupID string, week int) (Pick, bool, error)
	ListByUserGroup(ctx context.Context, userID, groupID string) ([]Pick, error)
	ListByGroup(ctx context.Context, groupID string) ([]Pick, error)
	ListByGroupWeek(ctx context.Context, groupID string, week int) ([]Pick, error)
	ListPendingByGame(ctx context.Context, externalGameID string) ([]Pick, error)
	// Resolve sets status and score on a pending pick. It returns false when
	// the row was not pending anymore (or is gone), so reprocessing a final
	// game never double-scores.
	Resolve(ctx context.Context, userID, groupID string, week int, status string, score int) (bool, error)
}
