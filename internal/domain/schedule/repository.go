package schedule

import "context"

// Repository is the durable schedule registry. The synchronizer is its only
// writer; pick and reconcile flows read from it.
type Repository interface {
	Upsert(ctx context.Context, games []Game) error
	GetByExternalID(ctx context.Context, externalGameID string) (Game, bool, error)
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	ListFinalDecided(ctx context.Context, season int) ([]Game, error)
}
