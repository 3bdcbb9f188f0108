package fast

import "context"

// Store is the persistence port for fast records. Implementations must
// treat SaveFast as an upsert by id (a re-saved fast replaces the stored
// record, never duplicates it) and reject a save that would leave two
// active fasts in the store.
type Store interface {
	SaveFast(ctx context.Context, f Fast) error
	GetFast(ctx context.Context, id string) (Fast, error)
	ListFasts(ctx context.Context) ([]Fast, error)
	DeleteFast(ctx context.Context, id string) error
}
