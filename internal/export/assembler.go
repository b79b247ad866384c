package export

import (
	"context"
	"fmt"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// assemble fetches the rows behind a resolved identifier set as one batch.
// The fetch is a single key-membership read per entity type, so the round
// trip count stays at one regardless of row count. An empty set yields an
// empty batch without touching the store.
func assemble(ctx context.Context, r types.Reader, ent schema.Entity, set idSet) (types.Batch, error) {
	batch := types.Batch{Entity: ent.Name}
	if len(set) == 0 {
		return batch, nil
	}

	rows, err := r.FetchRows(ctx, ent.Name, types.Predicate{
		Field:  ent.KeyField,
		Values: set.sorted(),
	})
	if err != nil {
		return batch, fmt.Errorf("assemble %s: %w", ent.Name, err)
	}
	batch.Rows = rows
	return batch, nil
}
