package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// ErrUnresolvedParent reports a resolve attempt before the parent's own id
// set exists. It can only arise from a corrupted graph, never from data, so
// it is fatal and not retried.
var ErrUnresolvedParent = errors.New("parent entity not yet resolved")

// resolveIDs computes the identifier set for one non-root entity type. For
// each incoming edge it issues a single membership query against the parent's
// already-resolved set, then unions the per-edge results. The union is the
// dedup point: an identifier reachable through two edges lands in the set
// once, before any rows are fetched.
func resolveIDs(ctx context.Context, r types.Reader, ent schema.Entity, resolved map[string]idSet) (idSet, error) {
	set := make(idSet)
	for _, edge := range ent.Edges {
		parents, ok := resolved[edge.Parent]
		if !ok {
			return nil, fmt.Errorf("%s via %s: %w", ent.Name, edge.Parent, ErrUnresolvedParent)
		}
		if len(parents) == 0 {
			// Nothing reachable through this edge; emptiness propagates.
			continue
		}
		ids, err := r.FetchIDs(ctx, ent.Name, types.Predicate{
			Field:  edge.RefField,
			Values: parents.sorted(),
		})
		if err != nil {
			return nil, fmt.Errorf("resolve %s via %s: %w", ent.Name, edge.Parent, err)
		}
		set.add(ids...)
	}
	return set, nil
}
