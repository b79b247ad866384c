package export

import (
	"context"
	"fmt"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// Exporter walks the entity graph in dependency order and emits, for every
// entity type, the rows transitively reachable from one root mission. The
// exporter holds no state across invocations; identifier sets live only for
// the duration of one Export call.
type Exporter struct {
	graph  *schema.Graph
	reader types.Reader
	strict bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// Strict makes Export fail with ErrMissionNotFound when the root mission row
// does not exist, instead of emitting empty batches for every type.
func Strict(strict bool) Option {
	return func(e *Exporter) { e.strict = strict }
}

// New creates an Exporter over the given graph and read-only store.
func New(graph *schema.Graph, reader types.Reader, opts ...Option) *Exporter {
	e := &Exporter{graph: graph, reader: reader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export resolves and emits one batch per entity type, parents before
// children, calling emit once per type in a fixed order that is reproducible
// across runs. On the first failure the remaining pipeline is abandoned;
// batches already handed to emit stand, and the returned error names the
// failing entity type.
//
// Cancelling ctx stops the pipeline between entity types.
func (e *Exporter) Export(ctx context.Context, missionID string, emit func(types.Batch) error) error {
	resolved := make(map[string]idSet, e.graph.Len())

	for _, name := range e.graph.Order() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		ent, ok := e.graph.Entity(name)
		if !ok {
			return fmt.Errorf("export %s: %w", name, types.ErrUnknownEntity)
		}

		var batch types.Batch
		var set idSet
		var err error
		if name == e.graph.Root() {
			batch, set, err = e.exportRoot(ctx, ent, missionID)
		} else {
			set, err = resolveIDs(ctx, e.reader, ent, resolved)
			if err == nil {
				batch, err = assemble(ctx, e.reader, ent, set)
			}
		}
		if err != nil {
			return err
		}

		resolved[name] = set
		if err := emit(batch); err != nil {
			return fmt.Errorf("emit %s: %w", name, err)
		}
	}
	return nil
}

// ExportAll collects the emitted batches of Export into one ordered slice.
func (e *Exporter) ExportAll(ctx context.Context, missionID string) ([]types.Batch, error) {
	batches := make([]types.Batch, 0, e.graph.Len())
	err := e.Export(ctx, missionID, func(b types.Batch) error {
		batches = append(batches, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// exportRoot fetches the mission row itself. The root's identifier set is
// derived from the rows actually found, so an absent mission naturally
// resolves to the empty set and every dependent type follows suit — unless
// the exporter is strict, in which case the export aborts before emitting
// anything.
func (e *Exporter) exportRoot(ctx context.Context, ent schema.Entity, missionID string) (types.Batch, idSet, error) {
	batch := types.Batch{Entity: ent.Name}
	rows, err := e.reader.FetchRows(ctx, ent.Name, types.Predicate{
		Field:  ent.KeyField,
		Values: []string{missionID},
	})
	if err != nil {
		return batch, nil, fmt.Errorf("export %s: %w", ent.Name, err)
	}
	if len(rows) == 0 && e.strict {
		return batch, nil, fmt.Errorf("export %s %q: %w", ent.Name, missionID, types.ErrMissionNotFound)
	}

	set := make(idSet)
	for _, row := range rows {
		set.add(row.String(ent.KeyField))
	}
	batch.Rows = rows
	return batch, set, nil
}
