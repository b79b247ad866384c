// Package clone re-inserts an exported mission snapshot into a target store
// under fresh identifiers. Every row receives a new 32-character hex id, and
// every schema foreign key is remapped through the old-to-new id map built
// while walking the batches in dependency order.
package clone

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// Target is the destination store: readable for collision checks, writable
// for inserts.
type Target interface {
	types.Reader
	types.Writer
}

// IDMap records, per entity type, the mapping from source ids to the ids
// generated in the target.
type IDMap map[string]map[string]string

// zeroDates are legacy placeholder timestamps that must become NULL in the
// target.
var zeroDates = map[string]bool{
	"0000-00-00 00:00:00": true,
	"0000-00-00":          true,
}

// Cloner applies exported batches to a target store.
type Cloner struct {
	graph  *schema.Graph
	target Target
	dryRun bool
}

// Option configures a Cloner.
type Option func(*Cloner)

// DryRun walks the batches and builds the full id map without performing any
// inserts.
func DryRun(dry bool) Option {
	return func(c *Cloner) { c.dryRun = dry }
}

// New creates a Cloner over the given graph and target store.
func New(graph *schema.Graph, target Target, opts ...Option) *Cloner {
	c := &Cloner{graph: graph, target: target}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone inserts the batches into the target. Batches must arrive in
// dependency order (as emitted by the exporter) so that every parent id is
// mapped before any child references it. A foreign key whose parent row is
// not part of the snapshot is nulled rather than carried over, so the clone
// never references rows of the source mission.
func (c *Cloner) Clone(ctx context.Context, batches []types.Batch) (IDMap, error) {
	idMap := make(IDMap, len(batches))
	for _, batch := range batches {
		ent, ok := c.graph.Entity(batch.Entity)
		if !ok {
			return nil, fmt.Errorf("clone %s: %w", batch.Entity, types.ErrUnknownEntity)
		}
		if idMap[ent.Name] == nil {
			idMap[ent.Name] = make(map[string]string, len(batch.Rows))
		}
		for _, row := range batch.Rows {
			if err := c.cloneRow(ctx, ent, row, idMap); err != nil {
				return nil, fmt.Errorf("clone %s: %w", ent.Name, err)
			}
		}
	}
	return idMap, nil
}

func (c *Cloner) cloneRow(ctx context.Context, ent schema.Entity, row types.Row, idMap IDMap) error {
	oldID := row.String(ent.KeyField)
	if oldID == "" {
		return types.ErrMissingKey
	}

	cp := row.Clone()
	normalizeZeroDates(cp)
	c.remapEdges(ent, cp, idMap)

	if ent.Name == c.graph.Root() {
		if err := c.renameOnCollision(ctx, ent, cp); err != nil {
			return err
		}
	}

	newID := newID()
	cp[ent.KeyField] = newID

	if !c.dryRun {
		if err := c.target.InsertRow(ctx, ent.Name, cp); err != nil {
			return fmt.Errorf("insert %s: %w", oldID, err)
		}
	}
	idMap[ent.Name][oldID] = newID
	return nil
}

// remapEdges rewrites every schema foreign key of the row to the target-side
// parent id. An unmapped, non-NULL reference is set to nil: the parent was
// outside the snapshot, and a dangling old id must not leak into the target.
func (c *Cloner) remapEdges(ent schema.Entity, row types.Row, idMap IDMap) {
	for _, edge := range ent.Edges {
		old := row.String(edge.RefField)
		if old == "" {
			continue
		}
		if mapped, ok := idMap[edge.Parent][old]; ok {
			row[edge.RefField] = mapped
		} else {
			row[edge.RefField] = nil
		}
	}
}

// renameOnCollision appends "_copy" to the mission name when the target
// already holds a mission with that name.
func (c *Cloner) renameOnCollision(ctx context.Context, ent schema.Entity, row types.Row) error {
	name := row.String("name")
	if name == "" {
		return nil
	}
	existing, err := c.target.FetchIDs(ctx, ent.Name, types.Predicate{
		Field:  "name",
		Values: []string{name},
	})
	if err != nil {
		return fmt.Errorf("check name %q: %w", name, err)
	}
	if len(existing) > 0 {
		row["name"] = name + "_copy"
	}
	return nil
}

// normalizeZeroDates replaces legacy zero timestamps with NULL.
func normalizeZeroDates(row types.Row) {
	for k, v := range row {
		if s, ok := v.(string); ok && zeroDates[s] {
			row[k] = nil
		}
	}
}

// newID generates a 32-character lowercase hex id, the format the survey
// schema uses for its char(32) primary keys.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
