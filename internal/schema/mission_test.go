package schema

import (
	"testing"

	"github.com/seabed-systems/missionsnap/pkg/types"
)

func TestMissionGraphShape(t *testing.T) {
	g := Mission()

	if g.Len() != 16 {
		t.Fatalf("expected 16 entity types, got %d", g.Len())
	}
	if g.Root() != types.EntityMissions {
		t.Fatalf("expected missions root, got %s", g.Root())
	}
	if g.Order()[0] != types.EntityMissions {
		t.Fatalf("missions must be emitted first, got %s", g.Order()[0])
	}

	// Fan-in declarations.
	fanIn := map[string][]string{
		types.EntityTracks:           {types.EntityMissions, types.EntityAreas},
		types.EntityTasks:            {types.EntityMissions, types.EntityTracks, types.EntitySpecialPoint},
		types.EntityUnderwaterObject: {types.EntityMissions, types.EntityTaskExecutions},
	}
	for name, parents := range fanIn {
		ent, ok := g.Entity(name)
		if !ok {
			t.Fatalf("entity %s not declared", name)
		}
		if len(ent.Edges) != len(parents) {
			t.Fatalf("%s: expected %d edges, got %d", name, len(parents), len(ent.Edges))
		}
		for i, parent := range parents {
			if ent.Edges[i].Parent != parent {
				t.Fatalf("%s edge %d: expected parent %s, got %s", name, i, parent, ent.Edges[i].Parent)
			}
		}
	}
}

func TestMissionOrderMatchesDeclaration(t *testing.T) {
	// The declaration order is already topological, so the sort must keep it.
	want := []string{
		types.EntityMissions,
		types.EntityAreas,
		types.EntityBottomIdentification,
		types.EntityEnvironmentalData,
		types.EntityNavigationMark,
		types.EntityOperatorNotes,
		types.EntitySpecialPoint,
		types.EntityTracks,
		types.EntityTasks,
		types.EntityAreaCells,
		types.EntityAreaPoints,
		types.EntityPaths,
		types.EntityQRoutes,
		types.EntityTrackPoints,
		types.EntityTaskExecutions,
		types.EntityUnderwaterObject,
	}
	got := Mission().Order()
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d]: expected %s, got %s", i, want[i], got[i])
		}
	}
}
